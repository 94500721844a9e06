// Package mediatypes classifies source paths returned by a host picker.
//
// It is a dependency-free leaf so every other package can import it.
//
// # Classification
//
// Classify matches the path suffix case-insensitively against a fixed set:
//
//	mediatypes.Classify("/a/IMG_1.JPG") // KindImage
//	mediatypes.Classify("/a/clip.mp4")  // KindVideo
//	mediatypes.Classify("/a/notes.txt") // KindUnknown
//
// Images are jpg, jpeg, png, gif, bmp and webp. Videos are mp4, mkv and ts.
//
// # Extensions
//
// Extension returns whatever follows the last '.', with its case intact,
// because cache file names and the reported media type reuse it verbatim:
//
//	ext, ok := mediatypes.Extension("/a/IMG_1.JPG") // "JPG", true
//	_, ok = mediatypes.Extension("/a/README")       // "", false
package mediatypes
