// Package media turns cached picker files into result metadata.
//
// Two host capabilities are abstracted so the pipeline can run without a
// particular backend:
//   - Codec: image decode, dimension probing and JPEG encoding. StdCodec uses
//     imaging and the standard decoders; VipsCodec uses libvips.
//   - VideoProbe: width and height of a video file. FFprobe shells out to
//     ffprobe.
//
// On top of those, Compressor re-encodes images as JPEG into the cache and
// Describer builds the SelectedMedia record returned to callers.
package media
