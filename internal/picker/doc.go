/*
Package picker is the public face of the image picker.

Facade exposes the picker operations: ShowPicker and PickAsync open the photo
picker, OpenCamera and OpenCameraAsync capture with the camera,
OpenVideoPicker opens the picker filtered to videos, and DeleteCache,
RemoveAtIndex and RemoveAll manage the cache and the selection session.

The host UI is reached through two interfaces. PhotoPicker selects existing
files; CameraService captures new ones. Either can be swapped: DesktopPicker
opens native file dialogs, StaticPicker returns fixed paths, and FFmpegCamera
grabs a frame from a capture device. A Facade without a camera reports
ErrCameraUnsupported.

Callback variants report ("", media) on success and (message, nil) on
failure. Async variants return (media, nil) or (nil, err).
*/
package picker
