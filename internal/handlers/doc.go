// Package handlers exposes the picker operations as JSON over HTTP.
//
// Every picker endpoint accepts a picker.Options JSON body; an empty body
// uses the defaults. With native dialogs disabled the body may also carry
// a "paths" array, which stands in for the user's selection.
//
// Callback-style endpoints (/api/picker/show, /api/camera/open,
// /api/video/open) always answer 200 with {"error": ..., "photos": ...},
// exactly one of which is null. Promise-style endpoints (/api/picker/pick,
// /api/camera/open-async) answer with the media list or an error status
// carrying {"error": message, "code": code}.
//
// It also serves health, liveness, version and Prometheus metrics.
package handlers
