package handlers

import (
	"context"
	"net/http"
	"strconv"

	"image-picker/internal/logging"
	"image-picker/internal/media"
	"image-picker/internal/picker"

	"github.com/gorilla/mux"
)

// CallbackResponse is the body of a callback-style request. Error is null on
// success and Photos is null on failure.
type CallbackResponse struct {
	Error  *string               `json:"error"`
	Photos []media.SelectedMedia `json:"photos"`
}

type callbackOp func(ctx context.Context, opts picker.Options, cb picker.Callback)

type asyncOp func(ctx context.Context, opts picker.Options) ([]media.SelectedMedia, error)

// pickContext returns the request context, carrying the body's paths when
// native dialogs are disabled.
func (h *Handlers) pickContext(r *http.Request, paths []string) context.Context {
	if h.dialogs {
		if len(paths) > 0 {
			logging.Debug("Ignoring %d request paths: native dialogs are enabled", len(paths))
		}
		return r.Context()
	}
	return picker.WithPaths(r.Context(), paths)
}

func (h *Handlers) serveCallback(op callbackOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, paths, err := decodePickRequest(w, r)
		if err != nil {
			writeJSONError(w, err.Error(), picker.CodeOthers, http.StatusBadRequest)
			return
		}

		var response CallbackResponse
		op(h.pickContext(r, paths), opts, func(errMessage string, photos []media.SelectedMedia) {
			if errMessage != "" {
				response.Error = &errMessage
				return
			}
			response.Photos = photos
		})

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, response)
	}
}

func (h *Handlers) serveAsync(op asyncOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, paths, err := decodePickRequest(w, r)
		if err != nil {
			writeJSONError(w, err.Error(), picker.CodeOthers, http.StatusBadRequest)
			return
		}

		photos, err := op(h.pickContext(r, paths), opts)
		if err != nil {
			writeFacadeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, photos)
	}
}

// ShowPicker handles POST /api/picker/show.
func (h *Handlers) ShowPicker(w http.ResponseWriter, r *http.Request) {
	h.serveCallback(h.facade.ShowPicker)(w, r)
}

// PickAsync handles POST /api/picker/pick.
func (h *Handlers) PickAsync(w http.ResponseWriter, r *http.Request) {
	h.serveAsync(h.facade.PickAsync)(w, r)
}

// OpenVideoPicker handles POST /api/video/open.
func (h *Handlers) OpenVideoPicker(w http.ResponseWriter, r *http.Request) {
	h.serveCallback(h.facade.OpenVideoPicker)(w, r)
}

// OpenCamera handles POST /api/camera/open.
func (h *Handlers) OpenCamera(w http.ResponseWriter, r *http.Request) {
	h.serveCallback(h.facade.OpenCamera)(w, r)
}

// OpenCameraAsync handles POST /api/camera/open-async.
func (h *Handlers) OpenCameraAsync(w http.ResponseWriter, r *http.Request) {
	h.serveAsync(h.facade.OpenCameraAsync)(w, r)
}

// DeleteCache handles DELETE /api/cache.
func (h *Handlers) DeleteCache(w http.ResponseWriter, _ *http.Request) {
	if err := h.facade.DeleteCache(); err != nil {
		writeFacadeError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// GetSelection handles GET /api/selection.
func (h *Handlers) GetSelection(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.facade.Selection())
}

// ClearSelection handles DELETE /api/selection.
func (h *Handlers) ClearSelection(w http.ResponseWriter, _ *http.Request) {
	h.facade.RemoveAll()
	writeJSONStatus(w, "ok")
}

// RemoveSelection handles DELETE /api/selection/{index}. Out-of-range
// indexes leave the selection unchanged; the remaining selection is returned.
func (h *Handlers) RemoveSelection(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeJSONError(w, "index must be an integer", picker.CodeOthers, http.StatusBadRequest)
		return
	}

	h.facade.RemoveAtIndex(index)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.facade.Selection())
}
