package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"image-picker/internal/logging"
	"image-picker/internal/picker"
)

// maxBodyBytes bounds picker request bodies.
const maxBodyBytes = 1 << 20

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding errors are logged since the status line is already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// ErrorResponse is the body of a failed promise-style request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message, code string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, ErrorResponse{Error: message, Code: code})
}

// writeFacadeError maps a facade error onto a status and error code.
func writeFacadeError(w http.ResponseWriter, err error) {
	writeJSONError(w, err.Error(), picker.ErrorCode(err), statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, picker.ErrCameraUnsupported):
		return http.StatusNotImplemented
	case errors.Is(err, picker.ErrNoPicker):
		return http.StatusServiceUnavailable
	case picker.ErrorCode(err) == picker.CodePermission:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// writeJSONStatus writes a simple status response as JSON.
func writeJSONStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": status})
}

// decodePickRequest reads picker options and, if present, the paths that
// stand in for a dialog selection. An empty body yields DefaultOptions.
func decodePickRequest(w http.ResponseWriter, r *http.Request) (picker.Options, []string, error) {
	opts := picker.DefaultOptions()
	if r.Body == nil {
		return opts, nil, nil
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return opts, nil, fmt.Errorf("reading request body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return opts, nil, nil
	}

	if err := json.Unmarshal(body, &opts); err != nil {
		return opts, nil, fmt.Errorf("invalid options: %w", err)
	}

	var selection struct {
		Paths []string `json:"paths"`
	}
	if err := json.Unmarshal(body, &selection); err != nil {
		return opts, nil, fmt.Errorf("invalid paths: %w", err)
	}

	return opts, selection.Paths, nil
}
