package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/raphi011/btm/internal/actions"
	"github.com/raphi011/btm/internal/blocklet"
	"github.com/raphi011/btm/internal/forge"
	"github.com/raphi011/btm/internal/theme"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

// statusFor maps errors of the domain packages to HTTP status codes.
func statusFor(err error) int {
	var nre *actions.NotReadyError
	switch {
	case errors.Is(err, theme.ErrNotFound), errors.Is(err, theme.ErrNoDescriptor):
		return http.StatusNotFound
	case errors.Is(err, actions.ErrMissingDID), errors.As(err, &nre):
		return http.StatusBadRequest
	case errors.Is(err, forge.ErrOriginExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeActionError writes err with msg as the headline and the error
// text as details.
func writeActionError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusNotFound {
		writeError(w, status, err.Error(), "")
		return
	}
	writeError(w, status, msg, err.Error())
}

// decodeJSON reads a JSON body of at most maxBodySize bytes into v.
// It writes the error response itself and reports whether decoding
// succeeded. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
		return false
	}
	writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
	return false
}

// didErrorOutput returns the scaffolding output of a failed DID request.
func didErrorOutput(err error) (string, bool) {
	var de *blocklet.DIDError
	if errors.As(err, &de) {
		return de.Output, true
	}
	return "", false
}
