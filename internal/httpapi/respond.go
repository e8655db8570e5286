package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 4 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}

func urlIndex(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return i, true
}

// writeMutation answers a store mutation with the snapshot it produced: 200
// when it applied, 409 when nothing is loaded, 404 for an out-of-range index.
func writeMutation(w http.ResponseWriter, snap store.Snapshot, applied bool) {
	switch {
	case applied:
		writeJSON(w, http.StatusOK, snap)
	case snap.Document == nil:
		writeError(w, http.StatusConflict, "no document loaded")
	default:
		writeError(w, http.StatusNotFound, "index out of range")
	}
}
