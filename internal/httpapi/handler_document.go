package httpapi

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/abianche/uoo-cooldown-manager/internal/config"
	"github.com/abianche/uoo-cooldown-manager/internal/loader"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

func StateHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, st.Snapshot())
	}
}

func ClearErrorHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, st.ClearError())
	}
}

// multipartSlack covers the form boundaries and part headers around an
// upload of exactly loader.MaxDocumentSize bytes.
const multipartSlack = 64 << 10

// ExportWarningHeader is set on exports the editor would refuse to load back.
const ExportWarningHeader = "X-Export-Warning"

// UploadHandler accepts either a raw XML body or a multipart form with a
// "file" field. A failed load answers 422, or 413 for an oversized file, and
// leaves the previous document.
func UploadHandler(ld *loader.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, loader.MaxDocumentSize+multipartSlack)

		var (
			body   io.Reader = r.Body
			source           = "upload"
		)
		if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
			f, hdr, err := r.FormFile("file")
			if err != nil {
				if tooLarge(err) {
					writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
					return
				}
				writeError(w, http.StatusBadRequest, "missing file field")
				return
			}
			defer f.Close()
			body = f
			source = hdr.Filename
		}

		snap, err := ld.LoadReader(body, source)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, snap)
		case tooLarge(err):
			writeJSON(w, http.StatusRequestEntityTooLarge, snap)
		default:
			writeJSON(w, http.StatusUnprocessableEntity, snap)
		}
	}
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.Is(err, loader.ErrTooLarge) || errors.As(err, &mbe)
}

// ExportHandler renders the current document as a cooldowns file. With
// ?inline=1 the XML is shown in place instead of downloaded.
func ExportHandler(cfg *config.Config, st *store.Store, exports *exportCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()
		if snap.Document == nil {
			writeError(w, http.StatusConflict, "no document loaded")
			return
		}

		out, err := exports.render(snap)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode document")
			return
		}

		w.Header().Set("ETag", out.ETag)
		if len(snap.Document.Entries) == 0 {
			w.Header().Set(ExportWarningHeader, "document has no entries; the exported file cannot be loaded again")
		}
		if match := r.Header.Get("If-None-Match"); match != "" && match == out.ETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		disposition := "attachment"
		if r.URL.Query().Get("inline") == "1" {
			disposition = "inline"
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
			"filename": cfg.Export.Filename,
		}))
		_, _ = w.Write(out.Body)
	}
}
