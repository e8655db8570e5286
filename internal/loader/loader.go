// Package loader is the boundary between raw cooldowns files and the store.
// Parse and validation failures end up as the store's error message; the
// previously loaded document stays in place.
package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/abianche/uoo-cooldown-manager/internal/cdxml"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

// DefaultStartupSource is the well-known location of the bundled cooldowns file.
const DefaultStartupSource = "/uoo_cooldown_manager/cooldowns.xml"

// MaxDocumentSize bounds how much of a source is accepted.
const MaxDocumentSize = 4 << 20

// ErrTooLarge is returned for sources longer than MaxDocumentSize.
var ErrTooLarge = fmt.Errorf("document exceeds %d bytes", MaxDocumentSize)

// ErrorMessage is the user-facing text stored for a failed load.
func ErrorMessage(err error) string {
	return "Failed to parse XML: " + errors.Cause(err).Error()
}

type Loader struct {
	Store  *store.Store
	Client *http.Client
}

func New(s *store.Store) *Loader {
	return &Loader{Store: s, Client: http.DefaultClient}
}

// LoadBytes parses data and replaces the store document. On failure the store
// keeps its document, records the error message, and the error is returned.
// The snapshot is the store state right after the load.
func (l *Loader) LoadBytes(data []byte, source string) (store.Snapshot, error) {
	doc, err := cdxml.Parse(data)
	if err != nil {
		err = errors.Wrapf(err, "load %s", source)
		slog.Warn("failed to load cooldowns", "source", source, "error", err)
		return l.Store.SetError(ErrorMessage(err)), err
	}

	snap := l.Store.SetDocument(doc)
	slog.Info("loaded cooldowns", "source", source, "entries", len(doc.Entries))
	return snap, nil
}

func (l *Loader) LoadReader(r io.Reader, source string) (store.Snapshot, error) {
	data, err := readLimited(r)
	if err != nil {
		err = errors.Wrapf(err, "read %s", source)
		slog.Warn("failed to read cooldowns", "source", source, "error", err)
		return l.Store.SetError(err.Error()), err
	}
	return l.LoadBytes(data, source)
}

func (l *Loader) LoadFile(path string) (store.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		err = errors.Wrap(err, "open cooldowns file")
		return l.Store.SetError(err.Error()), err
	}
	defer f.Close()
	return l.LoadReader(f, path)
}

// Fetch reads source, which is either an http(s) URL or a file path, without
// touching the store.
func (l *Loader) Fetch(ctx context.Context, source string) ([]byte, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, errors.Wrap(err, "read startup file")
		}
		defer f.Close()
		return readLimited(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch startup file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch startup file: unexpected status %d", resp.StatusCode)
	}
	data, err := readLimited(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read startup response")
	}
	return data, nil
}

// LoadStartup is the best-effort load of the bundled file. Every failure is
// logged at debug level and otherwise ignored: the store is left untouched.
func (l *Loader) LoadStartup(ctx context.Context, source string) bool {
	if source == "" {
		return false
	}

	data, err := l.Fetch(ctx, source)
	if err != nil {
		slog.Debug("startup load skipped", "source", source, "error", err)
		return false
	}

	doc, err := cdxml.Parse(data)
	if err != nil {
		slog.Debug("startup load skipped", "source", source, "error", err)
		return false
	}

	l.Store.SetDocument(doc)
	slog.Info("loaded startup cooldowns", "source", source, "entries", len(doc.Entries))
	return true
}

// readLimited reads one byte past the limit so an oversized source is
// reported instead of silently cut off.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
