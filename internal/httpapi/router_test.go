package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abianche/uoo-cooldown-manager/internal/cdxml"
	"github.com/abianche/uoo-cooldown-manager/internal/config"
	"github.com/abianche/uoo-cooldown-manager/internal/loader"
	"github.com/abianche/uoo-cooldown-manager/internal/models"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

const testXML = `<cooldowns>
  <cooldownentry>
    <name>Bandage</name>
    <defaultcooldown>10</defaultcooldown>
    <cooldownbartype>Bandage</cooldownbartype>
    <trigger>
      <triggertype>SysMessage</triggertype>
      <duration>10</duration>
      <triggertext>You begin applying the bandages.</triggertext>
    </trigger>
  </cooldownentry>
  <cooldownentry>
    <name>Criminal</name>
  </cooldownentry>
</cooldowns>`

type testServer struct {
	handler http.Handler
	store   *store.Store
}

func newTestServer(t *testing.T, keys ...config.APIKey) *testServer {
	t.Helper()
	cfg := &config.Config{
		APIKeys: keys,
		Export:  config.ExportConfig{Filename: "cooldowns.xml", CacheTTL: time.Minute},
	}
	st := store.New()
	return &testServer{handler: NewRouter(cfg, st, loader.New(st)), store: st}
}

func (s *testServer) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) store.Snapshot {
	t.Helper()
	var snap store.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func TestHealthAndVersion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), Version)
}

func TestMutationsBeforeLoad(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/entries", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/document/xml", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, decodeSnapshot(t, rec).Document)
}

func TestUploadAndEdit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/document", testXML, "Content-Type", "application/xml")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec)
	require.Len(t, snap.Document.Entries, 2)
	require.Nil(t, snap.Error)

	rec = s.do(t, http.MethodPost, "/api/entries", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeSnapshot(t, rec).Document.Entries, 3)

	rec = s.do(t, http.MethodPut, "/api/entries/2", `{"name":"Walk","cooldownBarType":"Walk","hue":5,"hideWhenInactive":false,"defaultCooldown":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	walk := decodeSnapshot(t, rec).Document.Entries[2]
	require.Equal(t, "Walk", walk.Name)
	require.Equal(t, models.CooldownBarWalk, walk.CooldownBarType)
	require.Empty(t, walk.Triggers)

	rec = s.do(t, http.MethodPost, "/api/entries/reorder", `{"from":2,"to":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeSnapshot(t, rec).Document.Entries
	require.Equal(t, "Walk", entries[0].Name)
	require.Equal(t, "Bandage", entries[1].Name)

	rec = s.do(t, http.MethodPost, "/api/entries/1/triggers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeSnapshot(t, rec).Document.Entries[1].Triggers, 2)

	rec = s.do(t, http.MethodPut, "/api/entries/1/triggers/1", `{"triggerType":"BuffAdded","duration":5,"triggerText":"Haste"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.Trigger{TriggerType: models.TriggerBuffAdded, Duration: 5, TriggerText: "Haste"},
		decodeSnapshot(t, rec).Document.Entries[1].Triggers[1])

	rec = s.do(t, http.MethodDelete, "/api/entries/1/triggers/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeSnapshot(t, rec).Document.Entries[1].Triggers, 1)

	rec = s.do(t, http.MethodDelete, "/api/entries/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeSnapshot(t, rec).Document.Entries, 2)

	rec = s.do(t, http.MethodPatch, "/api/settings", `{"cooldownBarWidth":250}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, models.Settings{ShowCooldownGump: true, CooldownBarHeight: 20, CooldownBarWidth: 250},
		*decodeSnapshot(t, rec).Document.Settings)
}

func TestOutOfRangeAndBadInput(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML).Code)
	before := s.store.Snapshot()

	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/entries/9", "").Code)
	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/entries/9", `{"name":"x"}`).Code)
	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/entries/reorder", `{"from":0,"to":5}`).Code)
	require.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/entries/0/triggers/4", "").Code)
	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodDelete, "/api/entries/abc", "").Code)
	require.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/entries/0", `{"nope":1}`).Code)

	require.Equal(t, before, s.store.Snapshot())
}

func TestUploadFailureKeepsDocument(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML).Code)

	rec := s.do(t, http.MethodPost, "/api/document", `<cooldowns><cooldownentry>`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	snap := decodeSnapshot(t, rec)
	require.NotNil(t, snap.Error)
	require.Len(t, snap.Document.Entries, 2)

	rec = s.do(t, http.MethodDelete, "/api/error", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, decodeSnapshot(t, rec).Error)
}

func TestMultipartUpload(t *testing.T) {
	t.Parallel()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "cooldowns.xml")
	require.NoError(t, err)
	_, err = fw.Write([]byte(testXML))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/document", body.String(), "Content-Type", mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeSnapshot(t, rec).Document.Entries, 2)
}

func TestExport(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML).Code)

	rec := s.do(t, http.MethodGet, "/api/document/xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename=cooldowns.xml`, rec.Header().Get("Content-Disposition"))
	require.True(t, strings.HasPrefix(rec.Body.String(), cdxml.Header))

	exported, err := cdxml.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, s.store.Document(), exported)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	rec = s.do(t, http.MethodGet, "/api/document/xml", "", "If-None-Match", etag)
	require.Equal(t, http.StatusNotModified, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/document/xml?inline=1", "")
	require.Equal(t, `inline; filename=cooldowns.xml`, rec.Header().Get("Content-Disposition"))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/entries", "").Code)
	rec = s.do(t, http.MethodGet, "/api/document/xml", "", "If-None-Match", etag)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEqual(t, etag, rec.Header().Get("ETag"))
}

func TestAPIKeyAuth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, config.APIKey{Name: "editor", Key: "secret"})
	require.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/state", "").Code)
	require.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/state", "", "X-API-Key", "wrong").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/state", "", "X-API-Key", "secret").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", "").Code)
}

func TestReadOnlyAPIKey(t *testing.T) {
	t.Parallel()

	s := newTestServer(t,
		config.APIKey{Name: "editor", Key: "secret"},
		config.APIKey{Name: "dashboard", Key: "look", Role: config.RoleViewer},
	)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML, "X-API-Key", "secret").Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/state", "", "X-API-Key", "look").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/document/xml", "", "X-API-Key", "look").Code)

	before := s.store.Snapshot()
	require.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/entries", "", "X-API-Key", "look").Code)
	require.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/entries/0", "", "X-API-Key", "look").Code)
	require.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/document", testXML, "X-API-Key", "look").Code)
	require.Equal(t, before, s.store.Snapshot())
}

func TestOversizedUpload(t *testing.T) {
	t.Parallel()

	oversized := testXML + strings.Repeat(" ", loader.MaxDocumentSize)

	t.Run("raw body", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML).Code)

		rec := s.do(t, http.MethodPost, "/api/document", oversized, "Content-Type", "application/xml")
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		snap := decodeSnapshot(t, rec)
		require.NotNil(t, snap.Error)
		require.Len(t, snap.Document.Entries, 2)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", "cooldowns.xml")
		require.NoError(t, err)
		_, err = fw.Write([]byte(oversized))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		s := newTestServer(t)
		rec := s.do(t, http.MethodPost, "/api/document", body.String(), "Content-Type", mw.FormDataContentType())
		require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		require.Nil(t, decodeSnapshot(t, rec).Document)
	})
}

func TestExportWarnsWhenEmpty(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML).Code)

	rec := s.do(t, http.MethodGet, "/api/document/xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get(ExportWarningHeader))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/entries/0", "").Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/entries/0", "").Code)

	rec = s.do(t, http.MethodGet, "/api/document/xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get(ExportWarningHeader))

	_, err := cdxml.Parse(rec.Body.Bytes())
	require.Error(t, err)
}

func TestEditDropsControlCharacters(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/document", testXML).Code)

	rec := s.do(t, http.MethodPut, "/api/entries/0", `{"name":"Ban\u0001dage","triggers":[{"triggerText":"go\u0008ne\n"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	entry := decodeSnapshot(t, rec).Document.Entries[0]
	require.Equal(t, "Bandage", entry.Name)
	require.Equal(t, "gone\n", entry.Triggers[0].TriggerText)

	rec = s.do(t, http.MethodGet, "/api/document/xml", "")
	require.Equal(t, http.StatusOK, rec.Code)
	exported, err := cdxml.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	require.Equal(t, s.store.Document(), exported)
}

func TestRecoverMiddleware(t *testing.T) {
	t.Parallel()

	h := RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
