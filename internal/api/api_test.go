package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meur/dotasource/internal/config"
	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/serializer"
	"github.com/meur/dotasource/internal/source"
	"github.com/meur/dotasource/internal/storage"
)

const fixtures = "../serializer/testdata"

// fixtureLoader serves payloads straight from the serializer fixtures.
type fixtureLoader struct {
	err error
}

func (l fixtureLoader) Load(_ context.Context, kind serializer.Kind) (source.Payload, error) {
	if l.err != nil {
		return source.Payload{}, l.err
	}
	files := map[serializer.Kind][2]string{
		serializer.KindAbilities: {"npc_abilities.json", "abilities_english.json"},
		serializer.KindHeroes:    {"npc_heroes.json", ""},
		serializer.KindItems:     {"items.json", "dota_english.json"},
	}
	f, ok := files[kind]
	if !ok {
		return source.Payload{}, serializer.ErrUnknownKind
	}
	p := source.Payload{Kind: kind}
	var err error
	if p.Data, err = os.ReadFile(filepath.Join(fixtures, f[0])); err != nil {
		return source.Payload{}, err
	}
	if f[1] != "" {
		if p.I18n, err = os.ReadFile(filepath.Join(fixtures, f[1])); err != nil {
			return source.Payload{}, err
		}
	}
	return p, nil
}

func newTestServer(t *testing.T, loader source.Loader, token string) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.Default()
	cfg.Source.BaseURL = "https://mirror.example"
	cfg.Source.SecretToken = token
	return New(store, loader, cfg, zap.NewNop()), store
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, fixtureLoader{}, "")
	rec := get(t, srv, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestGetSource(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, fixtureLoader{}, "")

	tests := []struct {
		kind  string
		count int
	}{
		{"abilities", 6},
		{"heroes", 2},
		{"items", 8},
	}
	for _, tt := range tests {
		rec := get(t, srv, "/GetSource?type="+tt.kind)
		require.Equal(t, http.StatusOK, rec.Code, tt.kind)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var records []json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records), tt.kind)
		assert.Len(t, records, tt.count, tt.kind)
	}
}

func TestGetSource_Pretty(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, fixtureLoader{}, "")

	compact := get(t, srv, "/GetSource?type=heroes")
	pretty := get(t, srv, "/GetSource?type=heroes&pretty=1")
	require.Equal(t, http.StatusOK, pretty.Code)
	assert.Contains(t, pretty.Body.String(), "\n  {")
	assert.JSONEq(t, compact.Body.String(), pretty.Body.String())
}

func TestGetSource_BadRequest(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, fixtureLoader{}, "")

	rec := get(t, srv, "/GetSource")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "Missing `type`")

	rec = get(t, srv, "/GetSource?type=couriers")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "'couriers' does not exist")
}

func TestGetSource_Token(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, fixtureLoader{}, "s3cret")

	tests := []struct {
		target string
		status int
	}{
		{"/GetSource?type=heroes", http.StatusUnauthorized},
		{"/GetSource?type=heroes&token=nope", http.StatusUnauthorized},
		{"/GetSource?type=heroes&token=s3cre", http.StatusUnauthorized},
		{"/GetSource?type=heroes&token=s3cret", http.StatusOK},
		{"/api/sources/heroes", http.StatusUnauthorized},
		{"/api/sources/heroes?token=s3cret", http.StatusOK},
		// listings are public
		{"/api/sources", http.StatusOK},
	}
	for _, tt := range tests {
		rec := get(t, srv, tt.target)
		assert.Equal(t, tt.status, rec.Code, tt.target)
	}
}

func TestGetSource_LoaderError(t *testing.T) {
	t.Parallel()

	upstream := fmt.Errorf("%w: 503 Service Unavailable", source.ErrUpstream)
	srv, _ := newTestServer(t, fixtureLoader{err: upstream}, "")

	rec := get(t, srv, "/GetSource?type=items")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorBody(t, rec), "UpstreamError")

	srv, _ = newTestServer(t, fixtureLoader{err: errors.New("disk on fire")}, "")
	rec = get(t, srv, "/GetSource?type=items")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, errorBody(t, rec), "disk on fire")
}

func TestListSources(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, fixtureLoader{}, "")
	rec := get(t, srv, "/api/sources")
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []models.SourceInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, len(serializer.Kinds))
	assert.Equal(t, "abilities", infos[0].Kind)
	assert.Equal(t, "https://mirror.example/dota/scripts/npc/npc_abilities.json", infos[0].DataURL)
}

func TestSnapshots(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t, fixtureLoader{}, "")

	rec := get(t, srv, "/api/snapshots/latest/heroes")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	created, err := store.CreateSnapshot(&models.SnapshotCreate{
		Kind:     "heroes",
		Revision: "rev-1",
		Count:    1,
		Payload:  json.RawMessage(`[{"id":1}]`),
	})
	require.NoError(t, err)

	rec = get(t, srv, "/api/snapshots/latest/heroes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rev-1", rec.Header().Get("X-Snapshot-Revision"))
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())

	rec = get(t, srv, "/api/snapshots/"+created.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, created.ID, snap.ID)
	assert.JSONEq(t, `[{"id":1}]`, string(snap.Payload))

	rec = get(t, srv, "/api/snapshots/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(t, srv, "/api/snapshots?kind=heroes")
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Snapshots  []models.SnapshotSummary `json:"snapshots"`
		TotalCount int                      `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.TotalCount)

	rec = get(t, srv, "/api/snapshots?kind=couriers")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = get(t, srv, "/api/snapshots/latest/couriers")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSecureCompare(t *testing.T) {
	t.Parallel()

	assert.True(t, secureCompare("abc", "abc"))
	assert.True(t, secureCompare("", ""))
	assert.False(t, secureCompare("abc", "abd"))
	assert.False(t, secureCompare("abc", "ab"))
	assert.False(t, secureCompare("ab", "ab\x00"))
}
