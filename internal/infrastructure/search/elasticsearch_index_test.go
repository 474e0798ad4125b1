package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

func newTestIndex(t *testing.T, h http.HandlerFunc) *ElasticIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewElasticIndex(es, "users", "rooms", helpers.NewNopLogger())
}

func TestSearchRoomsReturnsIDs(t *testing.T) {
	var body map[string]any
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/rooms/_search"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"r2","_source":{}},{"_id":"r1","_source":{}}]}}`))
	})

	ids, err := idx.SearchRooms(context.Background(), "sea view", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r1"}, ids)
	assert.EqualValues(t, 5, body["size"])
}

func TestIndexRoomSendsDocument(t *testing.T) {
	var path string
	idx := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	err := idx.IndexRoom(context.Background(), &entity.Room{ID: "r9", Number: "909", Type: entity.RoomSuite})
	require.NoError(t, err)
	assert.Equal(t, "/rooms/_doc/r9", path)
}

func TestDisabledIndex(t *testing.T) {
	idx := NewElasticIndex(nil, "users", "rooms", helpers.NewNopLogger())
	assert.False(t, idx.Enabled())
	assert.NoError(t, idx.IndexUser(context.Background(), &entity.User{ID: "u"}))

	_, err := idx.SearchRooms(context.Background(), "x", 5)
	assert.ErrorIs(t, err, provider.ErrSearchDisabled)

	users, err := idx.SearchUsers(context.Background(), "x", 5)
	require.NoError(t, err)
	assert.Empty(t, users)
}
