package drive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium-go/pkg/config"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

func newTestItems(t *testing.T, handler http.HandlerFunc) (*Items, *int32) {
	t.Helper()
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	store := config.NewStore(config.Config{
		APIURL:  server.URL,
		Version: "1",
		APIKey:  "test-key",
	})
	return NewItems(transport.NewClient(store), "/drives/d1/items"), &requests
}

func TestFindByPath_File(t *testing.T) {
	items, _ := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/drives/d1/items/path", r.URL.Path)
		assert.Equal(t, "docs/readme.md", r.URL.Query().Get("path"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": "i1", "name": "readme.md", "path": "/docs/readme.md", "size": 120}}`))
	})

	// The leading slash is stripped before transmission.
	res, err := items.FindByPath(context.Background(), "/docs/readme.md", nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.IsFolder())
	require.NotNil(t, res.Item)
	assert.Equal(t, "readme.md", res.Item.Name)
	assert.Equal(t, int64(120), res.Item.Size)
}

func TestFindByPath_Folder(t *testing.T) {
	items, _ := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [
			{"id": "i1", "name": "a.txt", "is_folder": false},
			{"id": "i2", "name": "sub", "is_folder": true}
		]}`))
	})

	res, err := items.FindByPath(context.Background(), "docs", nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsFolder())
	require.Len(t, res.Listing, 2)
	assert.Equal(t, "a.txt", res.Listing[0].Name)
	assert.True(t, res.Listing[1].IsFolder)
}

func TestFindByPath_NotFoundIsNil(t *testing.T) {
	items, _ := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "path not found"}`))
	})

	res, err := items.FindByPath(context.Background(), "/missing/file.txt", nil)
	require.NoError(t, err, "absence is a valid lookup outcome, not an error")
	assert.Nil(t, res)
}

func TestFindByPath_CaseSensitive(t *testing.T) {
	items, _ := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("case_sensitive"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": "i1", "name": "README.md"}}`))
	})

	_, err := items.FindByPath(context.Background(), "README.md", &FindOptions{CaseSensitive: true})
	require.NoError(t, err)
}

func TestFindByPath_EmptyPath(t *testing.T) {
	items, requests := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := items.FindByPath(context.Background(), "/", nil)
	require.Error(t, err)
	assert.Equal(t, int32(0), *requests)
}

func TestFindByPath_OtherErrorsPropagate(t *testing.T) {
	items, _ := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "not allowed"}`))
	})

	_, err := items.FindByPath(context.Background(), "secret.txt", nil)
	require.Error(t, err)
	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestItems_IsACollection(t *testing.T) {
	items, _ := newTestItems(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/drives/d1/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"id": "i1", "name": "a.txt"}]}`))
	})

	result, err := items.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "/drives/d1/items/i1", result.Items[0].URI)
}
