package atrium

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atriumhq/atrium-go/pkg/config"
	"github.com/atriumhq/atrium-go/pkg/transport"
)

func TestNew_ValidatesConfig(t *testing.T) {
	_, err := New(config.Config{})
	require.Error(t, err)

	_, err = New(config.Config{APIURL: "https://api.atrium.dev", APIKey: "k"})
	assert.NoError(t, err, "version defaults when omitted")
}

func TestClient_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/agents":
			_, _ = w.Write([]byte(`{"data": [{"id": "a1", "name": "support-bot"}], "paging": {"limit": 10, "offset": 0, "total": 1}}`))
		case "/v1/drives/d1":
			_, _ = w.Write([]byte(`{"data": {"id": "d1", "name": "shared"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "not found"}`))
		}
	}))
	t.Cleanup(server.Close)

	client, err := New(config.Config{APIURL: server.URL, Version: "1", APIKey: "k"})
	require.NoError(t, err)

	agents, err := client.Agents.List(context.Background(), transport.Params{"limit": 10, "offset": 0})
	require.NoError(t, err)
	require.Len(t, agents.Items, 1)
	assert.Equal(t, "support-bot", agents.Items[0].Name)
	assert.Equal(t, 1, agents.Paging.Total)

	d, err := client.Drives.GetOne(context.Background(), "d1", nil)
	require.NoError(t, err)
	assert.Equal(t, "/drives/d1", d.URI)
	assert.Equal(t, "/drives/d1/items", d.ItemsURI())
	assert.Equal(t, "/drives/d1/uploads", d.UploadsURI())

	items := client.DriveItems(d)
	assert.Equal(t, "/drives/d1/items", items.Path())
	assert.Equal(t, "/drives/x/items", client.DriveItemsByID("x").Path())
}

func TestClient_ConfigRoundTrip(t *testing.T) {
	client, err := New(config.Config{APIURL: "https://api.atrium.dev", Version: "1", APIKey: "k"})
	require.NoError(t, err)

	cfg := client.Config()
	cfg.Verbose = true
	client.SetConfig(cfg)
	assert.True(t, client.Config().Verbose)
}
