package wordpress_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/infrastructure/wordpress"
	"github.com/ccsdigital/frameworkhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *wordpress.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := wordpress.NewClient(config.NewWordPressConfigWithOptions(
		config.WithCMSBaseURL(server.URL),
		config.WithCMSCredentials("api-user", "app-password"),
	))
	require.NoError(t, err)
	return client
}

func TestClient_RequiresConfig(t *testing.T) {
	_, err := wordpress.NewClient(config.NewWordPressConfig())
	assert.ErrorIs(t, err, wordpress.ErrNotConfigured)
}

func TestClient_CreateEntry(t *testing.T) {
	var captured map[string]string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wp/v2/framework", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "api-user", user)
		assert.Equal(t, "app-password", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 501})
	}))

	id, err := client.CreateEntry(context.Background(), service.ContentFramework, "Technology Products")
	require.NoError(t, err)
	assert.Equal(t, int64(501), id)
	assert.Equal(t, "Technology Products", captured["title"])
	assert.Equal(t, "draft", captured["status"])
}

func TestClient_UpdateTitle(t *testing.T) {
	var captured map[string]string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wp/v2/lot/601", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 601})
	}))

	err := client.UpdateTitle(context.Background(), service.ContentLot, 601, "Lot 1: Hardware")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"title": "Lot 1: Hardware"}, captured)
}

func TestClient_CreateEntry_ErrorStatus(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"rest_cannot_create"}`))
	}))

	_, err := client.CreateEntry(context.Background(), service.ContentFramework, "Denied")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}
