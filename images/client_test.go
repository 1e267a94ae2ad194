package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenorFirstGIF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "HOMESTRETCH", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"results":[{"media_formats":{"gif":{"url":"https://tenor.example/a.gif"}}}]}`))
	}))
	defer server.Close()

	tenor := NewTenor("test-key")
	tenor.BaseURL = server.URL

	url, err := tenor.FirstGIF(context.Background(), "HOMESTRETCH")
	require.NoError(t, err)
	assert.Equal(t, "https://tenor.example/a.gif", url)
}

func TestTenorNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	tenor := NewTenor("test-key")
	tenor.BaseURL = server.URL

	_, err := tenor.FirstGIF(context.Background(), "HOMESTRETCH")
	assert.Error(t, err)
}

func TestGiphyFirstGIF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(`{"data":[{"url":"https://giphy.example/b.gif"}]}`))
	}))
	defer server.Close()

	giphy := NewGiphy("test-key")
	giphy.BaseURL = server.URL

	url, err := giphy.FirstGIF(context.Background(), "HOMESTRETCH")
	require.NoError(t, err)
	assert.Equal(t, "https://giphy.example/b.gif", url)
}

func TestEmptyQueryRejected(t *testing.T) {
	_, err := NewTenor("k").FirstGIF(context.Background(), "")
	assert.Error(t, err)

	_, err = NewGiphy("k").FirstGIF(context.Background(), "")
	assert.Error(t, err)
}
