package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) Client {
	return NewNominatimClient(config.GeocodeConfig{
		BaseURL:   serverURL,
		UserAgent: "attendance-backend-test",
		Timeout:   2 * time.Second,
	})
}

func TestReverseGeocode(t *testing.T) {
	t.Run("returns the display name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "12.971600", r.URL.Query().Get("lat"))
			assert.Equal(t, "attendance-backend-test", r.Header.Get("User-Agent"))
			w.Write([]byte(`{"display_name": "MG Road, Bengaluru, Karnataka, India"}`))
		}))
		defer server.Close()

		address, err := newTestClient(server.URL).ReverseGeocode(context.Background(), 12.9716, 77.5946)
		require.NoError(t, err)
		assert.Equal(t, "MG Road, Bengaluru, Karnataka, India", address)
	})

	t.Run("treats an error body as no address", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).ReverseGeocode(context.Background(), 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects non-200 responses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).ReverseGeocode(context.Background(), 12.9716, 77.5946)
		assert.Error(t, err)
	})
}
