package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryUpload(t *testing.T) {
	t.Run("sends signed multipart and returns the reference", func(t *testing.T) {
		var gotPath string
		var gotFields map[string]string
		var gotFile string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, r.ParseMultipartForm(1<<20))
			gotFields = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				gotFields[k] = v[0]
			}
			f, _, err := r.FormFile("file")
			require.NoError(t, err)
			raw, _ := io.ReadAll(f)
			gotFile = string(raw)

			json.NewEncoder(w).Encode(map[string]string{
				"public_id":  "talents/abc123",
				"secure_url": "https://res.cloudinary.test/talents/abc123.jpg",
			})
		}))
		defer srv.Close()

		store := NewCloudinaryStoreWithBase(srv.URL, "demo", "key", "secret", "talents")
		result, err := store.Upload(context.Background(), strings.NewReader("image bytes"), "photo.jpg")
		require.NoError(t, err)

		assert.Equal(t, "/v1_1/demo/image/upload", gotPath)
		assert.Equal(t, "key", gotFields["api_key"])
		assert.Equal(t, "talents", gotFields["folder"])
		assert.NotEmpty(t, gotFields["signature"])
		assert.NotEmpty(t, gotFields["timestamp"])
		assert.Equal(t, "image bytes", gotFile)

		assert.Equal(t, "https://res.cloudinary.test/talents/abc123.jpg", result.URL)
		assert.Equal(t, "talents/abc123", result.PublicID)
	})

	t.Run("API error surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "Invalid Signature"}})
		}))
		defer srv.Close()

		store := NewCloudinaryStoreWithBase(srv.URL, "demo", "key", "wrong", "")
		_, err := store.Upload(context.Background(), strings.NewReader("x"), "photo.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid Signature")
	})

	t.Run("missing credentials fail fast", func(t *testing.T) {
		store := NewCloudinaryStore("", "", "", "")
		_, err := store.Upload(context.Background(), strings.NewReader("x"), "photo.jpg")
		require.Error(t, err)
	})
}

func TestCloudinarySign(t *testing.T) {
	store := NewCloudinaryStore("demo", "key", "secret", "")

	sig1 := store.sign(map[string]string{"timestamp": "1700000000", "folder": "talents"})
	sig2 := store.sign(map[string]string{"folder": "talents", "timestamp": "1700000000"})
	sig3 := store.sign(map[string]string{"folder": "talents", "timestamp": "1700000001"})

	// Signature depends on sorted params, not map order.
	assert.Equal(t, sig1, sig2)
	assert.NotEqual(t, sig1, sig3)
	assert.Len(t, sig1, 40)
}

func TestSheetsAppendRow(t *testing.T) {
	t.Run("posts the row with bearer auth", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string][]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		p := NewSheetsProvider(srv.URL, "tok-123")
		err := p.AppendRow(context.Background(), []string{"fan@test.com", "2026-08-31T00:00:00Z"})
		require.NoError(t, err)

		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.Equal(t, []string{"fan@test.com", "2026-08-31T00:00:00Z"}, gotBody["values"])
	})

	t.Run("non-2xx surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		p := NewSheetsProvider(srv.URL, "")
		err := p.AppendRow(context.Background(), []string{"fan@test.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("missing endpoint fails fast", func(t *testing.T) {
		p := NewSheetsProvider("", "")
		require.Error(t, p.AppendRow(context.Background(), []string{"x"}))
	})
}
