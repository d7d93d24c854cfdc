package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, runStatus string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string

	mux := http.NewServeMux()
	mux.HandleFunc("/v2/acts/acme~lead-actor/runs", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("waitForFinish"))

		var input map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, float64(5), input["totalResults"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id":               "run-1",
				"status":           runStatus,
				"defaultDatasetId": "ds-1",
			},
		})
	})
	mux.HandleFunc("/v2/datasets/ds-1/items", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("clean"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"fullName":"Ada"},{"fullName":"Grace"}]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestRunAndList(t *testing.T) {
	srv, paths := newTestServer(t, "SUCCEEDED")
	c := New(Config{Token: "test-token", BaseURL: srv.URL, Timeout: 5 * time.Second})

	items, err := c.RunAndList(context.Background(), "acme/lead-actor", map[string]any{"totalResults": 5}, 5)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, []string{"/v2/acts/acme~lead-actor/runs", "/v2/datasets/ds-1/items"}, *paths)
}

func TestCallActor_NonSucceededStatusIsError(t *testing.T) {
	srv, _ := newTestServer(t, "FAILED")
	c := New(Config{Token: "test-token", BaseURL: srv.URL, Timeout: 5 * time.Second})

	_, err := c.CallActor(context.Background(), "acme/lead-actor", map[string]any{"totalResults": 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FAILED")
}

func TestCallActor_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"actor-not-found"}}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	c := New(Config{Token: "t", BaseURL: srv.URL, Timeout: 5 * time.Second})

	_, err := c.CallActor(context.Background(), "acme/missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDatasetItems_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	t.Cleanup(srv.Close)
	c := New(Config{Token: "t", BaseURL: srv.URL, Timeout: 5 * time.Second})

	_, err := c.DatasetItems(context.Background(), "ds-1", 3)
	require.Error(t, err)
}
