package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadengine/internal/config"
	"leadengine/internal/domain"
	"leadengine/internal/events"
	"leadengine/internal/secrets"
)

func testDeps(t *testing.T, runSearch func(context.Context, config.Config, string, domain.SearchCriteria) ([]domain.Lead, error)) Deps {
	t.Helper()

	var cfgVal atomic.Value
	var cfg config.Config
	cfg.App.Port = 38472
	cfg.App.DataDir = t.TempDir()
	cfgVal.Store(cfg)

	return Deps{
		Hub:    events.NewHub(),
		CfgVal: &cfgVal,
		LookupToken: func(string) (string, error) {
			return "test-token", nil
		},
		RunSearch: runSearch,
	}
}

func postRunSearch(t *testing.T, d Deps, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/run-search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	NewMux(d).ServeHTTP(rec, req)
	return rec
}

func TestRunSearch_Success(t *testing.T) {
	var got domain.SearchCriteria
	d := testDeps(t, func(ctx context.Context, cfg config.Config, token string, c domain.SearchCriteria) ([]domain.Lead, error) {
		got = c
		return []domain.Lead{{FullName: "Ada", Posts: []string{}, GeneratedEmail: "Hi Ada"}}, nil
	})

	rec := postRunSearch(t, d, `{"industry":"Food","maxResults":5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Food", got.Industry)
	assert.Equal(t, 5, got.MaxResults)

	var resp struct {
		Leads []domain.Lead `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "Ada", resp.Leads[0].FullName)
}

func TestRunSearch_QuotedEscapedBodyRecovered(t *testing.T) {
	var got domain.SearchCriteria
	d := testDeps(t, func(ctx context.Context, cfg config.Config, token string, c domain.SearchCriteria) ([]domain.Lead, error) {
		got = c
		return nil, nil
	})

	rec := postRunSearch(t, d, `'"{\"industry\":\"Food\"}"'`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Food", got.Industry)
}

func TestRunSearch_NilLeadsEncodeAsEmptyArray(t *testing.T) {
	d := testDeps(t, func(ctx context.Context, cfg config.Config, token string, c domain.SearchCriteria) ([]domain.Lead, error) {
		return nil, nil
	})

	rec := postRunSearch(t, d, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"leads":[]}`, rec.Body.String())
}

func TestRunSearch_MissingToken(t *testing.T) {
	d := testDeps(t, nil)
	d.LookupToken = func(string) (string, error) { return "", secrets.ErrTokenNotFound }

	rec := postRunSearch(t, d, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var e APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "Missing APIFY_API_TOKEN", e.Error)
}

func TestRunSearch_MalformedBodyEchoed(t *testing.T) {
	d := testDeps(t, nil)

	rec := postRunSearch(t, d, `{not json at all`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var e APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.NotEmpty(t, e.Error)
	assert.Equal(t, `{not json at all`, e.RawBody)
}

func TestRunSearch_PipelineErrorIs500(t *testing.T) {
	d := testDeps(t, func(ctx context.Context, cfg config.Config, token string, c domain.SearchCriteria) ([]domain.Lead, error) {
		return nil, errors.New("lead search (full tier): actor exploded")
	})

	rec := postRunSearch(t, d, `{}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var e APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Contains(t, e.Error, "actor exploded")
}

func TestRunSearch_MethodNotAllowed(t *testing.T) {
	d := testDeps(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/run-search", nil)
	rec := httptest.NewRecorder()
	NewMux(d).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParseCriteria(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr bool
		want    string // expected industry
	}{
		{name: "plain object", body: `{"industry":"Food"}`, want: "Food"},
		{name: "single-quoted escaped string", body: `'"{\"industry\":\"Food\"}"'`, want: "Food"},
		{name: "escaped without single quotes", body: `"{\"industry\":\"Food\"}"`, want: "Food"},
		{name: "garbage", body: `]]]`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := parseCriteria([]byte(tc.body))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Industry)
		})
	}
}
