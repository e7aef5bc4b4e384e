package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/koopa0/shortener/internal/auth"
	"github.com/koopa0/shortener/internal/cache"
	"github.com/koopa0/shortener/internal/codegen"
	"github.com/koopa0/shortener/internal/enrich"
	"github.com/koopa0/shortener/internal/historysvc"
	"github.com/koopa0/shortener/internal/linksvc"
	"github.com/koopa0/shortener/internal/redirectsvc"
	"github.com/koopa0/shortener/internal/storage"
	"github.com/koopa0/shortener/pkg/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := storage.NewMemory()
	gen, err := codegen.New(codegen.DefaultAlphabet, 6)
	require.NoError(t, err)
	idgen, err := snowflake.NewGenerator(1)
	require.NoError(t, err)
	logger := zap.NewNop()

	links := linksvc.New(store, cache.Null{}, gen, idgen, logger)
	history := historysvc.New(store)
	redirects := redirectsvc.New(links, &enrich.Geo{}, store, idgen, logger, redirectsvc.Config{Workers: 1, QueueSize: 8})
	gate := auth.New("test-api-key", "admin", "s3cret", "signing-secret", time.Hour)

	return New(links, history, redirects, gate, logger, "")
}

func doJSON(t *testing.T, srv *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateLinkRequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/shortens", createLinkRequest{OriginalURL: "https://example.com"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateLinkWithAPIKeyThenRedirect(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/shortens",
		createLinkRequest{OriginalURL: "https://example.com/target"},
		map[string]string{"X-API-KEY": "test-api-key"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created linkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.Code, 6)

	redirectRec := doJSON(t, srv, http.MethodGet, "/"+created.Code, nil, nil)
	assert.Equal(t, http.StatusFound, redirectRec.Code)
	assert.Equal(t, "https://example.com/target", redirectRec.Header().Get("Location"))
}

func TestRedirectMissingCodeIs404(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/doesnotexist", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginThenBearerAuthorizesCurrentUser(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/account/login", loginRequest{Username: "admin", Password: "s3cret"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	meRec := doJSON(t, srv, http.MethodGet, "/api/users/current", nil, map[string]string{"Authorization": "Bearer " + login.Token})
	require.Equal(t, http.StatusOK, meRec.Code)

	var me currentUserResponse
	require.NoError(t, json.Unmarshal(meRec.Body.Bytes(), &me))
	assert.Equal(t, "admin", me.Name)
}

func TestAPIKeyAuthorizesCurrentUserAsAdmin(t *testing.T) {
	srv := newTestServer(t)
	meRec := doJSON(t, srv, http.MethodGet, "/api/users/current", nil, map[string]string{"X-API-KEY": "test-api-key"})
	require.Equal(t, http.StatusOK, meRec.Code)

	var me currentUserResponse
	require.NoError(t, json.Unmarshal(meRec.Body.Bytes(), &me))
	assert.Equal(t, "admin", me.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/account/login", loginRequest{Username: "admin", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListLinksEnvelope(t *testing.T) {
	srv := newTestServer(t)
	headers := map[string]string{"X-API-KEY": "test-api-key"}
	doJSON(t, srv, http.MethodPost, "/api/shortens", createLinkRequest{OriginalURL: "https://example.com/1"}, headers)
	doJSON(t, srv, http.MethodPost, "/api/shortens", createLinkRequest{OriginalURL: "https://example.com/2"}, headers)

	rec := doJSON(t, srv, http.MethodGet, "/api/shortens", nil, headers)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []linkResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(2), envelope.Meta.Total)
	assert.Len(t, envelope.Data, 2)
}

func TestBatchDeleteLinks(t *testing.T) {
	srv := newTestServer(t)
	headers := map[string]string{"X-API-KEY": "test-api-key"}
	rec := doJSON(t, srv, http.MethodPost, "/api/shortens", createLinkRequest{OriginalURL: "https://example.com/3"}, headers)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created linkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	delRec := doJSON(t, srv, http.MethodPost, "/api/shortens/batch-delete", batchDeleteRequest{IDs: []int64{created.ID}}, headers)
	require.Equal(t, http.StatusOK, delRec.Code)
	var resp batchDeleteResponse
	require.NoError(t, json.Unmarshal(delRec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Count)
}
