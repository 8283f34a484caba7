package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reviewdesk/internal/middleware"
	"reviewdesk/internal/pkg/jwt"
	"reviewdesk/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *jwt.Service, func(...any)) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _, db := setupAdmin(t)
	tokens := jwt.New("test-secret", time.Hour)

	r := gin.New()
	group := r.Group("/api/v1/admin")
	group.Use(middleware.JWTAuth(tokens), middleware.AdminOnly())
	NewHandler(svc).RegisterRoutes(group)

	return r, tokens, func(rows ...any) { testutil.Insert(t, db, rows...) }
}

func do(t *testing.T, r *gin.Engine, token, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestAdminReviewEndpoints(t *testing.T) {
	r, tokens, insert := setupRouter(t)
	insert(
		testutil.PlatformReview("rev-1", "u-client", "u-worker", testutil.At(1)),
		testutil.LegacyReview("old-1", "lp", "u", testutil.At(2)),
	)
	admin, _ := tokens.GenerateToken("admin-1", "admin")

	w, resp := do(t, r, admin, http.MethodGet, "/api/v1/admin/reviews?page=1&per_page=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Rows       []map[string]any `json:"rows"`
		TotalCount int              `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, 2, list.TotalCount)
	assert.Equal(t, "old-1", list.Rows[0]["id"])

	w, _ = do(t, r, admin, http.MethodGet, "/api/v1/admin/reviews?per_page=500", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, r, admin, http.MethodGet, "/api/v1/admin/reviews/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"pending":2`)

	w, resp = do(t, r, admin, http.MethodPost, "/api/v1/admin/reviews/platform_review/rev-1/moderate",
		map[string]any{"action": "publish", "note": "ok"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"status":"published"`)

	w, resp = do(t, r, admin, http.MethodPost, "/api/v1/admin/reviews/legacy_worker_review/old-1/moderate",
		map[string]any{"action": "hide"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CAPABILITY_ERROR", resp.Error.Code)

	w, resp = do(t, r, admin, http.MethodPost, "/api/v1/admin/reviews/platform_review/rev-1/moderate",
		map[string]any{"action": "archive"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	w, _ = do(t, r, admin, http.MethodGet, "/api/v1/admin/reviews/bogus/rev-1/thread", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = do(t, r, admin, http.MethodGet, "/api/v1/admin/reviews/platform_review/rev-1/thread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"admin_note":"ok"`)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r, tokens, _ := setupRouter(t)
	worker, _ := tokens.GenerateToken("w-1", "worker")

	w, resp := do(t, r, worker, http.MethodGet, "/api/v1/admin/reviews", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	w, _ = do(t, r, "", http.MethodGet, "/api/v1/admin/reviews", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerateLogsOncePerOutcome(t *testing.T) {
	var buf bytes.Buffer
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	r, tokens, insert := setupRouter(t)
	insert(
		testutil.PlatformReview("rev-1", "u-client", "u-worker", testutil.At(1)),
		testutil.LegacyReview("old-1", "lp", "u", testutil.At(2)),
	)
	admin, _ := tokens.GenerateToken("admin-1", "admin")

	w, _ := do(t, r, admin, http.MethodPost, "/api/v1/admin/reviews/platform_review/rev-1/moderate",
		map[string]any{"action": "hide"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(buf.String(), "moderate review"), buf.String())
	assert.Contains(t, buf.String(), "admin action: moderate review")

	buf.Reset()
	w, _ = do(t, r, admin, http.MethodPost, "/api/v1/admin/reviews/legacy_worker_review/old-1/moderate",
		map[string]any{"action": "hide"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 1, strings.Count(buf.String(), "moderate review"), buf.String())
	assert.Contains(t, buf.String(), "admin action failed: moderate review")
}
