package review

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewdesk/internal/middleware"
	"reviewdesk/internal/pkg/jwt"
	"reviewdesk/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *jwt.Service, func(...any)) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, db := setupService(t)
	tokens := jwt.New("test-secret", time.Hour)

	r := gin.New()
	authed := r.Group("/api/v1")
	authed.Use(middleware.JWTAuth(tokens))
	NewHandler(svc).RegisterRoutes(authed, middleware.RequireRole("client"), middleware.RequireRole("client", "worker"))

	return r, tokens, func(rows ...any) { testutil.Insert(t, db, rows...) }
}

func call(t *testing.T, r *gin.Engine, token, method, path string, body any) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestParticipantReplyFlow(t *testing.T) {
	r, tokens, insert := setupRouter(t)
	insert(testutil.PlatformReview("rev-1", "u-client", "u-worker", testutil.At(0)))

	worker, _ := tokens.GenerateToken("u-worker", "worker")
	code, resp := call(t, r, worker, http.MethodPost, "/api/v1/reviews/platform_review/rev-1/replies", gin.H{"content": "  thanks!  "})
	require.Equal(t, http.StatusCreated, code)

	var reply struct {
		SenderRole string `json:"sender_role"`
		SenderRef  string `json:"sender_ref"`
		Content    string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &reply))
	assert.Equal(t, "worker", reply.SenderRole)
	assert.Equal(t, "u-worker", reply.SenderRef)
	assert.Equal(t, "thanks!", reply.Content)

	code, resp = call(t, r, worker, http.MethodGet, "/api/v1/reviews/platform_review/rev-1/thread", nil)
	require.Equal(t, http.StatusOK, code)
	var thread struct {
		Items []struct {
			ItemType string `json:"item_type"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &thread))
	require.Len(t, thread.Items, 2)
	assert.Equal(t, "review", thread.Items[0].ItemType)
	assert.Equal(t, "message", thread.Items[1].ItemType)
}

func TestParticipantRoutesRejectBadInput(t *testing.T) {
	r, tokens, insert := setupRouter(t)
	insert(testutil.LegacyReview("old-1", "lp", "lc", testutil.At(0)))

	client, _ := tokens.GenerateToken("u-client", "client")
	admin, _ := tokens.GenerateToken("u-admin", "admin")

	tests := []struct {
		name   string
		token  string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"unknown source", client, http.MethodGet, "/api/v1/reviews/nope/x/thread", nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing review", client, http.MethodGet, "/api/v1/reviews/platform_review/missing/thread", nil, http.StatusNotFound, "NOT_FOUND"},
		{"legacy is read-only", client, http.MethodPost, "/api/v1/reviews/legacy_worker_review/old-1/replies", gin.H{"content": "hi"}, http.StatusConflict, "CAPABILITY_ERROR"},
		{"empty content", client, http.MethodPost, "/api/v1/reviews/platform_review/x/replies", gin.H{"content": ""}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"admins cannot reply", admin, http.MethodPost, "/api/v1/reviews/platform_review/x/replies", gin.H{"content": "hi"}, http.StatusForbidden, "FORBIDDEN"},
		{"rating out of range", client, http.MethodPost, "/api/v1/reviews", gin.H{"source": "platform_review", "worker_ref": "w", "rating": 9, "content": "x"}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := call(t, r, tt.token, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestCreateReviewEndpoint(t *testing.T) {
	r, tokens, _ := setupRouter(t)
	client, _ := tokens.GenerateToken("u-client", "client")

	code, resp := call(t, r, client, http.MethodPost, "/api/v1/reviews", gin.H{
		"source":     "platform_review",
		"worker_ref": "u-worker",
		"rating":     5,
		"content":    "Great job",
	})
	require.Equal(t, http.StatusCreated, code)

	var rv struct {
		ClientRef string `json:"client_ref"`
		Status    string `json:"status"`
		IsPublic  bool   `json:"is_public"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &rv))
	assert.Equal(t, "u-client", rv.ClientRef)
	assert.Equal(t, "pending", rv.Status)
	assert.False(t, rv.IsPublic)

	worker, _ := tokens.GenerateToken("u-worker", "worker")
	code, _ = call(t, r, worker, http.MethodPost, "/api/v1/reviews", gin.H{
		"source": "platform_review", "worker_ref": "x", "rating": 5, "content": "self",
	})
	assert.Equal(t, http.StatusForbidden, code)
}
