package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aajcs/apiLionGym/internal/auth"
	"github.com/aajcs/apiLionGym/internal/model"
	"github.com/aajcs/apiLionGym/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUserTestRouter(t *testing.T) (*gin.Engine, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newStubUserRepo()
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	log := slog.New(slog.DiscardHandler)

	h := NewUserHandler(service.NewUserService(repo, tokens, log), log)

	router := gin.New()
	users := router.Group("/api/users")
	users.GET("", h.List)
	users.POST("", h.Create)
	users.GET("/:id", h.Get)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", h.Delete)

	return router, repo
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserCreateEndpoint(t *testing.T) {
	router, _ := newUserTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/users", model.CreateUserRequest{
		Name: "Ana", Email: "Ana@Example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ana@example.com", resp.User.Email, "email is normalized")
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, w.Body.String(), "secret123")
}

func TestUserCreateEndpointRejectsBadEmail(t *testing.T) {
	router, _ := newUserTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/users", model.CreateUserRequest{
		Name: "Ana", Email: "not-an-email", Password: "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserCreateEndpointDuplicate(t *testing.T) {
	router, _ := newUserTestRouter(t)

	req := model.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
	require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/api/users", req).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPost, "/api/users", req).Code)
}

func TestUserUpdateEndpointIgnoresIdentity(t *testing.T) {
	router, _ := newUserTestRouter(t)

	created := doJSON(router, http.MethodPost, "/api/users", model.CreateUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var createdResp model.AuthResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdResp))

	w := doJSON(router, http.MethodPut, "/api/users/"+createdResp.User.ID, map[string]any{
		"id":    primitive.NewObjectID().Hex(),
		"email": "new@x.com",
		"name":  "B",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, createdResp.User.ID, updated.ID)
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestUserGetEndpointNotFound(t *testing.T) {
	router, _ := newUserTestRouter(t)

	assert.Equal(t, http.StatusBadRequest,
		doJSON(router, http.MethodGet, "/api/users/not-an-id", nil).Code)
	assert.Equal(t, http.StatusNotFound,
		doJSON(router, http.MethodGet, "/api/users/"+primitive.NewObjectID().Hex(), nil).Code)
}

func TestUserDeleteEndpointIdempotent(t *testing.T) {
	router, _ := newUserTestRouter(t)

	created := doJSON(router, http.MethodPost, "/api/users", model.CreateUserRequest{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	var createdResp model.AuthResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createdResp))

	assert.Equal(t, http.StatusOK,
		doJSON(router, http.MethodDelete, "/api/users/"+createdResp.User.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound,
		doJSON(router, http.MethodDelete, "/api/users/"+createdResp.User.ID, nil).Code)
}
