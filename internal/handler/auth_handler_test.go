package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleynichenko/ai-tools-api/internal/config"
	"github.com/oleynichenko/ai-tools-api/internal/directory"
	"github.com/oleynichenko/ai-tools-api/internal/handler"
	"github.com/oleynichenko/ai-tools-api/internal/middleware"
	"github.com/oleynichenko/ai-tools-api/internal/service"
)

// newAuthRouter wires real auth components end to end: demo directory,
// JWT service, handler and middleware.
func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dir, err := directory.NewDemoDirectory()
	require.NoError(t, err)

	authSvc := service.NewAuthService(dir, config.JWTConfig{
		Secret:            "handler-test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "ai-tools-api-test",
	})
	authH := handler.NewAuthHandler(authSvc, dir)

	r := gin.New()
	auth := r.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/register", authH.Register)
	auth.GET("/profile", middleware.AuthMiddleware(authSvc), authH.Profile)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthFlow_LoginAndProfile(t *testing.T) {
	r := newAuthRouter(t)

	rec := postJSON(r, "/auth/login", `{"email":"john@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec.Body)
	data := resp.Data.(map[string]interface{})
	token := data["access_token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	profileRec := httptest.NewRecorder()
	r.ServeHTTP(profileRec, req)

	require.Equal(t, http.StatusOK, profileRec.Code)
	profile := decodeEnvelope(t, profileRec.Body)
	user := profile.Data.(map[string]interface{})
	assert.Equal(t, "john@example.com", user["email"])
	assert.Equal(t, "John Doe", user["name"])
	assert.NotContains(t, user, "password_hash")
}

func TestAuthFlow_LoginBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	rec := postJSON(r, "/auth/login", `{"email":"john@example.com","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeEnvelope(t, rec.Body)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestAuthFlow_LoginValidation(t *testing.T) {
	r := newAuthRouter(t)

	rec := postJSON(r, "/auth/login", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec.Body)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestAuthFlow_Register(t *testing.T) {
	r := newAuthRouter(t)

	rec := postJSON(r, "/auth/register", `{"name":"New User","email":"new@example.com","password":"supersecret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeEnvelope(t, rec.Body)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
}

func TestAuthFlow_RegisterDuplicate(t *testing.T) {
	r := newAuthRouter(t)

	rec := postJSON(r, "/auth/register", `{"name":"Imposter","email":"john@example.com","password":"supersecret1"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec.Body)
	assert.Equal(t, "DUPLICATE_EMAIL", resp.Error.Code)
}

func TestAuthFlow_ProfileWithoutToken(t *testing.T) {
	r := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthFlow_ProfileWithGarbageToken(t *testing.T) {
	r := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
