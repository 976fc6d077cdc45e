package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shajib07/storefront/fakestore/controllers"
	"github.com/shajib07/storefront/fakestore/models"
	"github.com/shajib07/storefront/fakestore/repository"
	"github.com/shajib07/storefront/fakestore/services"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *services.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	require.NoError(t, repository.SeedDemoUser(context.Background(), users))

	tokens := services.NewTokenService("test-secret")
	c := controllers.NewAuthController(users, tokens)

	r := gin.New()
	r.POST("/auth/login", c.Login)
	r.POST("/auth/refresh", c.Refresh)
	return r, tokens
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	r, tokens := setupAuthRouter(t)

	w := postJSON(r, "/auth/login", models.LoginRequest{
		Email:    "demo@storefront.dev",
		Password: "demo1234",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// issued tokens carry the right type claims
	_, err := tokens.ValidateToken(resp.AccessToken, "access")
	assert.NoError(t, err)
	_, err = tokens.ValidateToken(resp.RefreshToken, "refresh")
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(r, "/auth/login", models.LoginRequest{
		Email:    "demo@storefront.dev",
		Password: "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLogin_UnknownUser(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(r, "/auth/login", models.LoginRequest{
		Email:    "nobody@storefront.dev",
		Password: "demo1234",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_InvalidPayload(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(r, "/auth/login", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh_RotatesPair(t *testing.T) {
	r, _ := setupAuthRouter(t)

	login := postJSON(r, "/auth/login", models.LoginRequest{
		Email:    "demo@storefront.dev",
		Password: "demo1234",
	})
	require.Equal(t, http.StatusOK, login.Code)

	var pair models.TokenResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &pair))

	w := postJSON(r, "/auth/refresh", models.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, http.StatusOK, w.Code)

	var rotated models.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rotated))
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	login := postJSON(r, "/auth/login", models.LoginRequest{
		Email:    "demo@storefront.dev",
		Password: "demo1234",
	})
	require.Equal(t, http.StatusOK, login.Code)

	var pair models.TokenResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &pair))

	// an access token must not pass as a refresh token
	w := postJSON(r, "/auth/refresh", models.RefreshRequest{RefreshToken: pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_Garbage(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(r, "/auth/refresh", models.RefreshRequest{RefreshToken: "not.a.jwt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
