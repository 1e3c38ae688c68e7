package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bccodingclub/notice-board-api/internal/models"
	appErrors "github.com/bccodingclub/notice-board-api/pkg/errors"
)

type authServiceMock struct {
	resp *models.LoginResponse
	err  error
}

func (m *authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func buildAuthRouter(svc *authServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler(svc)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", h.Logout)
	return router
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &authServiceMock{resp: &models.LoginResponse{
		AccessToken: "token-123",
		ExpiresIn:   int64(12 * time.Hour / time.Second),
		IssuedAt:    time.Now().UTC(),
		Role:        models.RoleAdmin,
	}}
	router := buildAuthRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"secret":"cdc2024"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token-123"`)
	assert.Contains(t, w.Body.String(), string(models.RoleAdmin))
}

func TestAuthHandlerLoginWrongSecret(t *testing.T) {
	svc := &authServiceMock{err: appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid admin secret")}
	router := buildAuthRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"secret":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrInvalidCredentials.Code)
}

func TestAuthHandlerLoginMalformedBody(t *testing.T) {
	router := buildAuthRouter(&authServiceMock{})

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	router := buildAuthRouter(&authServiceMock{})

	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
}
