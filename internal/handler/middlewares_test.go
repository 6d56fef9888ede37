package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabioafurquim/gestaofurquim/backend/internal/config"
	"github.com/fabioafurquim/gestaofurquim/backend/internal/domain"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRequiredRoleAllowsListedRole(t *testing.T) {
	h := &Handler{}
	called := false

	mw := h.RequiredRole([]domain.Role{domain.RoleAdmin})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleCtxKey, string(domain.RoleAdmin)))
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequiredRoleBlocksOtherRoles(t *testing.T) {
	h := &Handler{}
	called := false

	mw := h.RequiredRole([]domain.Role{domain.RoleAdmin})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleCtxKey, string(domain.RoleUser)))
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	assert.False(t, called)
	// Domain errors keep HTTP 200 with the envelope carrying the failure.
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "permissão insuficiente", resp.Message)
}

func authTestHandler(secret string) *Handler {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	return &Handler{config: cfg}
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	h := authTestHandler("segredo")
	called := false

	mw := h.auth(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/my-info", nil)
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	assert.False(t, called)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "usuário não autenticado", resp.Message)
}

func TestAuthRejectsBadToken(t *testing.T) {
	h := authTestHandler("segredo")
	called := false

	mw := h.auth(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/my-info", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "nem-um-jwt"})
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	assert.False(t, called)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "token inválido", resp.Message)
}

func TestAuthAcceptsValidTokenAndFillsContext(t *testing.T) {
	h := authTestHandler("segredo")

	claims := &AuthClaims{
		Role: string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	var gotRole, gotSub string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.Context().Value(RoleCtxKey).(string)
		gotSub = r.Context().Value(SubCtxKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/my-info", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.Equal(t, string(domain.RoleAdmin), gotRole)
	assert.Equal(t, "42", gotSub)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	h := authTestHandler("segredo")
	called := false

	claims := &AuthClaims{
		Role: string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/my-info", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	rec := httptest.NewRecorder()

	h.auth(okHandler(&called)).ServeHTTP(rec, req)

	assert.False(t, called)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "token inválido", resp.Message)
}
