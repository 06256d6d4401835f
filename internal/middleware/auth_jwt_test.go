package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carshop/internal/config"
	"carshop/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "mw-test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":  "7",
		"role": "USER",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func runAuthJWT(t *testing.T, authz string, query string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	target := "/orders"
	if query != "" {
		target += "?" + query
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := middleware.AuthJWT(config.Config{JWTSecret: testSecret})
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	assert.NoError(t, err)
	return rec, c
}

func TestAuthJWT_NoToken(t *testing.T) {
	rec, _ := runAuthJWT(t, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadScheme(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims())
	rec, _ := runAuthJWT(t, "Basic "+token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, "other-secret", validClaims())
	rec, _ := runAuthJWT(t, "Bearer "+token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongAlgorithm(t *testing.T) {
	//HMACでもHS256以外は拒否する
	token := signToken(t, jwt.SigningMethodHS384, testSecret, validClaims())
	rec, _ := runAuthJWT(t, "Bearer "+token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, jwt.SigningMethodHS256, testSecret, claims)
	rec, _ := runAuthJWT(t, "Bearer "+token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_SuccessSetsContext(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims())
	rec, c := runAuthJWT(t, "Bearer "+token, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "USER", c.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_QueryToken(t *testing.T) {
	//WebSocketハンドシェイク向けにクエリでも通す
	token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims())
	rec, c := runAuthJWT(t, "", "token="+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(middleware.CtxUserIDKey))
}
