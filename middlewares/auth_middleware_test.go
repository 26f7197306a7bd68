package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tk.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func staffClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  uint(1),
		"role": "staff",
		"name": "Céline",
		"cat":  "Maternelle",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
}

func runAuth(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, CategoryAccess(c))
	}
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return rec, handler(c)
}

func TestRequireAuth(t *testing.T) {
	t.Run("token valide", func(t *testing.T) {
		tok := signToken(t, testSecret, staffClaims())
		rec, err := runAuth(t, "Bearer "+tok, RequireAuth(testSecret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Maternelle", rec.Body.String())
	})

	t.Run("en-tête absent", func(t *testing.T) {
		_, err := runAuth(t, "", RequireAuth(testSecret))
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("mauvais secret", func(t *testing.T) {
		tok := signToken(t, "autre-secret", staffClaims())
		_, err := runAuth(t, "Bearer "+tok, RequireAuth(testSecret))
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("token expiré", func(t *testing.T) {
		claims := staffClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		tok := signToken(t, testSecret, claims)
		_, err := runAuth(t, "Bearer "+tok, RequireAuth(testSecret))
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tok := signToken(t, testSecret, staffClaims())

	t.Run("rôle autorisé", func(t *testing.T) {
		rec, err := runAuth(t, "Bearer "+tok, RequireAuth(testSecret), RequireRole("staff", "admin"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rôle refusé", func(t *testing.T) {
		_, err := runAuth(t, "Bearer "+tok, RequireAuth(testSecret), RequireRole("admin"))
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}

func TestCategoryAccessDefaultsToTous(t *testing.T) {
	claims := staffClaims()
	delete(claims, "cat") // comptes d'avant le cloisonnement
	tok := signToken(t, testSecret, claims)
	rec, err := runAuth(t, "Bearer "+tok, RequireAuth(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "Tous", rec.Body.String())
}
