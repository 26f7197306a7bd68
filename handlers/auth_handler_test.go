package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/models"
)

func TestLogin(t *testing.T) {
	setupDB(t)
	h := NewAuthHandler("test-secret")
	seedUser(t, "celine", "pass1234", models.RoleStaff, models.CategoryMaternelle)

	t.Run("ok", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"celine","password":"pass1234"}`, "", "")
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "staff", user["role"])
		assert.Equal(t, models.CategoryMaternelle, user["category_access"])
	})

	t.Run("mauvais mot de passe", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"celine","password":"nope"}`, "", "")
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("utilisateur inconnu", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"ghost","password":"x"}`, "", "")
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("champs manquants", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"celine"}`, "", "")
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("compte désactivé", func(t *testing.T) {
		u := seedUser(t, "old", "pass1234", models.RoleStaff, models.CategoryAll)
		require.NoError(t, database.DB.Model(&u).Update("enabled", false).Error)
		c, rec := newJSONContext(t, http.MethodPost, "/api/login",
			`{"username":"old","password":"pass1234"}`, "", "")
		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "ACCOUNT_DISABLED", decodeBody(t, rec)["error"])
	})
}
