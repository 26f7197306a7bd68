package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ksyv/Carillon/config"
	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/models"
)

// setupDB branche database.DB sur une base sqlite en mémoire.
func setupDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		LateCutoff:      "18:35",
		NoteClearPolicy: "manual",
	}
}

func seedUser(t *testing.T, username, password, role, access string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{
		Username:       username,
		Password:       string(hash),
		Role:           role,
		CategoryAccess: access,
		Enabled:        true,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func seedChild(t *testing.T, last, first, category string) models.Child {
	t.Helper()
	c := models.Child{LastName: last, FirstName: first, Category: category, Active: true}
	require.NoError(t, database.DB.Create(&c).Error)
	return c
}

// newJSONContext fabrique un contexte Echo comme après le middleware d'auth.
func newJSONContext(t *testing.T, method, path, body, role, access string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
		c.Set("category_access", access)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
