package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/models"
)

// Comptes staff, gérés par l'admin (création, reset, activation, classe).
type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

type userCreateReq struct {
	Username       string `json:"username" validate:"required,max=60"`
	Password       string `json:"password" validate:"required,min=4"`
	Name           string `json:"name" validate:"max=120"`
	Role           string `json:"role" validate:"required,oneof=admin staff"`
	CategoryAccess string `json:"category_access" validate:"required,oneof=Tous Maternelle Élémentaire"`
}

// GET /api/admin/users
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("username ASC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, users)
}

// POST /api/admin/users
func (h *UserHandler) Create(c echo.Context) error {
	var req userCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}

	var dup models.User
	if err := database.DB.Where("username = ?", req.Username).First(&dup).Error; err == nil {
		return c.JSON(http.StatusConflict, map[string]any{"error": "USERNAME_EXISTS"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	u := models.User{
		Username:       req.Username,
		Password:       string(hash),
		Name:           req.Name,
		Role:           req.Role,
		CategoryAccess: req.CategoryAccess,
		Enabled:        true,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

// POST /api/admin/users/:id/reset — nouveau mot de passe à usage unique,
// renvoyé en clair une seule fois.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, idParam(c)).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	oneTime := strings.SplitN(uuid.NewString(), "-", 2)[0]
	hash, _ := bcrypt.GenerateFromPassword([]byte(oneTime), bcrypt.DefaultCost)
	if err := database.DB.Model(&u).Update("password", string(hash)).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"id": u.ID, "one_time_password": oneTime})
}

type userPatchReq struct {
	Enabled        *bool   `json:"enabled"`
	Role           *string `json:"role" validate:"omitempty,oneof=admin staff"`
	CategoryAccess *string `json:"category_access" validate:"omitempty,oneof=Tous Maternelle Élémentaire"`
	Name           *string `json:"name" validate:"omitempty,max=120"`
}

// PATCH /api/admin/users/:id
func (h *UserHandler) Patch(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, idParam(c)).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	var req userPatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_INPUT", "detail": err.Error()})
	}

	updates := map[string]any{}
	if req.Enabled != nil {
		updates["enabled"] = *req.Enabled
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.CategoryAccess != nil {
		updates["category_access"] = *req.CategoryAccess
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusOK, u)
	}
	if err := database.DB.Model(&u).Updates(updates).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}

type passwordChangeReq struct {
	Current string `json:"current" validate:"required"`
	New     string `json:"new" validate:"required,min=4"`
}

// PUT /api/profile/password — changement par l'intéressé.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	uid, _ := c.Get("user_id").(uint)
	var u models.User
	if err := database.DB.First(&u, uid).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	var req passwordChangeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Current)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
	if err := database.DB.Model(&u).Update("password", string(hash)).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"updated": true})
}
