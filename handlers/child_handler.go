package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/middlewares"
	"github.com/ksyv/Carillon/models"
)

type ChildHandler struct{}

func NewChildHandler() *ChildHandler { return &ChildHandler{} }

type childPayload struct {
	LastName  string `json:"last_name" validate:"required,max=50"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	Category  string `json:"category" validate:"required,oneof=Maternelle Élémentaire"`
}

func (p *childPayload) normalize() {
	// Les noms arrivent en capitales depuis le formulaire, on s'aligne.
	p.LastName = strings.ToUpper(strings.Join(strings.Fields(p.LastName), " "))
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.Category = strings.TrimSpace(p.Category)
}

// GET /api/children — effectif actif, borné à la classe du compte.
// ?all=1 (admin) inclut les enfants désactivés.
func (h *ChildHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Child{})

	// ?all=1 : roster complet (écran d'administration), sinon actifs seuls.
	role, _ := c.Get("role").(string)
	if c.QueryParam("all") != "1" || role != models.RoleAdmin {
		tx = tx.Where("active = ?", true)
	}
	if access := middlewares.CategoryAccess(c); access != models.CategoryAll {
		tx = tx.Where("category = ?", access)
	}

	var kids []models.Child
	if err := tx.Order("last_name ASC, first_name ASC").Find(&kids).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, kids)
}

// POST /api/admin/children
func (h *ChildHandler) Create(c echo.Context) error {
	var p childPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	child := models.Child{
		LastName:  p.LastName,
		FirstName: p.FirstName,
		Category:  p.Category,
		Active:    true,
	}
	if err := database.DB.Create(&child).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, child)
}

// PUT /api/admin/children/:id
func (h *ChildHandler) Update(c echo.Context) error {
	id := idParam(c)
	var child models.Child
	if err := database.DB.First(&child, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	var p childPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	child.LastName = p.LastName
	child.FirstName = p.FirstName
	child.Category = p.Category
	if err := database.DB.Save(&child).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, child)
}

// DELETE /api/admin/children/:id — désactivation, jamais de suppression :
// les pointages passés doivent continuer à résoudre l'enfant.
func (h *ChildHandler) Deactivate(c echo.Context) error {
	id := idParam(c)
	res := database.DB.Model(&models.Child{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "active": false})
}

// PUT /api/admin/children/:id/reactivate
func (h *ChildHandler) Reactivate(c echo.Context) error {
	id := idParam(c)
	res := database.DB.Model(&models.Child{}).Where("id = ?", id).Update("active", true)
	if res.Error != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "active": true})
}
