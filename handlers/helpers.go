package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ksyv/Carillon/attendance"
	"github.com/ksyv/Carillon/planning"
)

// validate partagé par tous les handlers (tags `validate:` sur les DTOs).
var validate = validator.New()

// idParam lit :id ; 0 = invalide.
func idParam(c echo.Context) uint {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

// coreError traduit les erreurs typées du cœur en réponses HTTP.
func coreError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, attendance.ErrDuplicateRecord):
		return c.JSON(http.StatusConflict, map[string]any{"error": "DUPLICATE_RECORD"})
	case errors.Is(err, attendance.ErrNotFound), errors.Is(err, planning.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, attendance.ErrValidation), errors.Is(err, planning.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_INPUT", "detail": err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
}
