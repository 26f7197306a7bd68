package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ksyv/Carillon/attendance"
	"github.com/ksyv/Carillon/config"
	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/middlewares"
	"github.com/ksyv/Carillon/models"
	"github.com/ksyv/Carillon/planning"
)

type AttendanceHandler struct {
	store *attendance.Store
	agg   *attendance.Aggregator
}

func NewAttendanceHandler(cfg *config.Config) *AttendanceHandler {
	rules, err := attendance.ParseCutoff(cfg.LateCutoff)
	if err != nil {
		log.Printf("[config] LATE_CUTOFF %q illisible, repli sur 18:35: %v", cfg.LateCutoff, err)
		rules = attendance.DefaultRules()
	}
	store := attendance.NewStore(database.DB, rules, attendance.NotePolicy(cfg.NoteClearPolicy))
	notes := planning.NewNoteStore(database.DB)
	return &AttendanceHandler{
		store: store,
		agg:   attendance.NewAggregator(database.DB, store, notes),
	}
}

// Store expose le store aux autres handlers (rapport).
func (h *AttendanceHandler) Store() *attendance.Store { return h.store }

// GET /api/attendance?date=YYYY-MM-DD&sessionType=MATIN|SOIR&q=&category=
// Renvoie l'écran de séance : pointés (triés par nom), candidats si q>=2
// caractères, compteurs, notes planifiées du jour.
func (h *AttendanceHandler) Session(c echo.Context) error {
	q := attendance.SessionQuery{
		Date:         strings.TrimSpace(c.QueryParam("date")),
		SessionType:  strings.TrimSpace(c.QueryParam("sessionType")),
		Search:       c.QueryParam("q"),
		Category:     strings.TrimSpace(c.QueryParam("category")),
		CallerAccess: middlewares.CategoryAccess(c),
	}
	view, err := h.agg.Build(q)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GET /api/attendance/slot — créneau suggéré pour l'écran d'accueil.
func (h *AttendanceHandler) Slot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"session_type": attendance.SuggestedSlot(time.Now()),
	})
}

type checkInReq struct {
	ChildID     uint   `json:"child_id" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	SessionType string `json:"session_type" validate:"required,oneof=MATIN SOIR"`
}

// POST /api/attendance/checkin
func (h *AttendanceHandler) CheckIn(c echo.Context) error {
	var req checkInReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}

	// Cloisonnement : un compte restreint ne pointe pas hors de sa classe.
	if access := middlewares.CategoryAccess(c); access != models.CategoryAll {
		var child models.Child
		if err := database.DB.First(&child, req.ChildID).Error; err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		if child.Category != access {
			return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
	}

	rec, err := h.store.CheckIn(req.Date, req.SessionType, req.ChildID)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /api/attendance/checkout/:id
func (h *AttendanceHandler) CheckOut(c echo.Context) error {
	rec, err := h.store.CheckOut(idParam(c))
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/attendance/:id/undo-checkout
func (h *AttendanceHandler) UndoCheckOut(c echo.Context) error {
	rec, err := h.store.UndoCheckout(idParam(c))
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /api/attendance/:id/clear-late
func (h *AttendanceHandler) ClearLate(c echo.Context) error {
	rec, err := h.store.ClearLateFlag(idParam(c))
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

type noteReq struct {
	Note string `json:"note"`
}

// PUT /api/attendance/:id/note — chaîne vide = effacer.
func (h *AttendanceHandler) SetNote(c echo.Context) error {
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	rec, err := h.store.SetNote(idParam(c), req.Note)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /api/attendance/:id — annulation de présence, définitive.
func (h *AttendanceHandler) Delete(c echo.Context) error {
	if err := h.store.Delete(idParam(c)); err != nil {
		return coreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
