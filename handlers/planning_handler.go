package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/planning"
)

// CRUD admin des notes planifiées et des règles de facturation.
// Le cœur du pointage ne les consomme qu'en lecture (projections par date).

type PlanningHandler struct {
	notes   *planning.NoteStore
	billing *planning.BillingStore
}

func NewPlanningHandler() *PlanningHandler {
	return &PlanningHandler{
		notes:   planning.NewNoteStore(database.DB),
		billing: planning.NewBillingStore(database.DB),
	}
}

func (h *PlanningHandler) Notes() *planning.NoteStore      { return h.notes }
func (h *PlanningHandler) Billing() *planning.BillingStore { return h.billing }

type notePayload struct {
	ChildID uint     `json:"child_id" validate:"required"`
	Note    string   `json:"note" validate:"required"`
	Dates   []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

// GET /api/admin/planned-notes
func (h *PlanningHandler) ListNotes(c echo.Context) error {
	notes, err := h.notes.List()
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// POST /api/admin/planned-notes
func (h *PlanningHandler) CreateNote(c echo.Context) error {
	var p notePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	n, err := h.notes.Create(p.ChildID, p.Note, p.Dates)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

// PUT /api/admin/planned-notes/:id
func (h *PlanningHandler) UpdateNote(c echo.Context) error {
	var p notePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	n, err := h.notes.Update(idParam(c), p.Note, p.Dates)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

// DELETE /api/admin/planned-notes/:id
func (h *PlanningHandler) DeleteNote(c echo.Context) error {
	if err := h.notes.Delete(idParam(c)); err != nil {
		return coreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type billingPayload struct {
	ChildID uint     `json:"child_id" validate:"required"`
	BillTo  string   `json:"bill_to" validate:"required,max=120"`
	Dates   []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}

// GET /api/admin/billing-rules
func (h *PlanningHandler) ListBilling(c echo.Context) error {
	rules, err := h.billing.List()
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, rules)
}

// POST /api/admin/billing-rules
func (h *PlanningHandler) CreateBilling(c echo.Context) error {
	var p billingPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	r, err := h.billing.Create(p.ChildID, p.BillTo, p.Dates)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// PUT /api/admin/billing-rules/:id
func (h *PlanningHandler) UpdateBilling(c echo.Context) error {
	var p billingPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS", "detail": err.Error()})
	}
	r, err := h.billing.Update(idParam(c), p.BillTo, p.Dates)
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// DELETE /api/admin/billing-rules/:id
func (h *PlanningHandler) DeleteBilling(c echo.Context) error {
	if err := h.billing.Delete(idParam(c)); err != nil {
		return coreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
