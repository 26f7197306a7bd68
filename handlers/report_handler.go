package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/ksyv/Carillon/attendance"
	"github.com/ksyv/Carillon/database"
	"github.com/ksyv/Carillon/middlewares"
)

type ReportHandler struct {
	builder *attendance.ReportBuilder
}

func NewReportHandler(att *AttendanceHandler, pl *PlanningHandler) *ReportHandler {
	return &ReportHandler{
		builder: attendance.NewReportBuilder(database.DB, att.Store(), pl.Notes(), pl.Billing()),
	}
}

func reportDate(c echo.Context) string {
	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return date
}

// GET /api/admin/report?date=YYYY-MM-DD&category=
func (h *ReportHandler) Daily(c echo.Context) error {
	report, err := h.builder.Build(reportDate(c), middlewares.CategoryAccess(c), strings.TrimSpace(c.QueryParam("category")))
	if err != nil {
		return coreError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// GET /api/admin/report/export?date=YYYY-MM-DD — classeur .xlsx en pièce
// jointe, une ligne par enfant présent, totaux en pied de tableau.
func (h *ReportHandler) Export(c echo.Context) error {
	date := reportDate(c)
	report, err := h.builder.Build(date, middlewares.CategoryAccess(c), strings.TrimSpace(c.QueryParam("category")))
	if err != nil {
		return coreError(c, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Rapport"
	f.SetSheetName("Sheet1", sheet)

	check := func(b bool) string {
		if b {
			return "X"
		}
		return ""
	}
	headers := []string{"Enfant", "Catégorie", "Matin", "Soir", "Départ", "Supplément", "Facturation", "Note"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for rIdx, row := range report.Rows {
		departure := ""
		if row.CheckOut != nil {
			departure = row.CheckOut.Format("15:04")
		}
		values := []any{
			row.Child.LastName + " " + row.Child.FirstName,
			row.Child.Category,
			check(row.Matin),
			check(row.Soir),
			departure,
			check(row.IsLate),
			row.BillTo,
			row.Note,
		}
		for cIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	totalRow := len(report.Rows) + 3
	totals := []any{
		"Totaux", "",
		report.MatinCount,
		report.SoirCount,
		"",
		report.LateCount,
	}
	for cIdx, v := range totals {
		cell, _ := excelize.CoordinatesToCellName(cIdx+1, totalRow)
		f.SetCellValue(sheet, cell, v)
	}

	path := filepath.Join(os.TempDir(), "carillon-"+uuid.NewString()+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	defer os.Remove(path)
	return c.Attachment(path, "rapport-"+date+".xlsx")
}
