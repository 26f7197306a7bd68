package attendance

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/ksyv/Carillon/models"
	"github.com/ksyv/Carillon/planning"
)

// ReportRow : une ligne par enfant venu au moins une fois ce jour-là.
// SoirRecordID permet d'effacer le retard après coup (opération du store,
// le rapport lui-même n'écrit rien).
type ReportRow struct {
	Child        models.Child `json:"child"`
	Matin        bool         `json:"matin"`
	Soir         bool         `json:"soir"`
	CheckOut     *time.Time   `json:"check_out"`
	IsLate       bool         `json:"is_late"`
	SoirRecordID uint         `json:"soir_record_id"`
	Note         string       `json:"note"`
	PlannedNotes []string     `json:"planned_notes"`
	BillTo       string       `json:"bill_to"`
}

type DailyReport struct {
	Date       string      `json:"date"`
	Rows       []ReportRow `json:"rows"`
	MatinCount int         `json:"matin_count"`
	SoirCount  int         `json:"soir_count"`
	LateCount  int         `json:"late_count"`
}

// ReportBuilder croise effectif actif, pointages des deux créneaux,
// notes planifiées et facturation. Projection pure : relancer la
// construction après une correction suffit.
type ReportBuilder struct {
	db       *gorm.DB
	store    *Store
	notes    *planning.NoteStore
	billing  *planning.BillingStore
	collator *collate.Collator
}

func NewReportBuilder(db *gorm.DB, store *Store, notes *planning.NoteStore, billing *planning.BillingStore) *ReportBuilder {
	return &ReportBuilder{
		db:       db,
		store:    store,
		notes:    notes,
		billing:  billing,
		collator: collate.New(language.French),
	}
}

// Build assemble le rapport du jour, borné à la classe effective du compte.
func (b *ReportBuilder) Build(date, callerAccess, category string) (*DailyReport, error) {
	cat := EffectiveCategory(callerAccess, category)

	recs, err := b.store.ListByDate(date)
	if err != nil {
		return nil, err
	}
	// (enfant → créneau → pointage) ; au plus un par créneau, garanti par
	// l'index unique du store.
	byChild := map[uint]map[string]models.AttendanceRecord{}
	for _, r := range recs {
		if byChild[r.ChildID] == nil {
			byChild[r.ChildID] = map[string]models.AttendanceRecord{}
		}
		byChild[r.ChildID][r.SessionType] = r
	}

	tx := b.db.Where("active = ?", true)
	if cat != models.CategoryAll {
		tx = tx.Where("category = ?", cat)
	}
	var kids []models.Child
	if err := tx.Find(&kids).Error; err != nil {
		return nil, err
	}

	noteMap, err := b.notes.ActiveOn(date)
	if err != nil {
		return nil, err
	}
	billMap, err := b.billing.TargetsOn(date)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{Date: date, Rows: []ReportRow{}}
	for _, c := range kids {
		slots := byChild[c.ID]
		_, hasMatin := slots[models.SessionMatin]
		soir, hasSoir := slots[models.SessionSoir]
		if !hasMatin && !hasSoir {
			continue
		}
		row := ReportRow{
			Child:        c,
			Matin:        hasMatin,
			Soir:         hasSoir,
			PlannedNotes: noteMap[c.ID],
			BillTo:       billMap[c.ID],
		}
		if hasSoir {
			row.CheckOut = soir.CheckOut
			row.IsLate = soir.IsLate
			row.SoirRecordID = soir.ID
			row.Note = soir.Note
		}
		if row.Matin {
			report.MatinCount++
		}
		if row.Soir {
			report.SoirCount++
		}
		if row.IsLate {
			report.LateCount++
		}
		report.Rows = append(report.Rows, row)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return b.collator.CompareString(report.Rows[i].Child.LastName, report.Rows[j].Child.LastName) < 0
	})
	return report, nil
}
