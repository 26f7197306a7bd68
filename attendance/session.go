package attendance

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/ksyv/Carillon/models"
	"github.com/ksyv/Carillon/planning"
)

// minSearchLen : en dessous, pas de suggestion (évite de dérouler tout
// l'effectif sur une frappe).
const minSearchLen = 2

// EffectiveCategory applique le cloisonnement : un compte restreint à une
// classe ne voit qu'elle, quel que soit le filtre demandé. C'est ici que
// la frontière est tenue, pas dans l'interface.
func EffectiveCategory(callerAccess, requested string) string {
	if callerAccess != "" && callerAccess != models.CategoryAll {
		return callerAccess
	}
	if requested == "" {
		return models.CategoryAll
	}
	return requested
}

type SessionQuery struct {
	Date         string
	SessionType  string
	Search       string
	Category     string // filtre demandé ("Tous" ou une classe)
	CallerAccess string // category_access du compte connecté
}

// SessionView : ce que voit le staff sur l'écran de pointage.
type SessionView struct {
	Date        string                    `json:"date"`
	SessionType string                    `json:"session_type"`
	Records     []models.AttendanceRecord `json:"records"`
	Candidates  []models.Child            `json:"candidates"`
	// Notes planifiées du jour pour les enfants pointés, par enfant.
	PlannedNotes map[uint][]string `json:"planned_notes"`
	ActiveCount  int               `json:"active_count"`
	TotalCount   int               `json:"total_count"`
}

// Aggregator assemble l'écran de séance : présents + candidats à ajouter.
type Aggregator struct {
	db       *gorm.DB
	store    *Store
	notes    *planning.NoteStore
	collator *collate.Collator
}

func NewAggregator(db *gorm.DB, store *Store, notes *planning.NoteStore) *Aggregator {
	return &Aggregator{
		db:       db,
		store:    store,
		notes:    notes,
		collator: collate.New(language.French),
	}
}

func (a *Aggregator) activeChildren(category string) ([]models.Child, error) {
	tx := a.db.Where("active = ?", true)
	if category != "" && category != models.CategoryAll {
		tx = tx.Where("category = ?", category)
	}
	var kids []models.Child
	if err := tx.Order("id ASC").Find(&kids).Error; err != nil {
		return nil, err
	}
	return kids, nil
}

func matches(c models.Child, needle string) bool {
	return strings.Contains(strings.ToLower(c.LastName), needle) ||
		strings.Contains(strings.ToLower(c.FirstName), needle)
}

// Build produit la vue d'une séance. Tri purement alphabétique sur le nom
// (collation française) ; les partis ne sont plus renvoyés en bas de liste.
func (a *Aggregator) Build(q SessionQuery) (*SessionView, error) {
	category := EffectiveCategory(q.CallerAccess, q.Category)

	recs, err := a.store.ListBySession(q.Date, q.SessionType, category)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return a.collator.CompareString(recs[i].Child.LastName, recs[j].Child.LastName) < 0
	})

	view := &SessionView{
		Date:         q.Date,
		SessionType:  q.SessionType,
		Records:      recs,
		Candidates:   []models.Child{},
		PlannedNotes: map[uint][]string{},
		TotalCount:   len(recs),
	}
	present := make(map[uint]bool, len(recs))
	for _, r := range recs {
		present[r.ChildID] = true
		if r.CheckOut == nil {
			view.ActiveCount++
		}
	}

	if notes, err := a.notes.ActiveOn(q.Date); err == nil {
		for childID, texts := range notes {
			if present[childID] {
				view.PlannedNotes[childID] = texts
			}
		}
	} else {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	if len([]rune(search)) < minSearchLen {
		return view, nil
	}
	kids, err := a.activeChildren(category)
	if err != nil {
		return nil, err
	}
	for _, c := range kids {
		if !present[c.ID] && matches(c, search) {
			view.Candidates = append(view.Candidates, c)
		}
	}
	sort.SliceStable(view.Candidates, func(i, j int) bool {
		return a.collator.CompareString(view.Candidates[i].LastName, view.Candidates[j].LastName) < 0
	})
	return view, nil
}
