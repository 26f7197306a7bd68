// Package planning porte les deux projections "par date" consommées par
// les séances et le rapport : notes planifiées et règles de facturation.
// Côté pointage elles sont en lecture seule ; le CRUD est réservé à l'admin.
package planning

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ksyv/Carillon/models"
)

const dateLayout = "2006-01-02"

type NoteStore struct {
	db *gorm.DB
}

func NewNoteStore(db *gorm.DB) *NoteStore { return &NoteStore{db: db} }

func checkDates(dates []string) error {
	if len(dates) == 0 {
		return fmt.Errorf("%w: empty date set", ErrValidation)
	}
	for _, d := range dates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return fmt.Errorf("%w: date %q", ErrValidation, d)
		}
	}
	return nil
}

func (s *NoteStore) Create(childID uint, text string, dates []string) (*models.PlannedNote, error) {
	if childID == 0 || text == "" {
		return nil, fmt.Errorf("%w: missing child or note", ErrValidation)
	}
	if err := checkDates(dates); err != nil {
		return nil, err
	}
	n := models.PlannedNote{ChildID: childID, Note: text, Dates: datatypes.NewJSONSlice(dates)}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return s.get(n.ID)
}

func (s *NoteStore) get(id uint) (*models.PlannedNote, error) {
	var n models.PlannedNote
	if err := s.db.Preload("Child").First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *NoteStore) Update(id uint, text string, dates []string) (*models.PlannedNote, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: missing note", ErrValidation)
	}
	if err := checkDates(dates); err != nil {
		return nil, err
	}
	n, err := s.get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"note": text, "dates": datatypes.NewJSONSlice(dates)}
	if err := s.db.Model(n).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.get(id)
}

func (s *NoteStore) Delete(id uint) error {
	res := s.db.Delete(&models.PlannedNote{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *NoteStore) List() ([]models.PlannedNote, error) {
	var notes []models.PlannedNote
	if err := s.db.Preload("Child").Order("id ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ActiveOn : toutes les notes dont l'ensemble de dates contient ce jour,
// groupées par enfant. Un enfant peut en avoir plusieurs. Le volume reste
// celui d'un périscolaire (quelques dizaines de lignes), on filtre en
// mémoire plutôt que de dépendre d'opérateurs JSON spécifiques au driver.
func (s *NoteStore) ActiveOn(date string) (map[uint][]string, error) {
	var notes []models.PlannedNote
	if err := s.db.Order("id ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	out := map[uint][]string{}
	for _, n := range notes {
		for _, d := range n.Dates {
			if d == date {
				out[n.ChildID] = append(out[n.ChildID], n.Note)
				break
			}
		}
	}
	return out, nil
}
