package attendance

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ksyv/Carillon/models"
)

type NotePolicy string

const (
	// NotePolicyManual : la note reste en place jusqu'à modification explicite.
	NotePolicyManual NotePolicy = "manual"
	// NotePolicyCheckout : la note est lue au départ puis effacée avec lui.
	NotePolicyCheckout NotePolicy = "checkout"
)

// Store possède les pointages et leurs règles de cohérence.
// Toutes les opérations renvoient le pointage avec l'enfant résolu.
type Store struct {
	db         *gorm.DB
	rules      TimeRules
	notePolicy NotePolicy

	now func() time.Time // remplacé dans les tests
}

func NewStore(db *gorm.DB, rules TimeRules, policy NotePolicy) *Store {
	if policy != NotePolicyCheckout {
		policy = NotePolicyManual
	}
	return &Store{db: db, rules: rules, notePolicy: policy, now: time.Now}
}

func validDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// CheckIn crée le pointage (arrivée = maintenant, pas encore parti).
// L'unicité (date, créneau, enfant) est garantie par l'index unique :
// l'insert échoue atomiquement, pas de lecture-puis-écriture.
func (s *Store) CheckIn(date, sessionType string, childID uint) (*models.AttendanceRecord, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date %q", ErrValidation, date)
	}
	if !models.ValidSession(sessionType) {
		return nil, fmt.Errorf("%w: session %q", ErrValidation, sessionType)
	}
	if childID == 0 {
		return nil, fmt.Errorf("%w: missing child", ErrValidation)
	}

	rec := models.AttendanceRecord{
		Date:        date,
		SessionType: sessionType,
		ChildID:     childID,
		CheckIn:     s.now(),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return s.Get(rec.ID)
}

// Get charge un pointage avec son enfant.
func (s *Store) Get(id uint) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	if err := s.db.Preload("Child").First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// CheckOut enregistre le départ. Re-pointer un départ déjà saisi écrase
// simplement l'heure et le drapeau retard (re-confirmation, pas une erreur).
func (s *Store) CheckOut(id uint) (*models.AttendanceRecord, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	updates := map[string]any{
		"check_out": now,
		"is_late":   s.rules.LateOn(rec.Date, now),
	}
	if s.notePolicy == NotePolicyCheckout {
		updates["note"] = ""
	}
	if err := s.db.Model(rec).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// UndoCheckout annule le départ : l'enfant redevient présent, retard effacé.
func (s *Store) UndoCheckout(id uint) (*models.AttendanceRecord, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"check_out": nil, "is_late": false}
	if err := s.db.Model(rec).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// ClearLateFlag efface le retard calculé (appréciation du staff) sans
// toucher à l'heure de départ. Jamais l'inverse : on ne pose pas un
// retard à la main.
func (s *Store) ClearLateFlag(id uint) (*models.AttendanceRecord, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(rec).Update("is_late", false).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// SetNote remplace la note telle quelle (chaîne vide = effacer).
func (s *Store) SetNote(id uint, text string) (*models.AttendanceRecord, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(rec).Update("note", text).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete supprime le pointage (annulation de présence). Définitif.
func (s *Store) Delete(id uint) error {
	res := s.db.Delete(&models.AttendanceRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBySession renvoie les pointages d'un créneau, enfant résolu.
// categoryAccess ≠ "Tous" restreint aux enfants de cette classe.
func (s *Store) ListBySession(date, sessionType, categoryAccess string) ([]models.AttendanceRecord, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date %q", ErrValidation, date)
	}
	if !models.ValidSession(sessionType) {
		return nil, fmt.Errorf("%w: session %q", ErrValidation, sessionType)
	}
	tx := s.db.Preload("Child").
		Where("attendance_records.date = ? AND attendance_records.session_type = ?", date, sessionType)
	if categoryAccess != "" && categoryAccess != models.CategoryAll {
		tx = tx.Joins("JOIN children ON children.id = attendance_records.child_id").
			Where("children.category = ?", categoryAccess)
	}
	var recs []models.AttendanceRecord
	if err := tx.Order("attendance_records.id ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// ListByDate renvoie les deux créneaux d'une journée (pour le rapport).
func (s *Store) ListByDate(date string) ([]models.AttendanceRecord, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("%w: date %q", ErrValidation, date)
	}
	var recs []models.AttendanceRecord
	if err := s.db.Preload("Child").
		Where("date = ?", date).
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}
