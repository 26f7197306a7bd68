package planning

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ksyv/Carillon/models"
)

type BillingStore struct {
	db *gorm.DB
}

func NewBillingStore(db *gorm.DB) *BillingStore { return &BillingStore{db: db} }

func (s *BillingStore) Create(childID uint, billTo string, dates []string) (*models.BillingRule, error) {
	if childID == 0 || billTo == "" {
		return nil, fmt.Errorf("%w: missing child or target", ErrValidation)
	}
	if err := checkDates(dates); err != nil {
		return nil, err
	}
	r := models.BillingRule{ChildID: childID, BillTo: billTo, Dates: datatypes.NewJSONSlice(dates)}
	if err := s.db.Create(&r).Error; err != nil {
		return nil, err
	}
	return s.get(r.ID)
}

func (s *BillingStore) get(id uint) (*models.BillingRule, error) {
	var r models.BillingRule
	if err := s.db.Preload("Child").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *BillingStore) Update(id uint, billTo string, dates []string) (*models.BillingRule, error) {
	if billTo == "" {
		return nil, fmt.Errorf("%w: missing target", ErrValidation)
	}
	if err := checkDates(dates); err != nil {
		return nil, err
	}
	r, err := s.get(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"bill_to": billTo, "dates": datatypes.NewJSONSlice(dates)}
	if err := s.db.Model(r).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.get(id)
}

func (s *BillingStore) Delete(id uint) error {
	res := s.db.Delete(&models.BillingRule{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BillingStore) List() ([]models.BillingRule, error) {
	var rules []models.BillingRule
	if err := s.db.Preload("Child").Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// TargetsOn : destinataire de facturation par enfant pour ce jour.
// Le store ne garantit pas l'unicité par (enfant, jour) ; si plusieurs
// règles se recouvrent, la plus récemment créée gagne.
func (s *BillingStore) TargetsOn(date string) (map[uint]string, error) {
	var rules []models.BillingRule
	if err := s.db.Order("id ASC").Find(&rules).Error; err != nil {
		return nil, err
	}
	out := map[uint]string{}
	for _, r := range rules {
		for _, d := range r.Dates {
			if d == date {
				out[r.ChildID] = r.BillTo
				break
			}
		}
	}
	return out, nil
}
