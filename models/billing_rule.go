package models

import (
	"time"

	"gorm.io/datatypes"
)

// Règle de facturation : qui payer pour un enfant sur un ensemble de dates
// (ex: "Maman", "Papa", "Mairie"). Même forme que PlannedNote.
type BillingRule struct {
	ID        uint                        `json:"id" gorm:"primaryKey"`
	ChildID   uint                        `json:"child_id" gorm:"index;not null"`
	Child     Child                       `json:"child" gorm:"foreignKey:ChildID"`
	BillTo    string                      `json:"bill_to" gorm:"size:120;not null"`
	Dates     datatypes.JSONSlice[string] `json:"dates"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
