package models

import (
	"time"

	"gorm.io/datatypes"
)

// Note planifiée : information récurrente affichée au staff certains jours
// (ex: "Part avec sa grand-mère"). Les dates sont un ensemble explicite,
// pas un intervalle.
type PlannedNote struct {
	ID        uint                        `json:"id" gorm:"primaryKey"`
	ChildID   uint                        `json:"child_id" gorm:"index;not null"`
	Child     Child                       `json:"child" gorm:"foreignKey:ChildID"`
	Note      string                      `json:"note" gorm:"type:text;not null"`
	Dates     datatypes.JSONSlice[string] `json:"dates"` // ["2026-03-05", ...]
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}
