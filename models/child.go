package models

import "time"

// Catégories (classe) — servent aussi au cloisonnement des comptes staff.
const (
	CategoryAll         = "Tous"
	CategoryMaternelle  = "Maternelle"
	CategoryElementaire = "Élémentaire"
)

type Child struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	LastName  string    `json:"last_name" gorm:"size:50;not null"`
	FirstName string    `json:"first_name" gorm:"size:50;not null"`
	Category  string    `json:"category" gorm:"size:20;not null"` // Maternelle | Élémentaire
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidCategory accepte uniquement les deux classes réelles (pas "Tous").
func ValidCategory(c string) bool {
	return c == CategoryMaternelle || c == CategoryElementaire
}
