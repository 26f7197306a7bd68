package models

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Password       string    `json:"-" gorm:"not null"`            // hash bcrypt
	Role           string    `json:"role" gorm:"size:20;not null"` // "admin" | "staff"
	CategoryAccess string    `json:"category_access" gorm:"size:20;not null;default:Tous"`
	Name           string    `json:"name" gorm:"size:120"`
	Enabled        bool      `json:"enabled" gorm:"not null;default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
