package models

import "time"

const (
	SessionMatin = "MATIN"
	SessionSoir  = "SOIR"
)

func ValidSession(s string) bool {
	return s == SessionMatin || s == SessionSoir
}

// Un pointage = la présence d'un enfant sur un créneau d'une journée.
// Un seul pointage par (date, créneau, enfant) — contrainte unique en base,
// c'est elle qui absorbe les doubles taps simultanés du staff.
type AttendanceRecord struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Date        string     `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_slot,priority:1"` // YYYY-MM-DD
	SessionType string     `json:"session_type" gorm:"size:5;not null;uniqueIndex:idx_attendance_slot,priority:2"`
	ChildID     uint       `json:"child_id" gorm:"not null;uniqueIndex:idx_attendance_slot,priority:3"`
	Child       Child      `json:"child" gorm:"foreignKey:ChildID"`
	CheckIn     time.Time  `json:"check_in" gorm:"not null"`
	CheckOut    *time.Time `json:"check_out"` // null = encore présent
	IsLate      bool       `json:"is_late" gorm:"not null;default:false"`
	Note        string     `json:"note" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
