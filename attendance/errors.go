package attendance

import "errors"

var (
	// ErrDuplicateRecord : un pointage existe déjà pour (date, créneau, enfant).
	ErrDuplicateRecord = errors.New("attendance: record already exists for this slot")
	// ErrNotFound : le pointage visé n'existe plus (supprimé par un collègue).
	ErrNotFound = errors.New("attendance: record not found")
	// ErrValidation : entrée malformée, rejetée avant toute écriture.
	ErrValidation = errors.New("attendance: invalid input")
)
