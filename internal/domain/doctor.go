package domain

import "time"

// Doctor is a listed practitioner.
type Doctor struct {
	ID          string
	Name        string
	SpecialtyID string
	SpecialtyEN string
	Hospital    string
	Schedule    string
	PhotoURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
