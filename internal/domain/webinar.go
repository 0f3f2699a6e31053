package domain

import "time"

// Webinar is a scheduled online event.
type Webinar struct {
	ID              string
	TitleID         string
	TitleEN         string
	Speaker         string
	StartsAt        time.Time
	RegistrationURL string
	Published       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
