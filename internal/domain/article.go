package domain

import "time"

// Article is a bilingual content piece. Bodies hold sanitized HTML.
type Article struct {
	ID        string
	Slug      string
	TitleID   string
	TitleEN   string
	BodyID    string
	BodyEN    string
	Author    string
	CoverURL  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
