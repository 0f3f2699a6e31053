package dto

import "time"

// ArticleRequest payload for admin article writes.
type ArticleRequest struct {
	Slug      string `json:"slug"`
	TitleID   string `json:"title_id"`
	TitleEN   string `json:"title_en"`
	BodyID    string `json:"body_id"`
	BodyEN    string `json:"body_en"`
	Author    string `json:"author"`
	CoverURL  string `json:"cover_url"`
	Published bool   `json:"published"`
}

// ArticleResponse is a content article.
type ArticleResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	TitleID   string    `json:"title_id"`
	TitleEN   string    `json:"title_en"`
	BodyID    string    `json:"body_id"`
	BodyEN    string    `json:"body_en"`
	Author    string    `json:"author"`
	CoverURL  string    `json:"cover_url"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DoctorRequest payload for admin doctor writes.
type DoctorRequest struct {
	Name        string `json:"name"`
	SpecialtyID string `json:"specialty_id"`
	SpecialtyEN string `json:"specialty_en"`
	Hospital    string `json:"hospital"`
	Schedule    string `json:"schedule"`
	PhotoURL    string `json:"photo_url"`
	Active      bool   `json:"active"`
}

// DoctorResponse is a listed practitioner.
type DoctorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SpecialtyID string `json:"specialty_id"`
	SpecialtyEN string `json:"specialty_en"`
	Hospital    string `json:"hospital"`
	Schedule    string `json:"schedule"`
	PhotoURL    string `json:"photo_url"`
	Active      bool   `json:"active"`
}

// WebinarRequest payload for admin webinar writes.
type WebinarRequest struct {
	TitleID         string    `json:"title_id"`
	TitleEN         string    `json:"title_en"`
	Speaker         string    `json:"speaker"`
	StartsAt        time.Time `json:"starts_at"`
	RegistrationURL string    `json:"registration_url"`
	Published       bool      `json:"published"`
}

// WebinarResponse is a scheduled event.
type WebinarResponse struct {
	ID              string    `json:"id"`
	TitleID         string    `json:"title_id"`
	TitleEN         string    `json:"title_en"`
	Speaker         string    `json:"speaker"`
	StartsAt        time.Time `json:"starts_at"`
	RegistrationURL string    `json:"registration_url"`
	Published       bool      `json:"published"`
}

// PartnerRequest payload for admin partner writes.
type PartnerRequest struct {
	Name    string `json:"name"`
	Tier    string `json:"tier"`
	LogoURL string `json:"logo_url"`
	SiteURL string `json:"site_url"`
	Active  bool   `json:"active"`
}

// PartnerResponse is an affiliated organization.
type PartnerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tier    string `json:"tier"`
	LogoURL string `json:"logo_url"`
	SiteURL string `json:"site_url"`
	Active  bool   `json:"active"`
}
