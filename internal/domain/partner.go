package domain

import "time"

// PartnerTier orders partners on the public listing.
type PartnerTier string

const (
	PartnerTierPlatinum PartnerTier = "PLATINUM"
	PartnerTierGold     PartnerTier = "GOLD"
	PartnerTierSilver   PartnerTier = "SILVER"
)

// Partner is an affiliated organization shown on the storefront.
type Partner struct {
	ID        string
	Name      string
	Tier      PartnerTier
	LogoURL   string
	SiteURL   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
