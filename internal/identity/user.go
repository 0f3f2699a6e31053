package identity

import "time"

// Role is the typed privilege level decoded from provider metadata.
type Role string

const (
	RoleStandard Role = "STANDARD"
	RoleAdmin    Role = "ADMIN"
)

// adminRoleMarker is the raw metadata value that grants elevated privilege.
// The comparison is exact and case-sensitive.
const adminRoleMarker = "admin"

// metadataRoleKey is the recognized key inside the provider metadata bag.
const metadataRoleKey = "role"

// User is the identity resolved from a provider session.
type User struct {
	ID       string
	Email    string
	Role     Role
	Metadata map[string]any
}

// IsAdmin reports whether the user carries elevated privilege.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// RoleFromMetadata decodes the raw metadata bag into a typed role.
// A missing key, a non-string value, or any string other than the exact
// admin marker yields RoleStandard.
func RoleFromMetadata(meta map[string]any) Role {
	if meta == nil {
		return RoleStandard
	}
	raw, ok := meta[metadataRoleKey]
	if !ok {
		return RoleStandard
	}
	val, ok := raw.(string)
	if !ok || val != adminRoleMarker {
		return RoleStandard
	}
	return RoleAdmin
}

// Session is a provider-issued credential pair bound to a user.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
