package auth

import (
	"strings"

	"github.com/medikita/platform/internal/identity"
)

// Well-known redirect targets used by the gate and the auth handlers.
const (
	PathHome      = "/"
	PathSignIn    = "/signin"
	PathAdminHome = "/admin"
	PathDashboard = "/dashboard"
)

// PrivilegedPrefix is the single path segment whose routes require admin role.
const PrivilegedPrefix = "/admin"

// RouteClass partitions request paths before any handler executes.
type RouteClass int

const (
	// ClassStatic paths bypass identity resolution entirely.
	ClassStatic RouteClass = iota
	// ClassStandard paths are open to anonymous browsing.
	ClassStandard
	// ClassPrivileged paths require an admin principal.
	ClassPrivileged
)

var staticPrefixes = []string{
	"/assets/",
	"/static/",
	"/favicon.ico",
	"/health",
	"/metrics",
}

var staticExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico",
}

// Classify assigns a route class to a request path. The privileged prefix is
// matched as a whole path segment: /admin and /admin/... qualify,
// /administrators does not.
func Classify(path string) RouteClass {
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(path, prefix) {
			return ClassStatic
		}
	}
	for _, ext := range staticExtensions {
		if strings.HasSuffix(path, ext) {
			return ClassStatic
		}
	}
	if path == PrivilegedPrefix || strings.HasPrefix(path, PrivilegedPrefix+"/") {
		return ClassPrivileged
	}
	return ClassStandard
}

// Decision enumerates gate outcomes. Keeping the policy a pure function of
// its inputs makes it testable without an HTTP harness.
type Decision int

const (
	// DecisionAllow passes the request through unchanged.
	DecisionAllow Decision = iota
	// DecisionSignIn redirects to the sign-in page.
	DecisionSignIn
	// DecisionHome redirects to the site root.
	DecisionHome
)

// Decide evaluates the role policy for a classified request.
// Standard paths always pass: anonymous browsing must not depend on
// identity-provider health. Privileged paths fail closed: a resolution
// error or missing user denies to sign-in, and a resolved user is admitted
// only when the typed role is RoleAdmin.
func Decide(class RouteClass, user *identity.User, resolveErr error) Decision {
	if class != ClassPrivileged {
		return DecisionAllow
	}
	if resolveErr != nil || user == nil {
		return DecisionSignIn
	}
	if !user.IsAdmin() {
		return DecisionHome
	}
	return DecisionAllow
}
