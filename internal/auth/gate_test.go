package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medikita/platform/internal/identity"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want RouteClass
	}{
		{"/", ClassStandard},
		{"/products", ClassStandard},
		{"/api/products", ClassStandard},
		{"/dashboard", ClassStandard},
		{"/signin", ClassStandard},
		{"/admin", ClassPrivileged},
		{"/admin/", ClassPrivileged},
		{"/admin/products", ClassPrivileged},
		{"/admin/orders/abc/sync", ClassPrivileged},
		{"/administrators", ClassStandard},
		{"/adminx", ClassStandard},
		{"/api/admin-report", ClassStandard},
		{"/assets/app.css", ClassStatic},
		{"/static/logo.js", ClassStatic},
		{"/favicon.ico", ClassStatic},
		{"/health/live", ClassStatic},
		{"/metrics", ClassStatic},
		{"/images/banner.png", ClassStatic},
		{"/admin/export.svg", ClassStatic},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.path))
		})
	}
}

func TestDecide(t *testing.T) {
	admin := &identity.User{ID: "a", Role: identity.RoleAdmin}
	standard := &identity.User{ID: "s", Role: identity.RoleStandard}
	resolveErr := errors.New("provider unreachable")

	cases := []struct {
		name  string
		class RouteClass
		user  *identity.User
		err   error
		want  Decision
	}{
		{"standard path anonymous", ClassStandard, nil, nil, DecisionAllow},
		{"standard path with resolve error stays open", ClassStandard, nil, resolveErr, DecisionAllow},
		{"standard path admin", ClassStandard, admin, nil, DecisionAllow},
		{"static path", ClassStatic, nil, nil, DecisionAllow},
		{"privileged anonymous", ClassPrivileged, nil, nil, DecisionSignIn},
		{"privileged resolve error fails closed", ClassPrivileged, nil, resolveErr, DecisionSignIn},
		{"privileged error with user still fails closed", ClassPrivileged, admin, resolveErr, DecisionSignIn},
		{"privileged standard user", ClassPrivileged, standard, nil, DecisionHome},
		{"privileged admin", ClassPrivileged, admin, nil, DecisionAllow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.class, tc.user, tc.err))
		})
	}
}
