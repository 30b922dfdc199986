package domain

import "time"

// IdentityKind tells how a request identity was established.
type IdentityKind string

const (
	IdentityAnonymous IdentityKind = "anonymous"
	IdentityToken     IdentityKind = "token"
)

// Identity is the principal attached to a single request. It is resolved once
// by the authentication middleware and read by everything downstream.
type Identity struct {
	Kind      IdentityKind
	Subject   string
	Roles     []Role
	TokenID   string
	ExpiresAt time.Time
}

// Anonymous is the identity of a request without credentials.
func Anonymous() Identity {
	return Identity{Kind: IdentityAnonymous}
}

func (i Identity) Authenticated() bool {
	return i.Kind == IdentityToken && i.Subject != ""
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i Identity) HasAnyRole(roles ...Role) bool {
	for _, have := range i.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
