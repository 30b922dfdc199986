package domain

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Access is the requirement a policy rule places on a path.
type Access string

const (
	AccessPublic        Access = "public"
	AccessAuthenticated Access = "authenticated"
	AccessRoles         Access = "roles"
)

// PolicyRule binds a path prefix to an access requirement. Roles is only
// meaningful for AccessRoles and must then be non-empty.
type PolicyRule struct {
	Prefix string
	Access Access
	Roles  []Role
}

// Decision is the outcome of evaluating a request against a Policy.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

var ErrInvalidPolicy = errors.New("invalid access policy")

// Policy is an ordered, immutable rule table. The first matching rule wins;
// paths no rule matches require an authenticated identity.
type Policy struct {
	rules []PolicyRule
}

// NewPolicy validates rules and returns a Policy holding a private copy.
func NewPolicy(rules []PolicyRule) (*Policy, error) {
	out := make([]PolicyRule, 0, len(rules))
	for i, r := range rules {
		if r.Prefix == "" || !strings.HasPrefix(r.Prefix, "/") {
			return nil, fmt.Errorf("%w: rule %d: prefix %q must start with /", ErrInvalidPolicy, i, r.Prefix)
		}
		switch r.Access {
		case AccessPublic, AccessAuthenticated:
			if len(r.Roles) > 0 {
				return nil, fmt.Errorf("%w: rule %d: roles given for %s access", ErrInvalidPolicy, i, r.Access)
			}
		case AccessRoles:
			if len(r.Roles) == 0 {
				return nil, fmt.Errorf("%w: rule %d: role access needs at least one role", ErrInvalidPolicy, i)
			}
			for _, role := range r.Roles {
				if !role.Valid() {
					return nil, fmt.Errorf("%w: rule %d: unknown role %q", ErrInvalidPolicy, i, role)
				}
			}
		default:
			return nil, fmt.Errorf("%w: rule %d: unknown access %q", ErrInvalidPolicy, i, r.Access)
		}
		out = append(out, PolicyRule{
			Prefix: r.Prefix,
			Access: r.Access,
			Roles:  append([]Role(nil), r.Roles...),
		})
	}
	return &Policy{rules: out}, nil
}

// DefaultPolicyRules is the built-in route table.
func DefaultPolicyRules() []PolicyRule {
	return []PolicyRule{
		{Prefix: "/api/v1/authorized/admin/", Access: AccessRoles, Roles: []Role{RoleAdmin}},
		{Prefix: "/api/v1/authorized/", Access: AccessRoles, Roles: []Role{RoleUser, RoleAdmin}},
		{Prefix: "/api/v1/auth/", Access: AccessPublic},
		{Prefix: "/static/", Access: AccessPublic},
		{Prefix: "/assets/", Access: AccessPublic},
		{Prefix: "/swagger/", Access: AccessPublic},
		{Prefix: "/api/v1/health", Access: AccessPublic},
		{Prefix: "/health", Access: AccessPublic},
		{Prefix: "/metrics", Access: AccessPublic},
	}
}

// DefaultPolicy returns the Policy built from DefaultPolicyRules.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultPolicyRules())
	if err != nil {
		panic(err)
	}
	return p
}

// Rules returns a copy of the rule table.
func (p *Policy) Rules() []PolicyRule {
	out := make([]PolicyRule, len(p.rules))
	for i, r := range p.rules {
		out[i] = PolicyRule{Prefix: r.Prefix, Access: r.Access, Roles: append([]Role(nil), r.Roles...)}
	}
	return out
}

// Match returns the first rule covering urlPath.
func (p *Policy) Match(urlPath string) (PolicyRule, bool) {
	clean := cleanPath(urlPath)
	for _, r := range p.rules {
		if prefixMatches(r.Prefix, clean) {
			return r, true
		}
	}
	return PolicyRule{}, false
}

// Evaluate decides whether id may access urlPath.
func (p *Policy) Evaluate(urlPath string, id Identity) Decision {
	rule, ok := p.Match(urlPath)
	if !ok {
		rule = PolicyRule{Access: AccessAuthenticated}
	}

	switch rule.Access {
	case AccessPublic:
		return Allow
	case AccessAuthenticated:
		if !id.Authenticated() {
			return DenyUnauthenticated
		}
		return Allow
	default:
		if !id.Authenticated() {
			return DenyUnauthenticated
		}
		if !id.HasAnyRole(rule.Roles...) {
			return DenyForbidden
		}
		return Allow
	}
}

// cleanPath resolves dot segments so "/api/v1/auth/../authorized/admin/x"
// is judged by where it actually points.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// prefixMatches treats "/a/b/" and "/a/b" alike: both cover "/a/b" itself and
// everything below it, but not "/a/bc".
func prefixMatches(prefix, p string) bool {
	base := strings.TrimSuffix(prefix, "/")
	if base == "" {
		return true
	}
	return p == base || strings.HasPrefix(p, base+"/")
}
