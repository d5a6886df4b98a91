package approval

import (
	"fmt"
	"strings"
)

// Role is a capability held by a directory user.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleIntern     Role = "intern"
	RoleMentor     Role = "mentor"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
	RoleContract   Role = "contract"
)

var knownRoles = map[Role]struct{}{
	RoleEmployee:   {},
	RoleIntern:     {},
	RoleMentor:     {},
	RoleSupervisor: {},
	RoleAdmin:      {},
	RoleContract:   {},
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// IsStepRole reports whether r can own an approval step.
func (r Role) IsStepRole() bool {
	return r == RoleMentor || r == RoleSupervisor || r == RoleAdmin
}

// ParseRole normalises s and checks it against the known roles.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleSet is an ordered set of roles. Order is preserved from the directory
// because the first role is used as the primary role in statistics.
type RoleSet []Role

// ParseRoles parses and de-duplicates a list of role names.
func ParseRoles(names []string) (RoleSet, error) {
	set := make(RoleSet, 0, len(names))
	for _, name := range names {
		r, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		if !set.Has(r) {
			set = append(set, r)
		}
	}
	return set, nil
}

// Has reports membership.
func (s RoleSet) Has(r Role) bool {
	for _, have := range s {
		if have == r {
			return true
		}
	}
	return false
}

// Primary returns the first role, or "" for an empty set.
func (s RoleSet) Primary() Role {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Strings converts the set for storage.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}
