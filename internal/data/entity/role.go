package entity

import "fmt"

// Role is the closed set of account roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Capability is something a role may be allowed to do beyond owning its own content.
type Capability uint8

const (
	// CapModerate allows editing and deleting other accounts' reviews and comments.
	CapModerate Capability = iota + 1
	// CapAdminister allows managing the catalog and accounts.
	CapAdminister
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Can reports whether the role grants c. Unknown roles grant nothing.
func (r Role) Can(c Capability) bool {
	switch c {
	case CapModerate:
		return r == RoleModerator || r == RoleAdmin
	case CapAdminister:
		return r == RoleAdmin
	}
	return false
}
