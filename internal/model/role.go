package model

import "fmt"

// Role is the closed set of account roles embedded in token claims.
type Role string

const (
	// RoleCreator may publish and manage their own books.
	RoleCreator Role = "CREATOR"
	// RoleViewer may only browse the catalog.
	RoleViewer Role = "VIEWER"
)

// ParseRole validates a raw role string. An empty string defaults to viewer.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCreator, RoleViewer:
		return Role(raw), nil
	case "":
		return RoleViewer, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// IsValid reports whether the role is a member of the closed set.
func (r Role) IsValid() bool {
	return r == RoleCreator || r == RoleViewer
}

// CanManageBooks reports whether the role grants create/update/delete
// rights on book records.
func (r Role) CanManageBooks() bool {
	return r == RoleCreator
}

// AuthContext is the verified identity attached to a request after the
// auth middleware has run.
type AuthContext struct {
	UserID string
	Role   Role
}
