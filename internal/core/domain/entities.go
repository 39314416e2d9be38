package domain

// Role represents a user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Status represents the lifecycle state of a loan request
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
	StatusReturned Status = "returned"
)

// ParseStatus validates a raw status string
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusAccepted, StatusRefused, StatusReturned:
		return Status(raw), nil
	}
	return "", ErrInvalidStatus
}

// IsTerminal reports whether no further transition may leave this status
func (s Status) IsTerminal() bool {
	return s == StatusRefused || s == StatusReturned
}

// Actor is the authenticated identity performing an operation.
// Every authorization and processor call receives it explicitly.
type Actor struct {
	ID      uint
	Email   string
	Roles   []Role
	Blocked bool
}

// IsAdmin reports whether the actor carries the admin role
func (a Actor) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// EffectiveRoles returns a stored role set with the implicit USER role.
// The implicit role is derived, never stored, and the set carries no duplicates.
func EffectiveRoles(stored []Role) []Role {
	roles := make([]Role, 0, len(stored)+1)
	seen := make(map[Role]bool, len(stored)+1)
	for _, r := range append([]Role{RoleUser}, stored...) {
		if !seen[r] {
			seen[r] = true
			roles = append(roles, r)
		}
	}
	return roles
}
