package models

// Role tags the kind of account behind an authenticated identity.
type Role string

const (
	RoleMate   Role = "mate"
	RoleRenter Role = "renter"
)

// Identity is the authenticated caller of a booking operation.
type Identity struct {
	ID   string
	Role Role
}

// IsZero reports whether no identity was supplied.
func (i Identity) IsZero() bool {
	return i.ID == "" || i.Role == ""
}
