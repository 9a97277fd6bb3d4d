package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // HR administrator - approvals and overrides
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user holds the administrative role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}
