package employee

import "time"

type Employee struct {
	ID          string
	UserID      string
	FullName    string
	Department  *string
	Designation *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	Email string
}
