package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates a login and its employee profile (admin only)
	CreateEmployee(ctx context.Context, actorUserID string, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetByUserID resolves the employee profile linked to a login
	GetByUserID(ctx context.Context, userID string) (EmployeeResponse, error)

	// ListEmployees lists every employee (admin only)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
}
