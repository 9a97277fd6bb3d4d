package employee

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound    = apperror.New(apperror.KindNotFound, "employee not found")
	ErrUserAlreadyEmployee = apperror.New(apperror.KindConflict, "user is already linked to an employee")
)
