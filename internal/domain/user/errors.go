package user

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrUserNotFound            = apperror.New(apperror.KindNotFound, "user not found")
	ErrUserEmailExists         = apperror.New(apperror.KindConflict, "email already registered")
	ErrAdminPrivilegeRequired  = apperror.New(apperror.KindForbidden, "admin privilege required")
	ErrInsufficientPermissions = apperror.New(apperror.KindForbidden, "insufficient permissions")
	ErrNotAnEmployee           = apperror.New(apperror.KindForbidden, "account is not linked to an employee")
)
