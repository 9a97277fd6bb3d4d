package auth

import "github.com/cmlabs-hris/hrms-backend-go/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid email or password")
	ErrInvalidToken       = apperror.New(apperror.KindUnauthorized, "invalid or expired token")
)
