package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email       string    `json:"email" validate:"required,email"`
	Password    string    `json:"password" validate:"required,min=8,max=72"`
	FullName    string    `json:"full_name" validate:"required,max=255"`
	Department  *string   `json:"department,omitempty" validate:"omitempty,max=100"`
	Designation *string   `json:"designation,omitempty" validate:"omitempty,max=100"`
	Role        user.Role `json:"role" validate:"omitempty,oneof=ADMIN EMPLOYEE"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Role == "" {
		r.Role = user.RoleEmployee
	}
	return validator.Struct(r)
}

type EmployeeResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email,omitempty"`
	FullName    string    `json:"full_name"`
	Department  *string   `json:"department,omitempty"`
	Designation *string   `json:"designation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Email:       e.Email,
		FullName:    e.FullName,
		Department:  e.Department,
		Designation: e.Designation,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
