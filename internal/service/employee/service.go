package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
	hashCost     int
}

func NewEmployeeService(
	tx database.Transactor,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		hashCost:     bcrypt.DefaultCost,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, actorUserID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		newUser, err := s.userRepo.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: string(hash),
			Role:         req.Role,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:      newUser.ID,
			FullName:    req.FullName,
			Department:  req.Department,
			Designation: req.Designation,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		if _, err := s.auditRepo.Append(txCtx, audit.Entry{
			Action:      audit.ActionCreate,
			ActorUserID: actorUserID,
			EntityType:  audit.EntityEmployee,
			EntityID:    created.ID,
			Changes: map[string]any{
				"user_id":     newUser.ID,
				"email":       newUser.Email,
				"role":        string(newUser.Role),
				"full_name":   created.FullName,
				"department":  created.Department,
				"designation": created.Designation,
			},
		}); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "employee created", "employee_id", created.ID, "actor_user_id", actorUserID)
	return employee.ToResponse(created), nil
}

// GetByUserID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByUserID(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by user ID: %w", err)
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.ToResponse(e))
	}
	return out, nil
}
