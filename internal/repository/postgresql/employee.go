package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.full_name, e.department, e.designation,
		   e.created_at, e.updated_at, u.email
	FROM employees e
	JOIN users u ON u.id = e.user_id`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FullName,
		&e.Department,
		&e.Designation,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Email,
	)
	return e, err
}

func (r *employeeRepositoryImpl) getOne(ctx context.Context, query string, arg any) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.id = $1`, id)
}

// GetByIDForUpdate implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.id = $1 FOR UPDATE OF e`, id)
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return r.getOne(ctx, employeeSelect+` WHERE e.user_id = $1`, userID)
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO employees (user_id, full_name, department, designation)
			VALUES ($1, $2, $3, $4)
			RETURNING id, user_id, full_name, department, designation, created_at, updated_at
		)
		SELECT i.id, i.user_id, i.full_name, i.department, i.designation,
			   i.created_at, i.updated_at, u.email
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.FullName,
		newEmployee.Department,
		newEmployee.Designation,
	))
	if err != nil {
		if isUniqueViolation(err, "employees_user_id_key") {
			return employee.Employee{}, employee.ErrUserAlreadyEmployee
		}
		return employee.Employee{}, fmt.Errorf("insert employee: %w", err)
	}

	return created, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+` ORDER BY e.full_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
