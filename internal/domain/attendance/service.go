package attendance

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=mock/service_mock.go -package=mock

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the employee
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// CheckOut closes today's record and stores its derived status
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// Override pins a day's status on behalf of an administrator
	Override(ctx context.Context, adminUserID string, req OverrideAttendanceRequest) (AttendanceResponse, error)

	// History lists an employee's records, newest day first
	History(ctx context.Context, employeeID string, filter HistoryFilter) ([]AttendanceResponse, error)

	// MonthlyStats counts an employee's days by status within a calendar month
	MonthlyStats(ctx context.Context, employeeID string, month string) (MonthlyStatsResponse, error)

	// ExportMonth renders the month as an XLSX workbook
	ExportMonth(ctx context.Context, employeeID string, month string) ([]byte, error)
}
