package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Attendance"

// ExportMonth implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportMonth(ctx context.Context, employeeID string, month string) ([]byte, error) {
	records, err := a.monthRecords(ctx, employeeID, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"Date", "Check In", "Check Out", "Hours", "Status", "Override Reason"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	// Oldest day first reads better in a sheet.
	row := 2
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		values := []any{
			r.Date.Format(validator.DateLayout),
			formatClock(r.CheckInTime),
			formatClock(r.CheckOutTime),
			"",
			string(attendance.StatusFor(r)),
			"",
		}
		if hours, ok := r.DurationHours(); ok {
			values[3] = fmt.Sprintf("%.2f", hours)
		}
		if r.OverrideReason != nil {
			values[5] = *r.OverrideReason
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	stats := attendance.Tally(records)
	summary := [][]any{
		{"Present", stats.Present},
		{"Half day", stats.HalfDay},
		{"Absent", stats.Absent},
		{"Leave", stats.Leave},
		{"Total", stats.Total},
	}
	row++
	for _, line := range summary {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &line); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
		row++
	}

	if err := f.SetColWidth(exportSheet, "A", "F", 18); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("15:04:05")
}
