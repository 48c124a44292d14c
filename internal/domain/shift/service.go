package shift

import (
	"context"
)

// Service defines the shift tracking engine's operations
type Service interface {
	// RecordAction applies a clock-in/out or break transition for the employee,
	// timestamped with the server clock
	RecordAction(ctx context.Context, employeeID string, req RecordActionRequest) (SessionResponse, error)

	// GetStatus reports the employee's current state and since when
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)

	// GetDayView merges the day's sessions with synthesized absences
	GetDayView(ctx context.Context, filter DayViewFilter) (DayViewResponse, error)

	// GetMonthView lists all sessions of a local calendar month
	GetMonthView(ctx context.Context, filter MonthViewFilter) (MonthViewResponse, error)

	// GetPeriodTotals reports worked hours for today, this week and this month
	GetPeriodTotals(ctx context.Context, employeeID string) (PeriodTotalsResponse, error)
}
