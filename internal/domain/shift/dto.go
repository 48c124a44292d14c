package shift

import (
	"fmt"
	"strings"

	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// Action is a caller-requested state-machine transition.
type Action string

const (
	ActionClockIn    Action = "CLOCK_IN"
	ActionClockOut   Action = "CLOCK_OUT"
	ActionBreakStart Action = "BREAK_START"
	ActionBreakEnd   Action = "BREAK_END"
)

type RecordActionRequest struct {
	Action Action  `json:"action"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *RecordActionRequest) Validate() error {
	var errs validator.ValidationErrors

	valid := []string{
		string(ActionClockIn), string(ActionClockOut),
		string(ActionBreakStart), string(ActionBreakEnd),
	}
	if !validator.IsInSlice(string(r.Action), valid) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: CLOCK_IN, CLOCK_OUT, BREAK_START, BREAK_END",
		})
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakResponse struct {
	StartAt string  `json:"start_at"`
	EndAt   *string `json:"end_at,omitempty"`
}

type SessionResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Day           string          `json:"day"`
	CheckIn       string          `json:"check_in"`
	CheckOut      *string         `json:"check_out,omitempty"`
	CheckInLocal  string          `json:"check_in_local"`
	CheckOutLocal *string         `json:"check_out_local,omitempty"`
	Breaks        []BreakResponse `json:"breaks"`
	Status        Status          `json:"status"`
	WorkedHours   string          `json:"worked_hours"`
	BreakHours    string          `json:"break_hours"`
	Notes         *string         `json:"notes,omitempty"`
}

type AbsenceResponse struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
	Day           string `json:"day"`
}

// DayEntryType tags the two shapes a day view row can take.
type DayEntryType string

const (
	DayEntrySession DayEntryType = "session"
	DayEntryAbsence DayEntryType = "absence"
)

// DayEntry is a tagged union: exactly one of Session or Absence is set,
// according to Type.
type DayEntry struct {
	Type    DayEntryType     `json:"type"`
	Session *SessionResponse `json:"session,omitempty"`
	Absence *AbsenceResponse `json:"absence,omitempty"`
}

type DayViewResponse struct {
	Day     string     `json:"day"`
	Entries []DayEntry `json:"entries"`
}

type MonthViewResponse struct {
	Year     int               `json:"year"`
	Month    int               `json:"month"`
	Sessions []SessionResponse `json:"sessions"`
}

type StatusResponse struct {
	State        Status  `json:"state"`
	SessionID    *string `json:"session_id,omitempty"`
	OpenSince    *string `json:"open_since,omitempty"`
	OnBreakSince *string `json:"on_break_since,omitempty"`
}

// StatusNone is reported when the employee has no open session. It is not a
// Session status; sessions are never in this state.
const StatusNone Status = "NONE"

type PeriodTotal struct {
	Hours    string `json:"hours"`
	Sessions int    `json:"sessions"`
}

type PeriodTotalsResponse struct {
	Today PeriodTotal `json:"today"`
	Week  PeriodTotal `json:"week"`
	Month PeriodTotal `json:"month"`
}

type DayViewFilter struct {
	Year   int
	Month  int
	Day    int
	Search string
}

func (f *DayViewFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Year < 2000 || f.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2200",
		})
	}
	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Day < 1 || f.Day > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "day",
			Message: "day must be between 1 and 31",
		})
	}

	// Components in range can still name a day that does not exist, e.g.
	// February 30th.
	if len(errs) == 0 {
		if _, ok := validator.IsValidDate(fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "day",
				Message: "day does not exist in the given month",
			})
		}
	}

	f.Search = strings.TrimSpace(f.Search)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MonthViewFilter struct {
	Year  int
	Month int
}

func (f *MonthViewFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Year < 2000 || f.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2200",
		})
	}
	if f.Month < 1 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
