package shift

import (
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/pkg/validator"
)

// Status is derived from the session's timestamps, never stored.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusOnBreak   Status = "ON_BREAK"
	StatusCompleted Status = "COMPLETED"
)

// Break is one rest interval inside a session. A nil EndAt means the employee
// is currently on break.
type Break struct {
	ID        string
	SessionID string
	StartAt   time.Time
	EndAt     *time.Time
}

// Session is one work interval for one employee, attributed to the local
// calendar day of its check-in. Timestamps are stored in UTC. A nil CheckOut
// means the session is open.
type Session struct {
	ID         string
	EmployeeID string
	CheckIn    time.Time
	CheckOut   *time.Time
	Breaks     []Break
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO (joined from the roster for reporting)
	EmployeeName  *string
	EmployeeEmail *string
}

// Status derives the session state: COMPLETED once checked out, ON_BREAK while
// the latest break has no end, ACTIVE otherwise.
func (s *Session) Status() Status {
	if s.CheckOut != nil {
		return StatusCompleted
	}
	if s.OpenBreak() != nil {
		return StatusOnBreak
	}
	return StatusActive
}

// OpenBreak returns the break with no end, or nil. At most one can be open.
func (s *Session) OpenBreak() *Break {
	for i := range s.Breaks {
		if s.Breaks[i].EndAt == nil {
			return &s.Breaks[i]
		}
	}
	return nil
}

// Duration is the worked duration of the session. Open sessions tick against
// now and are recomputed on every query. Break time is paid and therefore not
// subtracted from the total.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.CheckOut != nil {
		return s.CheckOut.Sub(s.CheckIn)
	}
	return now.Sub(s.CheckIn)
}

// BreakDuration sums the closed break intervals, for display only. It does not
// reduce Duration.
func (s *Session) BreakDuration() time.Duration {
	var total time.Duration
	for _, b := range s.Breaks {
		if b.EndAt == nil {
			continue
		}
		total += b.EndAt.Sub(b.StartAt)
	}
	return total
}

// Validate defensively checks the structural invariants: check-out strictly
// after check-in, each break end strictly after its start, breaks in order and
// non-overlapping, and at most one open break.
func (s *Session) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(s.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if s.CheckIn.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "check_in is required",
		})
	}

	if s.CheckOut != nil && !s.CheckOut.After(s.CheckIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out",
			Message: "check_out must be after check_in",
		})
	}

	open := 0
	var prevEnd *time.Time
	for _, b := range s.Breaks {
		if b.EndAt == nil {
			open++
			continue
		}
		if !b.EndAt.After(b.StartAt) {
			errs = append(errs, validator.ValidationError{
				Field:   "breaks",
				Message: "break end must be after break start",
			})
		}
		if prevEnd != nil && b.StartAt.Before(*prevEnd) {
			errs = append(errs, validator.ValidationError{
				Field:   "breaks",
				Message: "breaks must not overlap",
			})
		}
		prevEnd = b.EndAt
	}
	if open > 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "breaks",
			Message: "at most one break can be open",
		})
	}
	if open == 1 && s.CheckOut != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "breaks",
			Message: "a completed session cannot have an open break",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Absence is a synthesized entry for a non-exempt roster member with no
// session on a queried local day. It exists only in query results and is never
// persisted.
type Absence struct {
	EmployeeID    string
	EmployeeName  string
	EmployeeEmail string
	Day           time.Time
}
