package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/localtime"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/lock"
)

type ShiftServiceImpl struct {
	shift.Repository
	employee.EmployeeRepository
	clock      clock.Clock
	normalizer *localtime.Normalizer
	locks      *lock.Keyed
}

func NewShiftService(
	shiftRepo shift.Repository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	normalizer *localtime.Normalizer,
) shift.Service {
	return &ShiftServiceImpl{
		Repository:         shiftRepo,
		EmployeeRepository: employeeRepo,
		clock:              clk,
		normalizer:         normalizer,
		locks:              lock.NewKeyed(),
	}
}

// RecordAction implements shift.Service. Transitions for one employee are
// serialized on a per-employee lock, so two concurrent clock-ins cannot both
// pass the open-session check. The timestamp is always the server clock.
func (s *ShiftServiceImpl) RecordAction(ctx context.Context, employeeID string, req shift.RecordActionRequest) (shift.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.SessionResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.SessionResponse{}, employee.ErrEmployeeNotFound
		}
		return shift.SessionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	s.locks.Lock(employeeID)
	defer s.locks.Unlock(employeeID)

	now := s.clock.Now().UTC()

	var (
		session shift.Session
		err     error
	)
	switch req.Action {
	case shift.ActionClockIn:
		session, err = s.clockIn(ctx, employeeID, now, req.Notes)
	case shift.ActionBreakStart:
		session, err = s.breakStart(ctx, employeeID, now, req.Notes)
	case shift.ActionBreakEnd:
		session, err = s.breakEnd(ctx, employeeID, now, req.Notes)
	case shift.ActionClockOut:
		session, err = s.clockOut(ctx, employeeID, now, req.Notes)
	default:
		return shift.SessionResponse{}, shift.ErrUnknownAction
	}
	if err != nil {
		return shift.SessionResponse{}, err
	}

	return s.mapSessionToResponse(session, now), nil
}

func (s *ShiftServiceImpl) clockIn(ctx context.Context, employeeID string, now time.Time, notes *string) (shift.Session, error) {
	_, err := s.Repository.GetOpenSession(ctx, employeeID)
	if err == nil {
		return shift.Session{}, shift.ErrAlreadyClockedIn
	}
	if !errors.Is(err, shift.ErrNoOpenSession) {
		return shift.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	newSession := shift.Session{
		EmployeeID: employeeID,
		CheckIn:    now,
		Notes:      notes,
	}
	if err := newSession.Validate(); err != nil {
		return shift.Session{}, err
	}

	created, err := s.Repository.Create(ctx, newSession)
	if err != nil {
		return shift.Session{}, fmt.Errorf("failed to create shift session: %w", err)
	}

	return created, nil
}

func (s *ShiftServiceImpl) breakStart(ctx context.Context, employeeID string, now time.Time, notes *string) (shift.Session, error) {
	open, err := s.Repository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, shift.ErrNoOpenSession) {
			return shift.Session{}, shift.ErrNotClockedIn
		}
		return shift.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	if open.Status() == shift.StatusOnBreak {
		return shift.Session{}, shift.ErrAlreadyOnBreak
	}

	updated, err := s.Repository.StartBreak(ctx, open.ID, now)
	if err != nil {
		return shift.Session{}, fmt.Errorf("failed to start break: %w", err)
	}

	return s.applyNotes(ctx, updated, notes)
}

func (s *ShiftServiceImpl) breakEnd(ctx context.Context, employeeID string, now time.Time, notes *string) (shift.Session, error) {
	open, err := s.Repository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, shift.ErrNoOpenSession) {
			return shift.Session{}, shift.ErrNotOnBreak
		}
		return shift.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	if open.Status() != shift.StatusOnBreak {
		return shift.Session{}, shift.ErrNotOnBreak
	}

	updated, err := s.Repository.EndBreak(ctx, open.ID, now)
	if err != nil {
		if errors.Is(err, shift.ErrNotOnBreak) {
			return shift.Session{}, shift.ErrNotOnBreak
		}
		return shift.Session{}, fmt.Errorf("failed to end break: %w", err)
	}

	return s.applyNotes(ctx, updated, notes)
}

func (s *ShiftServiceImpl) clockOut(ctx context.Context, employeeID string, now time.Time, notes *string) (shift.Session, error) {
	open, err := s.Repository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, shift.ErrNoOpenSession) {
			return shift.Session{}, shift.ErrNotClockedIn
		}
		return shift.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	// Closing the shift always closes any outstanding break, at the same
	// instant as the check-out.
	closed, err := s.Repository.CloseSession(ctx, open.ID, now)
	if err != nil {
		return shift.Session{}, fmt.Errorf("failed to close shift session: %w", err)
	}

	return s.applyNotes(ctx, closed, notes)
}

// applyNotes attaches notes supplied with a non-clock-in action. Notes carry
// no semantic weight, so this happens after the transition is committed.
func (s *ShiftServiceImpl) applyNotes(ctx context.Context, session shift.Session, notes *string) (shift.Session, error) {
	if notes == nil {
		return session, nil
	}
	if err := s.Repository.SetNotes(ctx, session.ID, notes); err != nil {
		return shift.Session{}, fmt.Errorf("failed to set session notes: %w", err)
	}
	session.Notes = notes
	return session, nil
}

// GetStatus implements shift.Service.
func (s *ShiftServiceImpl) GetStatus(ctx context.Context, employeeID string) (shift.StatusResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.StatusResponse{}, employee.ErrEmployeeNotFound
		}
		return shift.StatusResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	open, err := s.Repository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, shift.ErrNoOpenSession) {
			return shift.StatusResponse{State: shift.StatusNone}, nil
		}
		return shift.StatusResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	resp := shift.StatusResponse{
		State:     open.Status(),
		SessionID: &open.ID,
		OpenSince: timeToRFC3339Ptr(open.CheckIn),
	}
	if b := open.OpenBreak(); b != nil {
		resp.OnBreakSince = timeToRFC3339Ptr(b.StartAt)
	}

	return resp, nil
}

// GetDayView implements shift.Service. Sessions recorded on the requested
// local day are merged with synthesized absences; absences are only inferred
// for today or past days, never for the future.
func (s *ShiftServiceImpl) GetDayView(ctx context.Context, filter shift.DayViewFilter) (shift.DayViewResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.DayViewResponse{}, err
	}

	day, err := s.normalizer.Day(filter.Year, time.Month(filter.Month), filter.Day)
	if err != nil {
		return shift.DayViewResponse{}, fmt.Errorf("invalid day: %w", err)
	}

	now := s.clock.Now().UTC()
	from, to := s.normalizer.DayWindow(day)

	sessions, err := s.Repository.ListBetween(ctx, from, to)
	if err != nil {
		return shift.DayViewResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	entries := make([]shift.DayEntry, 0, len(sessions))
	seen := make(map[string]bool, len(sessions))
	for _, session := range sessions {
		seen[session.EmployeeID] = true
		if !matchesSearch(session.EmployeeName, session.EmployeeEmail, filter.Search) {
			continue
		}
		resp := s.mapSessionToResponse(session, now)
		entries = append(entries, shift.DayEntry{
			Type:    shift.DayEntrySession,
			Session: &resp,
		})
	}

	// A future day has nothing to be absent from yet.
	if !day.After(s.normalizer.LocalDay(now)) {
		roster, err := s.EmployeeRepository.List(ctx)
		if err != nil {
			return shift.DayViewResponse{}, fmt.Errorf("failed to list roster: %w", err)
		}
		for _, emp := range roster {
			if emp.IsExempt || seen[emp.ID] {
				continue
			}
			if !matchesSearch(&emp.FullName, &emp.Email, filter.Search) {
				continue
			}
			entries = append(entries, shift.DayEntry{
				Type: shift.DayEntryAbsence,
				Absence: &shift.AbsenceResponse{
					EmployeeID:    emp.ID,
					EmployeeName:  emp.FullName,
					EmployeeEmail: emp.Email,
					Day:           s.normalizer.FormatDay(day),
				},
			})
		}
	}

	return shift.DayViewResponse{
		Day:     s.normalizer.FormatDay(day),
		Entries: entries,
	}, nil
}

// GetMonthView implements shift.Service. Absence is a per-day concept, so the
// month view carries sessions only.
func (s *ShiftServiceImpl) GetMonthView(ctx context.Context, filter shift.MonthViewFilter) (shift.MonthViewResponse, error) {
	if err := filter.Validate(); err != nil {
		return shift.MonthViewResponse{}, err
	}

	first, err := s.normalizer.Day(filter.Year, time.Month(filter.Month), 1)
	if err != nil {
		return shift.MonthViewResponse{}, fmt.Errorf("invalid month: %w", err)
	}

	now := s.clock.Now().UTC()
	from, to := s.normalizer.MonthWindow(first)

	sessions, err := s.Repository.ListBetween(ctx, from, to)
	if err != nil {
		return shift.MonthViewResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	responses := make([]shift.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, s.mapSessionToResponse(session, now))
	}

	return shift.MonthViewResponse{
		Year:     filter.Year,
		Month:    filter.Month,
		Sessions: responses,
	}, nil
}

// GetPeriodTotals implements shift.Service. Open sessions contribute duration
// up to now, so totals tick while the employee stays clocked in.
func (s *ShiftServiceImpl) GetPeriodTotals(ctx context.Context, employeeID string) (shift.PeriodTotalsResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return shift.PeriodTotalsResponse{}, employee.ErrEmployeeNotFound
		}
		return shift.PeriodTotalsResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	now := s.clock.Now().UTC()

	dayFrom, dayTo := s.normalizer.DayWindow(now)
	weekFrom, weekTo := s.normalizer.WeekWindow(now)
	monthFrom, monthTo := s.normalizer.MonthWindow(now)

	today, err := s.periodTotal(ctx, employeeID, dayFrom, dayTo, now)
	if err != nil {
		return shift.PeriodTotalsResponse{}, err
	}
	week, err := s.periodTotal(ctx, employeeID, weekFrom, weekTo, now)
	if err != nil {
		return shift.PeriodTotalsResponse{}, err
	}
	month, err := s.periodTotal(ctx, employeeID, monthFrom, monthTo, now)
	if err != nil {
		return shift.PeriodTotalsResponse{}, err
	}

	return shift.PeriodTotalsResponse{
		Today: today,
		Week:  week,
		Month: month,
	}, nil
}

func (s *ShiftServiceImpl) periodTotal(ctx context.Context, employeeID string, from, to, now time.Time) (shift.PeriodTotal, error) {
	sessions, err := s.Repository.ListForEmployee(ctx, employeeID, from, to)
	if err != nil {
		return shift.PeriodTotal{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	var total time.Duration
	for _, session := range sessions {
		total += session.Duration(now)
	}

	return shift.PeriodTotal{
		Hours:    localtime.FormatHours(total),
		Sessions: len(sessions),
	}, nil
}

// mapSessionToResponse converts a Session entity to SessionResponse
func (s *ShiftServiceImpl) mapSessionToResponse(session shift.Session, now time.Time) shift.SessionResponse {
	var employeeName string
	if session.EmployeeName != nil {
		employeeName = *session.EmployeeName
	}

	breaks := make([]shift.BreakResponse, 0, len(session.Breaks))
	for _, b := range session.Breaks {
		br := shift.BreakResponse{StartAt: b.StartAt.UTC().Format(time.RFC3339)}
		if b.EndAt != nil {
			br.EndAt = timeToRFC3339Ptr(*b.EndAt)
		}
		breaks = append(breaks, br)
	}

	resp := shift.SessionResponse{
		ID:           session.ID,
		EmployeeID:   session.EmployeeID,
		EmployeeName: employeeName,
		Day:          s.normalizer.FormatDay(session.CheckIn),
		CheckIn:      session.CheckIn.UTC().Format(time.RFC3339),
		CheckInLocal: s.normalizer.FormatClock(session.CheckIn),
		Breaks:       breaks,
		Status:       session.Status(),
		WorkedHours:  localtime.FormatHours(session.Duration(now)),
		BreakHours:   localtime.FormatHours(session.BreakDuration()),
		Notes:        session.Notes,
	}
	if session.CheckOut != nil {
		resp.CheckOut = timeToRFC3339Ptr(*session.CheckOut)
		local := s.normalizer.FormatClock(*session.CheckOut)
		resp.CheckOutLocal = &local
	}

	return resp
}

func matchesSearch(name, email *string, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	if name != nil && strings.Contains(strings.ToLower(*name), needle) {
		return true
	}
	if email != nil && strings.Contains(strings.ToLower(*email), needle) {
		return true
	}
	return false
}

func timeToRFC3339Ptr(t time.Time) *string {
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
