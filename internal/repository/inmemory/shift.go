package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/shift"
)

// ShiftRepository is a mutex-guarded in-memory clock ledger. Reads return
// deep copies, so callers observe a snapshot that later writes cannot mutate.
type ShiftRepository struct {
	mu       sync.RWMutex
	sessions map[string]*shift.Session
	roster   *EmployeeRepository
}

func NewShiftRepository(roster *EmployeeRepository) *ShiftRepository {
	return &ShiftRepository{
		sessions: make(map[string]*shift.Session),
		roster:   roster,
	}
}

func cloneSession(s *shift.Session) shift.Session {
	out := *s
	out.Breaks = make([]shift.Break, len(s.Breaks))
	copy(out.Breaks, s.Breaks)
	return out
}

func (r *ShiftRepository) withNames(s shift.Session) shift.Session {
	if r.roster == nil {
		return s
	}
	emp, err := r.roster.GetByID(context.Background(), s.EmployeeID)
	if err != nil {
		return s
	}
	s.EmployeeName = &emp.FullName
	s.EmployeeEmail = &emp.Email
	return s
}

// Create implements shift.Repository.
func (r *ShiftRepository) Create(ctx context.Context, session shift.Session) (shift.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session.ID = uuid.NewString()
	session.CreatedAt = time.Now().UTC()
	session.UpdatedAt = session.CreatedAt

	stored := cloneSession(&session)
	r.sessions[session.ID] = &stored

	return r.withNames(cloneSession(&stored)), nil
}

// GetByID implements shift.Repository.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (shift.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return shift.Session{}, shift.ErrSessionNotFound
	}
	return r.withNames(cloneSession(s)), nil
}

// GetOpenSession implements shift.Repository.
func (r *ShiftRepository) GetOpenSession(ctx context.Context, employeeID string) (shift.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var open *shift.Session
	for _, s := range r.sessions {
		if s.EmployeeID != employeeID || s.CheckOut != nil {
			continue
		}
		if open == nil || s.CheckIn.After(open.CheckIn) {
			open = s
		}
	}
	if open == nil {
		return shift.Session{}, shift.ErrNoOpenSession
	}
	return r.withNames(cloneSession(open)), nil
}

// StartBreak implements shift.Repository.
func (r *ShiftRepository) StartBreak(ctx context.Context, sessionID string, at time.Time) (shift.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return shift.Session{}, shift.ErrSessionNotFound
	}

	s.Breaks = append(s.Breaks, shift.Break{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		StartAt:   at,
	})
	s.UpdatedAt = time.Now().UTC()

	return r.withNames(cloneSession(s)), nil
}

// EndBreak implements shift.Repository.
func (r *ShiftRepository) EndBreak(ctx context.Context, sessionID string, at time.Time) (shift.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return shift.Session{}, shift.ErrSessionNotFound
	}

	closed := false
	for i := range s.Breaks {
		if s.Breaks[i].EndAt == nil {
			end := at
			s.Breaks[i].EndAt = &end
			closed = true
			break
		}
	}
	if !closed {
		return shift.Session{}, shift.ErrNotOnBreak
	}
	s.UpdatedAt = time.Now().UTC()

	return r.withNames(cloneSession(s)), nil
}

// CloseSession implements shift.Repository. Any outstanding break is closed at
// the same instant as the check-out.
func (r *ShiftRepository) CloseSession(ctx context.Context, sessionID string, at time.Time) (shift.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return shift.Session{}, shift.ErrSessionNotFound
	}

	for i := range s.Breaks {
		if s.Breaks[i].EndAt == nil {
			end := at
			s.Breaks[i].EndAt = &end
		}
	}
	out := at
	s.CheckOut = &out
	s.UpdatedAt = time.Now().UTC()

	return r.withNames(cloneSession(s)), nil
}

// SetNotes implements shift.Repository.
func (r *ShiftRepository) SetNotes(ctx context.Context, sessionID string, notes *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return shift.ErrSessionNotFound
	}
	s.Notes = notes
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// ListForEmployee implements shift.Repository.
func (r *ShiftRepository) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []shift.Session
	for _, s := range r.sessions {
		if s.EmployeeID != employeeID {
			continue
		}
		if s.CheckIn.Before(from) || !s.CheckIn.Before(to) {
			continue
		}
		result = append(result, r.withNames(cloneSession(s)))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CheckIn.Before(result[j].CheckIn)
	})
	return result, nil
}

// ListBetween implements shift.Repository.
func (r *ShiftRepository) ListBetween(ctx context.Context, from, to time.Time) ([]shift.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []shift.Session
	for _, s := range r.sessions {
		if s.CheckIn.Before(from) || !s.CheckIn.Before(to) {
			continue
		}
		result = append(result, r.withNames(cloneSession(s)))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CheckIn.Before(result[j].CheckIn)
	})
	return result, nil
}
