package shift

import (
	"context"
	"time"
)

// Repository is the append-only clock ledger. Sessions are created once,
// mutated only by the break/close operations below, and never deleted in
// normal operation. All instants are UTC.
type Repository interface {
	// Create appends a new session to the ledger
	Create(ctx context.Context, session Session) (Session, error)

	// GetByID retrieves a session with its breaks
	GetByID(ctx context.Context, id string) (Session, error)

	// GetOpenSession retrieves the employee's session with no check-out.
	// Returns ErrNoOpenSession when the employee is not clocked in.
	GetOpenSession(ctx context.Context, employeeID string) (Session, error)

	// StartBreak appends an open break entry to the session
	StartBreak(ctx context.Context, sessionID string, at time.Time) (Session, error)

	// EndBreak closes the session's open break at the given instant
	EndBreak(ctx context.Context, sessionID string, at time.Time) (Session, error)

	// CloseSession sets check-out and closes any outstanding break at the same
	// instant, atomically.
	CloseSession(ctx context.Context, sessionID string, at time.Time) (Session, error)

	// SetNotes replaces the session's free-text annotation. Notes carry no
	// semantic weight.
	SetNotes(ctx context.Context, sessionID string, notes *string) error

	// ListForEmployee retrieves the employee's sessions with check-in inside
	// [from, to), ordered by check-in ascending.
	ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Session, error)

	// ListBetween retrieves all employees' sessions with check-in inside
	// [from, to), ordered by check-in ascending, with roster names joined.
	ListBetween(ctx context.Context, from, to time.Time) ([]Session, error)
}
