package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/shift"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

const sessionColumns = `
	s.id, s.employee_id, s.check_in, s.check_out, s.notes, s.created_at, s.updated_at,
	e.full_name AS employee_name,
	e.email AS employee_email
`

func scanSession(row pgx.Row) (shift.Session, error) {
	var s shift.Session
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.CheckIn, &s.CheckOut, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeEmail,
	)
	return s, err
}

// loadBreaks attaches break rows to the given sessions, ordered by start.
func (r *shiftRepository) loadBreaks(ctx context.Context, sessions []shift.Session) error {
	if len(sessions) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, 0, len(sessions))
	index := make(map[string]int, len(sessions))
	for i, s := range sessions {
		ids = append(ids, s.ID)
		index[s.ID] = i
	}

	query := `
		SELECT id, session_id, start_at, end_at
		FROM shift_breaks
		WHERE session_id = ANY($1)
		ORDER BY start_at ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b shift.Break
		if err := rows.Scan(&b.ID, &b.SessionID, &b.StartAt, &b.EndAt); err != nil {
			return fmt.Errorf("failed to scan break: %w", err)
		}
		i, ok := index[b.SessionID]
		if !ok {
			continue
		}
		sessions[i].Breaks = append(sessions[i].Breaks, b)
	}

	return nil
}

// Create implements shift.Repository.
func (r *shiftRepository) Create(ctx context.Context, session shift.Session) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_sessions (employee_id, check_in, notes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		session.EmployeeID,
		session.CheckIn,
		session.Notes,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return shift.Session{}, fmt.Errorf("failed to create shift session: %w", err)
	}

	return r.GetByID(ctx, session.ID)
}

// GetByID implements shift.Repository.
func (r *shiftRepository) GetByID(ctx context.Context, id string) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM shift_sessions s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	s, err := scanSession(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Session{}, shift.ErrSessionNotFound
		}
		return shift.Session{}, fmt.Errorf("failed to get shift session by ID: %w", err)
	}

	sessions := []shift.Session{s}
	if err := r.loadBreaks(ctx, sessions); err != nil {
		return shift.Session{}, err
	}

	return sessions[0], nil
}

// GetOpenSession implements shift.Repository.
func (r *shiftRepository) GetOpenSession(ctx context.Context, employeeID string) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM shift_sessions s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1
		  AND s.check_out IS NULL
		ORDER BY s.check_in DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Session{}, shift.ErrNoOpenSession
		}
		return shift.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	sessions := []shift.Session{s}
	if err := r.loadBreaks(ctx, sessions); err != nil {
		return shift.Session{}, err
	}

	return sessions[0], nil
}

// StartBreak implements shift.Repository.
func (r *shiftRepository) StartBreak(ctx context.Context, sessionID string, at time.Time) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_breaks (session_id, start_at)
		VALUES ($1, $2)
		RETURNING id
	`

	var breakID string
	if err := q.QueryRow(ctx, query, sessionID, at).Scan(&breakID); err != nil {
		return shift.Session{}, fmt.Errorf("failed to start break: %w", err)
	}

	if err := r.touch(ctx, sessionID); err != nil {
		return shift.Session{}, err
	}

	return r.GetByID(ctx, sessionID)
}

// EndBreak implements shift.Repository.
func (r *shiftRepository) EndBreak(ctx context.Context, sessionID string, at time.Time) (shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_breaks
		SET end_at = $2
		WHERE session_id = $1
		  AND end_at IS NULL
		RETURNING id
	`

	var breakID string
	if err := q.QueryRow(ctx, query, sessionID, at).Scan(&breakID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Session{}, shift.ErrNotOnBreak
		}
		return shift.Session{}, fmt.Errorf("failed to end break: %w", err)
	}

	if err := r.touch(ctx, sessionID); err != nil {
		return shift.Session{}, err
	}

	return r.GetByID(ctx, sessionID)
}

// CloseSession implements shift.Repository. The check-out and the close of any
// outstanding break commit together or not at all.
func (r *shiftRepository) CloseSession(ctx context.Context, sessionID string, at time.Time) (shift.Session, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE shift_breaks
			SET end_at = $2
			WHERE session_id = $1
			  AND end_at IS NULL
		`, sessionID, at)
		if err != nil {
			return fmt.Errorf("failed to close outstanding break: %w", err)
		}

		var closedID string
		err = tx.QueryRow(ctx, `
			UPDATE shift_sessions
			SET check_out = $2, updated_at = NOW()
			WHERE id = $1
			  AND check_out IS NULL
			RETURNING id
		`, sessionID, at).Scan(&closedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shift.ErrSessionNotFound
			}
			return fmt.Errorf("failed to close shift session: %w", err)
		}

		return nil
	})
	if err != nil {
		return shift.Session{}, err
	}

	return r.GetByID(ctx, sessionID)
}

// SetNotes implements shift.Repository.
func (r *shiftRepository) SetNotes(ctx context.Context, sessionID string, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_sessions
		SET notes = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	if err := q.QueryRow(ctx, query, sessionID, notes).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ErrSessionNotFound
		}
		return fmt.Errorf("failed to set session notes: %w", err)
	}

	return nil
}

// ListForEmployee implements shift.Repository.
func (r *shiftRepository) ListForEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]shift.Session, error) {
	return r.list(ctx, &employeeID, from, to)
}

// ListBetween implements shift.Repository.
func (r *shiftRepository) ListBetween(ctx context.Context, from, to time.Time) ([]shift.Session, error) {
	return r.list(ctx, nil, from, to)
}

func (r *shiftRepository) list(ctx context.Context, employeeID *string, from, to time.Time) ([]shift.Session, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "s.check_in >= $1 AND s.check_in < $2"
	args := []interface{}{from, to}
	if employeeID != nil {
		baseWhere += " AND s.employee_id = $3"
		args = append(args, *employeeID)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM shift_sessions s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE ` + baseWhere + `
		ORDER BY s.check_in ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift sessions: %w", err)
	}
	defer rows.Close()

	var sessions []shift.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := r.loadBreaks(ctx, sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *shiftRepository) touch(ctx context.Context, sessionID string) error {
	q := GetQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `UPDATE shift_sessions SET updated_at = NOW() WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to touch shift session: %w", err)
	}
	return nil
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepository{db: db}
}
