package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, minute int) time.Time {
	return time.Date(2025, 3, 19, hour, minute, 0, 0, time.UTC)
}

func tsPtr(hour, minute int) *time.Time {
	t := ts(hour, minute)
	return &t
}

func TestSessionStatus(t *testing.T) {
	t.Parallel()

	open := Session{EmployeeID: "emp-1", CheckIn: ts(9, 0)}
	assert.Equal(t, StatusActive, open.Status())

	onBreak := Session{
		EmployeeID: "emp-1",
		CheckIn:    ts(9, 0),
		Breaks:     []Break{{StartAt: ts(12, 0)}},
	}
	assert.Equal(t, StatusOnBreak, onBreak.Status())
	require.NotNil(t, onBreak.OpenBreak())
	assert.Equal(t, ts(12, 0), onBreak.OpenBreak().StartAt)

	afterBreak := Session{
		EmployeeID: "emp-1",
		CheckIn:    ts(9, 0),
		Breaks:     []Break{{StartAt: ts(12, 0), EndAt: tsPtr(13, 0)}},
	}
	assert.Equal(t, StatusActive, afterBreak.Status())
	assert.Nil(t, afterBreak.OpenBreak())

	completed := Session{
		EmployeeID: "emp-1",
		CheckIn:    ts(9, 0),
		CheckOut:   tsPtr(17, 0),
	}
	assert.Equal(t, StatusCompleted, completed.Status())
}

func TestSessionDuration(t *testing.T) {
	t.Parallel()

	closed := Session{
		CheckIn:  ts(9, 0),
		CheckOut: tsPtr(17, 0),
		Breaks:   []Break{{StartAt: ts(12, 0), EndAt: tsPtr(13, 0)}},
	}
	// Breaks are paid: the hour-long break does not reduce the total.
	assert.Equal(t, 8*time.Hour, closed.Duration(ts(23, 0)))
	assert.Equal(t, time.Hour, closed.BreakDuration())

	open := Session{CheckIn: ts(9, 0)}
	assert.Equal(t, 2*time.Hour, open.Duration(ts(11, 0)))
	assert.Equal(t, 3*time.Hour, open.Duration(ts(12, 0)))
}

func TestSessionBreakDuration_SkipsOpenBreak(t *testing.T) {
	t.Parallel()

	s := Session{
		CheckIn: ts(9, 0),
		Breaks: []Break{
			{StartAt: ts(10, 0), EndAt: tsPtr(10, 30)},
			{StartAt: ts(12, 0)}, // still running
		},
	}
	assert.Equal(t, 30*time.Minute, s.BreakDuration())
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name:    "valid open session",
			session: Session{EmployeeID: "emp-1", CheckIn: ts(9, 0)},
		},
		{
			name: "valid completed session with break",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(9, 0),
				CheckOut:   tsPtr(17, 0),
				Breaks:     []Break{{StartAt: ts(12, 0), EndAt: tsPtr(13, 0)}},
			},
		},
		{
			name:    "missing employee",
			session: Session{CheckIn: ts(9, 0)},
			wantErr: true,
		},
		{
			name:    "missing check-in",
			session: Session{EmployeeID: "emp-1"},
			wantErr: true,
		},
		{
			name: "check-out before check-in",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(17, 0),
				CheckOut:   tsPtr(9, 0),
			},
			wantErr: true,
		},
		{
			name: "check-out equal to check-in",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(9, 0),
				CheckOut:   tsPtr(9, 0),
			},
			wantErr: true,
		},
		{
			name: "break end before start",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(9, 0),
				Breaks:     []Break{{StartAt: ts(13, 0), EndAt: tsPtr(12, 0)}},
			},
			wantErr: true,
		},
		{
			name: "overlapping breaks",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(9, 0),
				Breaks: []Break{
					{StartAt: ts(12, 0), EndAt: tsPtr(13, 0)},
					{StartAt: ts(12, 30), EndAt: tsPtr(14, 0)},
				},
			},
			wantErr: true,
		},
		{
			name: "two open breaks",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(9, 0),
				Breaks: []Break{
					{StartAt: ts(12, 0)},
					{StartAt: ts(13, 0)},
				},
			},
			wantErr: true,
		},
		{
			name: "completed with open break",
			session: Session{
				EmployeeID: "emp-1",
				CheckIn:    ts(9, 0),
				CheckOut:   tsPtr(17, 0),
				Breaks:     []Break{{StartAt: ts(12, 0)}},
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.session.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
