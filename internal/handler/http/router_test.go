package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/localtime"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/inmemory"
	authService "github.com/shiftwise/timeclock-backend-go/internal/service/auth"
	shiftService "github.com/shiftwise/timeclock-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	server *httptest.Server
	clk    *clock.Fixed
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2secret"), bcrypt.MinCost)
	require.NoError(t, err)

	roster := inmemory.NewEmployeeRepository()
	roster.Add(employee.Employee{
		ID:           "emp-1",
		FullName:     "Aigerim Bekova",
		Email:        "aigerim@example.com",
		PasswordHash: string(hash),
	})
	roster.Add(employee.Employee{ID: "emp-2", FullName: "Bolat Nurlanov", Email: "bolat@example.com"})

	shiftRepo := inmemory.NewShiftRepository(roster)
	clk := clock.NewFixed(time.Date(2025, 3, 19, 4, 0, 0, 0, time.UTC))
	normalizer := localtime.NewNormalizer(5*60, time.Monday)

	JWTService := jwt.NewJWTService("test-secret-key", "12h")
	authSvc := authService.NewAuthService(roster, JWTService)
	shiftSvc := shiftService.NewShiftService(shiftRepo, roster, clk, normalizer)

	router := NewRouter(JWTService, NewAuthHandler(authSvc), NewShiftHandler(shiftSvc), "test")
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{server: srv, clk: clk}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	resp, env := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "aigerim@example.com",
		"password": "hunter2secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "aigerim@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	// Unknown email reads identically to a wrong password.
	resp2, _ := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestShiftEndpoints_RequireAuth(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, _ := ts.server.Client().Get(ts.server.URL + "/api/v1/shifts/status")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestClockInFlow(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	token := ts.login(t)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/shifts/actions", token, map[string]string{
		"action": "CLOCK_IN",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var session struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employee_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, "emp-1", session.EmployeeID) // from the token, not the body
	assert.Equal(t, "ACTIVE", session.Status)

	// Second clock-in conflicts.
	resp, env = ts.do(t, http.MethodPost, "/api/v1/shifts/actions", token, map[string]string{
		"action": "CLOCK_IN",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	// Status reflects the open session.
	resp, env = ts.do(t, http.MethodGet, "/api/v1/shifts/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		State string `json:"state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "ACTIVE", status.State)
}

func TestRecordAction_UnknownAction(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	token := ts.login(t)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/shifts/actions", token, map[string]string{
		"action": "NAP",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "action")
}

func TestDayView(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	token := ts.login(t)

	_, _ = ts.do(t, http.MethodPost, "/api/v1/shifts/actions", token, map[string]string{
		"action": "CLOCK_IN",
	})

	resp, env := ts.do(t, http.MethodGet, "/api/v1/shifts/report/day?year=2025&month=3&day=19", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view struct {
		Day     string `json:"day"`
		Entries []struct {
			Type string `json:"type"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "2025-03-19", view.Day)
	// One session (emp-1) plus one absence (emp-2).
	require.Len(t, view.Entries, 2)
	assert.Equal(t, "session", view.Entries[0].Type)
	assert.Equal(t, "absence", view.Entries[1].Type)
}

func TestDayView_ImpossibleDate(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	token := ts.login(t)

	// February 30th passes the per-component range checks but is not a real
	// calendar day; it must come back as a validation failure, not a 500.
	resp, env := ts.do(t, http.MethodGet, "/api/v1/shifts/report/day?year=2025&month=2&day=30", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "day")
}

func TestDayView_MissingQueryParams(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	token := ts.login(t)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/shifts/report/day?month=3&day=19", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestPeriodTotals(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	token := ts.login(t)

	_, _ = ts.do(t, http.MethodPost, "/api/v1/shifts/actions", token, map[string]string{
		"action": "CLOCK_IN",
	})
	ts.clk.Advance(2 * time.Hour)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/shifts/totals", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var totals struct {
		Today struct {
			Hours    string `json:"hours"`
			Sessions int    `json:"sessions"`
		} `json:"today"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &totals))
	assert.Equal(t, "2.0", totals.Today.Hours)
	assert.Equal(t, 1, totals.Today.Sessions)
}
