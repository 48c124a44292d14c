package auth

import (
	"context"
	"testing"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftwise/timeclock-backend-go/internal/domain/employee"
	"github.com/shiftwise/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/timeclock-backend-go/internal/repository/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) auth.Service {
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

	return NewAuthService(roster, jwt.NewJWTService("test-secret-key", "12h"))
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "aigerim@example.com",
		Password: "hunter2secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "Aigerim Bekova", resp.EmployeeName)
	assert.Greater(t, resp.ExpiresAt, int64(0))
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "AIGERIM@example.com",
		Password: "hunter2secret",
	})
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "aigerim@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	// Indistinguishable from a wrong password.
	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_Validation(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{})
	assert.Error(t, err)
}
