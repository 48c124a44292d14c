package auth

import (
	"context"
)

// Service authenticates roster members and issues the access tokens the shift
// API expects.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
