package employee

import (
	"context"
)

// EmployeeRepository defines read access to the roster. The engine never
// creates or mutates roster entries.
type EmployeeRepository interface {
	// GetByID retrieves a roster member by id
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByEmail retrieves a roster member by email (login)
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// List retrieves the full roster, ordered by full name
	List(ctx context.Context) ([]Employee, error)
}
