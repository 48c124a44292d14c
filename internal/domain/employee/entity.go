package employee

import (
	"time"
)

// Employee is a roster member as the engine sees it. Lifecycle is owned by an
// external HR system; this service only reads the roster. IsExempt marks
// administrators, who are never flagged absent.
type Employee struct {
	ID           string
	FullName     string
	Email        string
	IsExempt     bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
