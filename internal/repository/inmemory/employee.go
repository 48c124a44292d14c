package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shiftwise/timeclock-backend-go/internal/domain/employee"
)

// EmployeeRepository is a mutex-guarded in-memory roster. Production reads the
// roster from postgres; this implementation backs deterministic tests and
// single-node deployments without a database.
type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

// Add seeds a roster member. Not part of employee.EmployeeRepository: roster
// lifecycle is owned externally, so writes exist only for seeding.
func (r *EmployeeRepository) Add(emp employee.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if emp.CreatedAt.IsZero() {
		emp.CreatedAt = time.Now().UTC()
	}
	emp.UpdatedAt = emp.CreatedAt
	r.employees[emp.ID] = emp
}

// GetByID implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, emp := range r.employees {
		if strings.EqualFold(emp.Email, email) {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// List implements employee.EmployeeRepository.
func (r *EmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullName < result[j].FullName
	})
	return result, nil
}
