package domain

import (
	"strings"
	"time"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
)

// Department owns tasks. The same values double as viewer roles.
type Department string

const (
	DepartmentHR    Department = "HR"
	DepartmentIT    Department = "IT"
	DepartmentAdmin Department = "ADMIN"
)

// Role is the department lens a viewer observes the board through. HR is the
// superuser role.
type Role = Department

// Departments lists every department in display order.
var Departments = [...]Department{DepartmentHR, DepartmentIT, DepartmentAdmin}

// Valid reports whether d is one of the known departments.
func (d Department) Valid() bool {
	switch d {
	case DepartmentHR, DepartmentIT, DepartmentAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes raw (case-insensitive, trimmed) into a Role.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", apperrors.WithMetadata(apperrors.CodeRoleInvalid, "role must be one of HR, IT, ADMIN", map[string]string{"role": raw})
	}
	return role, nil
}

// ProcessType selects the lifecycle a request follows.
type ProcessType string

const (
	ProcessOnboarding  ProcessType = "ONBOARDING"
	ProcessOffboarding ProcessType = "OFFBOARDING"
)

// Valid reports whether p is a known process type.
func (p ProcessType) Valid() bool {
	return p == ProcessOnboarding || p == ProcessOffboarding
}

// ParseProcessType normalizes raw into a ProcessType.
func ParseProcessType(raw string) (ProcessType, error) {
	p := ProcessType(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", apperrors.WithMetadata(apperrors.CodeRequestInvalidType, "type must be ONBOARDING or OFFBOARDING", map[string]string{"type": raw})
	}
	return p, nil
}

// Status is the aggregate state of a request, derived from its checklist.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// TypeFilter narrows listings by process type. TypeAll matches everything.
type TypeFilter string

// TypeAll disables the process type filter.
const TypeAll TypeFilter = "ALL"

// ParseTypeFilter accepts ALL, a process type, or blank (treated as ALL).
func ParseTypeFilter(raw string) (TypeFilter, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" || value == string(TypeAll) {
		return TypeAll, nil
	}
	if !ProcessType(value).Valid() {
		return "", apperrors.WithMetadata(apperrors.CodeTypeFilterInvalid, "type filter must be ALL, ONBOARDING or OFFBOARDING", map[string]string{"type": raw})
	}
	return TypeFilter(value), nil
}

// Matches reports whether p passes the filter.
func (f TypeFilter) Matches(p ProcessType) bool {
	return f == "" || f == TypeAll || ProcessType(f) == p
}

// Task is one checklist item owned by a department.
type Task struct {
	ID          string
	Description string
	IsCompleted bool
	Category    string
	Department  Department
	Timeline    string
}

// Request tracks one employee's onboarding or offboarding.
type Request struct {
	ID           string
	EmployeeName string
	Role         string
	Department   string
	// StartDate is YYYY-MM-DD; for offboarding it is the last working day.
	StartDate string
	Type      ProcessType
	Status    Status
	Notes     string
	Checklist []Task
	CreatedAt time.Time
}

// Clone returns a deep copy so callers never share checklist storage.
func (r Request) Clone() Request {
	out := r
	if r.Checklist != nil {
		out.Checklist = make([]Task, len(r.Checklist))
		copy(out.Checklist, r.Checklist)
	}
	return out
}

// taskIndex returns the checklist position of taskID, or -1.
func (r Request) taskIndex(taskID string) int {
	for i, task := range r.Checklist {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}
