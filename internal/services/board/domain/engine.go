package domain

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Query selects what a viewer sees on the board.
type Query struct {
	Role   Role
	Type   TypeFilter
	Search string
}

// FilterForRole returns the requests visible to role. HR sees everything;
// other roles see only requests holding at least one task for their
// department, whatever its completion state. Order is preserved and the input
// is not modified.
func FilterForRole(requests []Request, role Role) []Request {
	if role == DepartmentHR {
		out := make([]Request, len(requests))
		copy(out, requests)
		return out
	}
	out := make([]Request, 0, len(requests))
	for _, request := range requests {
		if hasDepartmentTask(request.Checklist, role) {
			out = append(out, request)
		}
	}
	return out
}

func hasDepartmentTask(checklist []Task, department Department) bool {
	for _, task := range checklist {
		if task.Department == department {
			return true
		}
	}
	return false
}

// FilterByTypeAndSearch keeps requests matching typeFilter whose employee
// name or role contains search, compared with Unicode case folding. The term
// is used as given, surrounding spaces included; an empty search matches
// everything.
func FilterByTypeAndSearch(requests []Request, typeFilter TypeFilter, search string) []Request {
	fold := cases.Fold()
	needle := fold.String(search)
	out := make([]Request, 0, len(requests))
	for _, request := range requests {
		if !typeFilter.Matches(request.Type) {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(request.EmployeeName), needle) &&
			!strings.Contains(fold.String(request.Role), needle) {
			continue
		}
		out = append(out, request)
	}
	return out
}

// VisibleRequests applies the role filter and the type/search filters together.
func VisibleRequests(requests []Request, query Query) []Request {
	return FilterByTypeAndSearch(FilterForRole(requests, query.Role), query.Type, query.Search)
}

// DepartmentGroup is the slice of a checklist owned by one department.
type DepartmentGroup struct {
	Department Department
	Tasks      []Task
}

// DepartmentGroups always holds HR, IT and ADMIN in that order.
type DepartmentGroups [len(Departments)]DepartmentGroup

// Get returns the group for department.
func (g DepartmentGroups) Get(department Department) DepartmentGroup {
	for _, group := range g {
		if group.Department == department {
			return group
		}
	}
	return DepartmentGroup{Department: department}
}

// GroupByDepartment partitions checklist by owning department, preserving
// checklist order within each group. Departments without tasks yield an
// empty group.
func GroupByDepartment(checklist []Task) DepartmentGroups {
	var groups DepartmentGroups
	for i, department := range Departments {
		groups[i] = DepartmentGroup{Department: department, Tasks: []Task{}}
	}
	for _, task := range checklist {
		for i := range groups {
			if groups[i].Department == task.Department {
				groups[i].Tasks = append(groups[i].Tasks, task)
				break
			}
		}
	}
	return groups
}

// Progress counts completed tasks against the total.
type Progress struct {
	Completed int
	Total     int
}

// Percent is the rounded completion percentage; 0 for an empty set.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
}

// CompletionCounts tallies tasks.
func CompletionCounts(tasks []Task) Progress {
	progress := Progress{Total: len(tasks)}
	for _, task := range tasks {
		if task.IsCompleted {
			progress.Completed++
		}
	}
	return progress
}

// DeriveStatus is the only source of a request's status: COMPLETED when every
// task is done, PENDING when none is (including an empty checklist),
// IN_PROGRESS otherwise.
func DeriveStatus(checklist []Task) Status {
	progress := CompletionCounts(checklist)
	switch {
	case progress.Completed == 0:
		return StatusPending
	case progress.Completed == progress.Total:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// CanModify reports whether role may change a task owned by taskDepartment.
func CanModify(role Role, taskDepartment Department) bool {
	return role == DepartmentHR || role == taskDepartment
}

// VisibleDepartments lists the department sections role may inspect on a
// request: all of them for HR, otherwise only its own.
func VisibleDepartments(role Role) []Department {
	if role == DepartmentHR {
		return append([]Department(nil), Departments[:]...)
	}
	if !role.Valid() {
		return nil
	}
	return []Department{role}
}

// DepartmentSummary is the per-department read model of a request.
type DepartmentSummary struct {
	Department Department
	Tasks      []Task
	Progress   Progress
	Editable   bool
}

// RequestSummary is a request as presented to one viewer.
type RequestSummary struct {
	Request     Request
	Progress    Progress
	Departments []DepartmentSummary
}

// Summarize builds the view of request for role. Overall progress spans the
// whole checklist; department sections are limited to VisibleDepartments and
// omit departments without tasks.
func Summarize(request Request, role Role) RequestSummary {
	groups := GroupByDepartment(request.Checklist)
	summary := RequestSummary{
		Request:  request.Clone(),
		Progress: CompletionCounts(request.Checklist),
	}
	for _, department := range VisibleDepartments(role) {
		group := groups.Get(department)
		if len(group.Tasks) == 0 {
			continue
		}
		summary.Departments = append(summary.Departments, DepartmentSummary{
			Department: department,
			Tasks:      group.Tasks,
			Progress:   CompletionCounts(group.Tasks),
			Editable:   CanModify(role, department),
		})
	}
	return summary
}
