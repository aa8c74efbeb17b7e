package mcptools

import (
	"time"

	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

// ProgressResult is a completed/total count.
type ProgressResult struct {
	Completed int `json:"completed" jsonschema:"completed task count"`
	Total     int `json:"total" jsonschema:"total task count"`
	Percent   int `json:"percent" jsonschema:"rounded completion percentage"`
}

// TaskResult is one checklist task.
type TaskResult struct {
	ID          string `json:"id" jsonschema:"task identifier"`
	Description string `json:"description" jsonschema:"what needs to be done"`
	IsCompleted bool   `json:"is_completed" jsonschema:"whether the task is done"`
	Category    string `json:"category" jsonschema:"task category such as Hardware or Legal"`
	Department  string `json:"department" jsonschema:"owning department: HR, IT or ADMIN"`
	Timeline    string `json:"timeline" jsonschema:"timing relative to the start date, e.g. Day -7"`
}

// RequestResult is one onboarding or offboarding request.
type RequestResult struct {
	ID           string         `json:"id" jsonschema:"request identifier"`
	EmployeeName string         `json:"employee_name" jsonschema:"employee full name"`
	Role         string         `json:"role" jsonschema:"employee job title"`
	Department   string         `json:"department" jsonschema:"employee's organizational department"`
	StartDate    string         `json:"start_date" jsonschema:"YYYY-MM-DD start date, or last working day for offboarding"`
	Type         string         `json:"type" jsonschema:"ONBOARDING or OFFBOARDING"`
	Status       string         `json:"status" jsonschema:"PENDING, IN_PROGRESS or COMPLETED"`
	Notes        string         `json:"notes,omitempty" jsonschema:"free-form notes"`
	CreatedAt    string         `json:"created_at,omitempty" jsonschema:"RFC3339 creation time"`
	Progress     ProgressResult `json:"progress" jsonschema:"overall checklist progress"`
	Checklist    []TaskResult   `json:"checklist" jsonschema:"all checklist tasks"`
}

// DepartmentResult is the slice of a checklist one department owns.
type DepartmentResult struct {
	Department string         `json:"department" jsonschema:"HR, IT or ADMIN"`
	Editable   bool           `json:"editable" jsonschema:"whether the viewer may change these tasks"`
	Progress   ProgressResult `json:"progress" jsonschema:"department progress"`
	Tasks      []TaskResult   `json:"tasks" jsonschema:"department tasks in checklist order"`
}

// RequestDetailResult is a request as seen by one viewer role.
type RequestDetailResult struct {
	ViewerRole  string             `json:"viewer_role" jsonschema:"role the request was rendered for"`
	Request     RequestResult      `json:"request" jsonschema:"the request"`
	Departments []DepartmentResult `json:"departments" jsonschema:"department sections visible to the viewer"`
}

func progressResult(progress domain.Progress) ProgressResult {
	return ProgressResult{Completed: progress.Completed, Total: progress.Total, Percent: progress.Percent()}
}

func taskResults(tasks []domain.Task) []TaskResult {
	out := make([]TaskResult, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, TaskResult{
			ID:          task.ID,
			Description: task.Description,
			IsCompleted: task.IsCompleted,
			Category:    task.Category,
			Department:  string(task.Department),
			Timeline:    task.Timeline,
		})
	}
	return out
}

func requestResult(request domain.Request) RequestResult {
	result := RequestResult{
		ID:           request.ID,
		EmployeeName: request.EmployeeName,
		Role:         request.Role,
		Department:   request.Department,
		StartDate:    request.StartDate,
		Type:         string(request.Type),
		Status:       string(request.Status),
		Notes:        request.Notes,
		Progress:     progressResult(domain.CompletionCounts(request.Checklist)),
		Checklist:    taskResults(request.Checklist),
	}
	if !request.CreatedAt.IsZero() {
		result.CreatedAt = request.CreatedAt.UTC().Format(time.RFC3339)
	}
	return result
}

func detailResult(summary domain.RequestSummary, role domain.Role) RequestDetailResult {
	result := RequestDetailResult{
		ViewerRole:  string(role),
		Request:     requestResult(summary.Request),
		Departments: make([]DepartmentResult, 0, len(summary.Departments)),
	}
	for _, section := range summary.Departments {
		result.Departments = append(result.Departments, DepartmentResult{
			Department: string(section.Department),
			Editable:   section.Editable,
			Progress:   progressResult(section.Progress),
			Tasks:      taskResults(section.Tasks),
		})
	}
	return result
}
