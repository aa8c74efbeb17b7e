package httpapi

import (
	"time"

	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

type progressView struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type taskView struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	Category    string `json:"category"`
	Department  string `json:"department"`
	Timeline    string `json:"timeline"`
}

type requestView struct {
	ID           string       `json:"id"`
	EmployeeName string       `json:"employee_name"`
	Role         string       `json:"role"`
	Department   string       `json:"department"`
	StartDate    string       `json:"start_date"`
	Type         string       `json:"type"`
	Status       string       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    string       `json:"created_at"`
	Progress     progressView `json:"progress"`
	Checklist    []taskView   `json:"checklist"`
}

type departmentView struct {
	Department string       `json:"department"`
	Editable   bool         `json:"editable"`
	Progress   progressView `json:"progress"`
	Tasks      []taskView   `json:"tasks"`
}

type detailView struct {
	ViewerRole  string           `json:"viewer_role"`
	Request     requestView      `json:"request"`
	Departments []departmentView `json:"departments"`
}

type listView struct {
	ViewerRole string        `json:"viewer_role"`
	Requests   []requestView `json:"requests"`
}

type mutationView struct {
	Outcome string       `json:"outcome"`
	Request *requestView `json:"request,omitempty"`
}

type viewerRoleView struct {
	Role string `json:"role"`
}

type createRequestBody struct {
	EmployeeName string `json:"employee_name"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	StartDate    string `json:"start_date"`
	Type         string `json:"type"`
	Notes        string `json:"notes"`
}

type saveChecklistBody struct {
	Tasks []struct {
		ID          string `json:"id"`
		IsCompleted bool   `json:"is_completed"`
	} `json:"tasks"`
}

func newProgressView(progress domain.Progress) progressView {
	return progressView{Completed: progress.Completed, Total: progress.Total, Percent: progress.Percent()}
}

func newTaskViews(tasks []domain.Task) []taskView {
	out := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskView{
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

func newRequestView(request domain.Request) requestView {
	view := requestView{
		ID:           request.ID,
		EmployeeName: request.EmployeeName,
		Role:         request.Role,
		Department:   request.Department,
		StartDate:    request.StartDate,
		Type:         string(request.Type),
		Status:       string(request.Status),
		Notes:        request.Notes,
		Progress:     newProgressView(domain.CompletionCounts(request.Checklist)),
		Checklist:    newTaskViews(request.Checklist),
	}
	if !request.CreatedAt.IsZero() {
		view.CreatedAt = request.CreatedAt.UTC().Format(time.RFC3339)
	}
	return view
}

func newDetailView(summary domain.RequestSummary, role domain.Role) detailView {
	view := detailView{
		ViewerRole:  string(role),
		Request:     newRequestView(summary.Request),
		Departments: make([]departmentView, 0, len(summary.Departments)),
	}
	for _, section := range summary.Departments {
		view.Departments = append(view.Departments, departmentView{
			Department: string(section.Department),
			Editable:   section.Editable,
			Progress:   newProgressView(section.Progress),
			Tasks:      newTaskViews(section.Tasks),
		})
	}
	return view
}
