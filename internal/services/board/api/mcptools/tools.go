package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

// ListRequestsInput represents the MCP tool input for listing requests.
type ListRequestsInput struct {
	ViewerRole string `json:"viewer_role,omitempty" jsonschema:"viewer role HR, IT or ADMIN; defaults to the selected role"`
	Type       string `json:"type,omitempty" jsonschema:"ALL, ONBOARDING or OFFBOARDING; defaults to ALL"`
	Search     string `json:"search,omitempty" jsonschema:"case-insensitive match on employee name or job title"`
}

// ListRequestsResult represents the MCP tool output for listing requests.
type ListRequestsResult struct {
	ViewerRole string          `json:"viewer_role" jsonschema:"role the list was filtered for"`
	Requests   []RequestResult `json:"requests" jsonschema:"visible requests, newest first"`
}

// GetRequestInput represents the MCP tool input for one request.
type GetRequestInput struct {
	RequestID  string `json:"request_id" jsonschema:"request identifier"`
	ViewerRole string `json:"viewer_role,omitempty" jsonschema:"viewer role HR, IT or ADMIN; defaults to the selected role"`
}

// CreateRequestInput represents the MCP tool input for starting a process.
type CreateRequestInput struct {
	EmployeeName string `json:"employee_name" jsonschema:"employee full name"`
	Role         string `json:"role" jsonschema:"employee job title"`
	Department   string `json:"department" jsonschema:"employee's organizational department"`
	StartDate    string `json:"start_date" jsonschema:"YYYY-MM-DD start date, or last working day for offboarding"`
	Type         string `json:"type" jsonschema:"ONBOARDING or OFFBOARDING"`
	Notes        string `json:"notes,omitempty" jsonschema:"free-form notes passed to checklist generation"`
	ViewerRole   string `json:"viewer_role,omitempty" jsonschema:"viewer role; only HR may create requests"`
}

// ToggleTaskInput represents the MCP tool input for flipping one task.
type ToggleTaskInput struct {
	RequestID  string `json:"request_id" jsonschema:"request identifier"`
	TaskID     string `json:"task_id" jsonschema:"task identifier"`
	ViewerRole string `json:"viewer_role,omitempty" jsonschema:"viewer role HR, IT or ADMIN; defaults to the selected role"`
}

// TaskCompletion is one edited task in a checklist save.
type TaskCompletion struct {
	ID          string `json:"id" jsonschema:"task identifier"`
	IsCompleted bool   `json:"is_completed" jsonschema:"desired completion state"`
}

// SaveChecklistInput represents the MCP tool input for a bulk checklist save.
type SaveChecklistInput struct {
	RequestID  string           `json:"request_id" jsonschema:"request identifier"`
	Tasks      []TaskCompletion `json:"tasks" jsonschema:"desired completion per task; unknown ids are ignored"`
	ViewerRole string           `json:"viewer_role,omitempty" jsonschema:"viewer role HR, IT or ADMIN; defaults to the selected role"`
}

// MutationResult represents the MCP tool output for task mutations.
type MutationResult struct {
	Outcome string         `json:"outcome" jsonschema:"APPLIED, UNCHANGED, REQUEST_NOT_FOUND, TASK_NOT_FOUND or PERMISSION_DENIED"`
	Request *RequestResult `json:"request,omitempty" jsonschema:"request after the mutation when it exists"`
}

// SetViewerRoleInput represents the MCP tool input for selecting a role.
type SetViewerRoleInput struct {
	Role string `json:"role" jsonschema:"HR, IT or ADMIN"`
}

// ViewerRoleResult represents the selected role.
type ViewerRoleResult struct {
	Role string `json:"role" jsonschema:"selected viewer role"`
}

// ListRequestsTool defines the MCP tool schema for listing requests.
func ListRequestsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_list_requests",
		Description: "List onboarding and offboarding requests visible to a viewer role, optionally filtered by type and search text",
	}
}

// GetRequestTool defines the MCP tool schema for reading one request.
func GetRequestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_get_request",
		Description: "Get one request with the department checklist sections the viewer role may see",
	}
}

// CreateRequestTool defines the MCP tool schema for starting a process.
func CreateRequestTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_create_request",
		Description: "Initiate an onboarding or offboarding process; a cross-department checklist is generated automatically (HR only)",
	}
}

// ToggleTaskTool defines the MCP tool schema for flipping a task.
func ToggleTaskTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_toggle_task",
		Description: "Flip one checklist task between done and not done; roles may only change their own department's tasks",
	}
}

// SaveChecklistTool defines the MCP tool schema for a bulk save.
func SaveChecklistTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_save_checklist",
		Description: "Set the completion state of several tasks of one request at once",
	}
}

// SetViewerRoleTool defines the MCP tool schema for selecting the viewer role.
func SetViewerRoleTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "board_set_viewer_role",
		Description: "Select the viewer role used when calls omit viewer_role",
	}
}

// resolveRole parses an explicit role or falls back to the selected one.
func resolveRole(service Service, raw string) (domain.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return service.ViewerRole(), nil
	}
	return domain.ParseRole(raw)
}

// ListRequestsHandler lists visible requests.
func ListRequestsHandler(service Service) mcp.ToolHandlerFor[ListRequestsInput, ListRequestsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListRequestsInput) (*mcp.CallToolResult, ListRequestsResult, error) {
		role, err := resolveRole(service, input.ViewerRole)
		if err != nil {
			return nil, ListRequestsResult{}, err
		}
		typeFilter, err := domain.ParseTypeFilter(input.Type)
		if err != nil {
			return nil, ListRequestsResult{}, err
		}
		requests, err := service.ListVisibleRequests(ctx, domain.Query{Role: role, Type: typeFilter, Search: input.Search})
		if err != nil {
			return nil, ListRequestsResult{}, fmt.Errorf("list requests: %w", err)
		}
		result := ListRequestsResult{ViewerRole: string(role), Requests: make([]RequestResult, 0, len(requests))}
		for _, request := range requests {
			result.Requests = append(result.Requests, requestResult(request))
		}
		return nil, result, nil
	}
}

// GetRequestHandler reads one request.
func GetRequestHandler(service Service) mcp.ToolHandlerFor[GetRequestInput, RequestDetailResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetRequestInput) (*mcp.CallToolResult, RequestDetailResult, error) {
		role, err := resolveRole(service, input.ViewerRole)
		if err != nil {
			return nil, RequestDetailResult{}, err
		}
		summary, err := service.GetRequest(ctx, strings.TrimSpace(input.RequestID), role)
		if err != nil {
			return nil, RequestDetailResult{}, fmt.Errorf("get request: %w", err)
		}
		return nil, detailResult(summary, role), nil
	}
}

// CreateRequestHandler starts a new process.
func CreateRequestHandler(service Service) mcp.ToolHandlerFor[CreateRequestInput, RequestDetailResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateRequestInput) (*mcp.CallToolResult, RequestDetailResult, error) {
		role, err := resolveRole(service, input.ViewerRole)
		if err != nil {
			return nil, RequestDetailResult{}, err
		}
		if role != domain.DepartmentHR {
			return nil, RequestDetailResult{}, apperrors.New(apperrors.CodeCreateRequiresHR, "only HR can initiate a process")
		}
		processType, err := domain.ParseProcessType(input.Type)
		if err != nil {
			return nil, RequestDetailResult{}, err
		}
		created, err := service.CreateRequest(ctx, domain.CreateRequestInput{
			EmployeeName: input.EmployeeName,
			Role:         input.Role,
			Department:   input.Department,
			StartDate:    input.StartDate,
			Type:         processType,
			Notes:        input.Notes,
		})
		if err != nil {
			return nil, RequestDetailResult{}, fmt.Errorf("create request: %w", err)
		}
		return nil, detailResult(domain.Summarize(created, role), role), nil
	}
}

// ToggleTaskHandler flips one task. Refusals are reported through the
// outcome, not as tool errors.
func ToggleTaskHandler(service Service) mcp.ToolHandlerFor[ToggleTaskInput, MutationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ToggleTaskInput) (*mcp.CallToolResult, MutationResult, error) {
		role, err := resolveRole(service, input.ViewerRole)
		if err != nil {
			return nil, MutationResult{}, err
		}
		updated, outcome, err := service.ToggleTask(ctx, strings.TrimSpace(input.RequestID), strings.TrimSpace(input.TaskID), role)
		if err != nil {
			return nil, MutationResult{}, fmt.Errorf("toggle task: %w", err)
		}
		return nil, mutationResult(updated, outcome), nil
	}
}

// SaveChecklistHandler applies a bulk completion edit.
func SaveChecklistHandler(service Service) mcp.ToolHandlerFor[SaveChecklistInput, MutationResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SaveChecklistInput) (*mcp.CallToolResult, MutationResult, error) {
		role, err := resolveRole(service, input.ViewerRole)
		if err != nil {
			return nil, MutationResult{}, err
		}
		edited := make([]domain.Task, 0, len(input.Tasks))
		for _, task := range input.Tasks {
			edited = append(edited, domain.Task{ID: strings.TrimSpace(task.ID), IsCompleted: task.IsCompleted})
		}
		updated, outcome, err := service.SaveChecklist(ctx, strings.TrimSpace(input.RequestID), edited, role)
		if err != nil {
			return nil, MutationResult{}, fmt.Errorf("save checklist: %w", err)
		}
		return nil, mutationResult(updated, outcome), nil
	}
}

// SetViewerRoleHandler selects the viewer role.
func SetViewerRoleHandler(service Service) mcp.ToolHandlerFor[SetViewerRoleInput, ViewerRoleResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SetViewerRoleInput) (*mcp.CallToolResult, ViewerRoleResult, error) {
		role, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, ViewerRoleResult{}, err
		}
		if err := service.SetViewerRole(role); err != nil {
			return nil, ViewerRoleResult{}, err
		}
		return nil, ViewerRoleResult{Role: string(role)}, nil
	}
}

func mutationResult(updated domain.Request, outcome domain.MutationOutcome) MutationResult {
	result := MutationResult{Outcome: string(outcome)}
	if outcome == domain.OutcomeApplied || outcome == domain.OutcomeUnchanged {
		request := requestResult(updated)
		result.Request = &request
	}
	return result
}
