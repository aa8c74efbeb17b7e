package mcptools

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
	"github.com/louisbranch/personnel.board/internal/services/board/checklist"
	"github.com/louisbranch/personnel.board/internal/services/board/domain"
	"github.com/louisbranch/personnel.board/internal/services/board/seed"
	"github.com/louisbranch/personnel.board/internal/services/board/storage/memory"
)

func newTestService(t *testing.T) *domain.Service {
	t.Helper()
	requests, err := seed.Demo()
	if err != nil {
		t.Fatalf("demo seed: %v", err)
	}
	store, err := memory.NewStore(requests)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	generator := checklist.NewGenerator(checklist.Config{Logf: func(string, ...any) {}})
	return domain.NewService(store, generator, nil, nil)
}

func TestListRequestsHandler(t *testing.T) {
	t.Parallel()

	handler := ListRequestsHandler(newTestService(t))

	t.Run("search", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, ListRequestsInput{ViewerRole: "HR", Search: "chen"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Requests) != 1 || result.Requests[0].EmployeeName != "Alice Chen" {
			t.Fatalf("requests = %+v", result.Requests)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, ListRequestsInput{Search: "zzz"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Requests == nil || len(result.Requests) != 0 {
			t.Fatalf("requests = %#v, want empty list", result.Requests)
		}
		if result.ViewerRole != "HR" {
			t.Fatalf("viewer role = %q, want HR", result.ViewerRole)
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		_, _, err := handler(context.Background(), nil, ListRequestsInput{Type: "TRANSFER"})
		if got := apperrors.CodeOf(err); got != apperrors.CodeTypeFilterInvalid {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeTypeFilterInvalid)
		}
	})
}

func TestGetRequestHandler(t *testing.T) {
	t.Parallel()

	handler := GetRequestHandler(newTestService(t))
	_, result, err := handler(context.Background(), nil, GetRequestInput{RequestID: "2", ViewerRole: "IT"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Departments) != 1 || result.Departments[0].Department != "IT" || !result.Departments[0].Editable {
		t.Fatalf("departments = %+v", result.Departments)
	}
	if result.Request.Progress.Total != 4 {
		t.Fatalf("progress = %+v", result.Request.Progress)
	}

	if _, _, err := handler(context.Background(), nil, GetRequestInput{RequestID: "missing"}); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestCreateRequestHandler(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	handler := CreateRequestHandler(svc)

	t.Run("requires hr", func(t *testing.T) {
		_, _, err := handler(context.Background(), nil, CreateRequestInput{ViewerRole: "ADMIN"})
		if got := apperrors.CodeOf(err); got != apperrors.CodeCreateRequiresHR {
			t.Fatalf("code = %s, want %s", got, apperrors.CodeCreateRequiresHR)
		}
	})

	t.Run("creates onboarding with fallback", func(t *testing.T) {
		_, result, err := handler(context.Background(), nil, CreateRequestInput{
			EmployeeName: "Jordan Lee",
			Role:         "Designer",
			Department:   "Product",
			StartDate:    "2026-02-01",
			Type:         "ONBOARDING",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Request.Status != "PENDING" || len(result.Request.Checklist) != 6 {
			t.Fatalf("request = %+v", result.Request)
		}
		if len(result.Departments) != 3 {
			t.Fatalf("departments = %d, want 3 for HR", len(result.Departments))
		}
	})
}

func TestToggleTaskHandler(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	handler := ToggleTaskHandler(svc)

	_, denied, err := handler(context.Background(), nil, ToggleTaskInput{RequestID: "1", TaskID: "t1", ViewerRole: "ADMIN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if denied.Outcome != string(domain.OutcomePermissionDenied) || denied.Request != nil {
		t.Fatalf("denied = %+v", denied)
	}

	_, applied, err := handler(context.Background(), nil, ToggleTaskInput{RequestID: "1", TaskID: "t5", ViewerRole: "ADMIN"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied.Outcome != string(domain.OutcomeApplied) || applied.Request == nil || applied.Request.Progress.Percent != 80 {
		t.Fatalf("applied = %+v", applied)
	}

	_, missing, err := handler(context.Background(), nil, ToggleTaskInput{RequestID: "9", TaskID: "t5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing.Outcome != string(domain.OutcomeRequestNotFound) {
		t.Fatalf("missing outcome = %s", missing.Outcome)
	}
}

func TestSaveChecklistHandler(t *testing.T) {
	t.Parallel()

	handler := SaveChecklistHandler(newTestService(t))
	_, result, err := handler(context.Background(), nil, SaveChecklistInput{
		RequestID: "2",
		Tasks: []TaskCompletion{
			{ID: "t6", IsCompleted: true},
			{ID: "t7", IsCompleted: true},
			{ID: "t8", IsCompleted: true},
			{ID: "t9", IsCompleted: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != string(domain.OutcomeApplied) || result.Request.Status != "COMPLETED" {
		t.Fatalf("result = %+v", result)
	}
}

func TestSetViewerRoleHandler(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	handler := SetViewerRoleHandler(svc)
	if _, _, err := handler(context.Background(), nil, SetViewerRoleInput{Role: "nobody"}); err == nil {
		t.Fatal("expected invalid role error")
	}
	_, result, err := handler(context.Background(), nil, SetViewerRoleInput{Role: "it"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Role != "IT" || svc.ViewerRole() != domain.DepartmentIT {
		t.Fatalf("role = %q, service = %s", result.Role, svc.ViewerRole())
	}
}

func TestServerRegistersToolsOverSession(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	server := NewServer(newTestService(t))
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("connect server: %v", err)
	}
	defer serverSession.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{
		"board_create_request",
		"board_get_request",
		"board_list_requests",
		"board_save_checklist",
		"board_set_viewer_role",
		"board_toggle_task",
	}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tools = %v, want %v", names, want)
		}
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "board_list_requests",
		Arguments: map[string]any{"type": "OFFBOARDING"},
	})
	if err != nil {
		t.Fatalf("call board_list_requests: %v", err)
	}
	if result.IsError {
		t.Fatalf("board_list_requests failed: %+v", result)
	}
	data, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var listed ListRequestsResult
	if err := json.Unmarshal(data, &listed); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	if len(listed.Requests) != 1 || listed.Requests[0].EmployeeName != "Marcus Johnson" {
		t.Fatalf("requests = %+v", listed.Requests)
	}
}
