// Package mcptools exposes the board as Model Context Protocol tools.
package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

const (
	serverName    = "personnel-board"
	serverVersion = "0.1.0"
)

// Service is the board behavior the MCP tools depend on.
type Service interface {
	ListVisibleRequests(ctx context.Context, query domain.Query) ([]domain.Request, error)
	GetRequest(ctx context.Context, requestID string, role domain.Role) (domain.RequestSummary, error)
	CreateRequest(ctx context.Context, input domain.CreateRequestInput) (domain.Request, error)
	ToggleTask(ctx context.Context, requestID, taskID string, role domain.Role) (domain.Request, domain.MutationOutcome, error)
	SaveChecklist(ctx context.Context, requestID string, edited []domain.Task, role domain.Role) (domain.Request, domain.MutationOutcome, error)
	ViewerRole() domain.Role
	SetViewerRole(role domain.Role) error
}

// NewServer builds an MCP server with every board tool registered.
func NewServer(service Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, ListRequestsTool(), ListRequestsHandler(service))
	mcp.AddTool(server, GetRequestTool(), GetRequestHandler(service))
	mcp.AddTool(server, CreateRequestTool(), CreateRequestHandler(service))
	mcp.AddTool(server, ToggleTaskTool(), ToggleTaskHandler(service))
	mcp.AddTool(server, SaveChecklistTool(), SaveChecklistHandler(service))
	mcp.AddTool(server, SetViewerRoleTool(), SetViewerRoleHandler(service))
	return server
}

// NewHTTPHandler serves server over the streamable HTTP transport.
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}
