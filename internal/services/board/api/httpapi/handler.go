// Package httpapi exposes the board over a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
	"github.com/louisbranch/personnel.board/internal/platform/httpx"
	"github.com/louisbranch/personnel.board/internal/platform/requestctx"
	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

// ViewerRoleHeader overrides the selected viewer role for one call.
const ViewerRoleHeader = "X-Viewer-Role"

// Service is the board behavior the HTTP API depends on.
type Service interface {
	ListVisibleRequests(ctx context.Context, query domain.Query) ([]domain.Request, error)
	GetRequest(ctx context.Context, requestID string, role domain.Role) (domain.RequestSummary, error)
	CreateRequest(ctx context.Context, input domain.CreateRequestInput) (domain.Request, error)
	ToggleTask(ctx context.Context, requestID, taskID string, role domain.Role) (domain.Request, domain.MutationOutcome, error)
	SaveChecklist(ctx context.Context, requestID string, edited []domain.Task, role domain.Role) (domain.Request, domain.MutationOutcome, error)
	ViewerRole() domain.Role
	SetViewerRole(role domain.Role) error
}

// Options configures optional routes.
type Options struct {
	// MCPHandler, when set, is mounted at /mcp.
	MCPHandler http.Handler
}

type handler struct {
	service Service
}

// NewHandler builds the board router.
func NewHandler(service Service, opts Options) http.Handler {
	h := &handler{service: service}

	r := chi.NewRouter()
	r.Use(httpx.RequestID, httpx.RecoverPanic, viewerRoleContext)

	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/viewer-role", h.getViewerRole)
		r.Put("/viewer-role", h.putViewerRole)

		r.Get("/requests", h.listRequests)
		r.Post("/requests", h.createRequest)
		r.Get("/requests/{requestID}", h.getRequest)
		r.Post("/requests/{requestID}/tasks/{taskID}/toggle", h.toggleTask)
		r.Put("/requests/{requestID}/checklist", h.saveChecklist)
	})
	if opts.MCPHandler != nil {
		r.Handle("/mcp", opts.MCPHandler)
		r.Handle("/mcp/*", opts.MCPHandler)
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, string(apperrors.CodeNotFound), "route not found")
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// viewerRoleContext copies the role header into the request context.
func viewerRoleContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(ViewerRoleHeader))
		if raw != "" {
			r = r.WithContext(requestctx.WithViewerRole(r.Context(), raw))
		}
		next.ServeHTTP(w, r)
	})
}

// viewerRole resolves the role for r: the header when present, otherwise
// the selected role.
func (h *handler) viewerRole(r *http.Request) (domain.Role, error) {
	raw := requestctx.ViewerRoleFromContext(r.Context())
	if raw == "" {
		return h.service.ViewerRole(), nil
	}
	return domain.ParseRole(raw)
}

func (h *handler) getViewerRole(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, viewerRoleView{Role: string(h.service.ViewerRole())})
}

func (h *handler) putViewerRole(w http.ResponseWriter, r *http.Request) {
	var body viewerRoleView
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, err)
		return
	}
	role, err := domain.ParseRole(body.Role)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := h.service.SetViewerRole(role); err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, viewerRoleView{Role: string(role)})
}

func (h *handler) listRequests(w http.ResponseWriter, r *http.Request) {
	role, err := h.viewerRole(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	typeFilter, err := domain.ParseTypeFilter(r.URL.Query().Get("type"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	requests, err := h.service.ListVisibleRequests(r.Context(), domain.Query{
		Role:   role,
		Type:   typeFilter,
		Search: r.URL.Query().Get("q"),
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	view := listView{ViewerRole: string(role), Requests: make([]requestView, 0, len(requests))}
	for _, request := range requests {
		view.Requests = append(view.Requests, newRequestView(request))
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *handler) getRequest(w http.ResponseWriter, r *http.Request) {
	role, err := h.viewerRole(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	summary, err := h.service.GetRequest(r.Context(), chi.URLParam(r, "requestID"), role)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, newDetailView(summary, role))
}

func (h *handler) createRequest(w http.ResponseWriter, r *http.Request) {
	role, err := h.viewerRole(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if role != domain.DepartmentHR {
		httpx.WriteError(w, apperrors.New(apperrors.CodeCreateRequiresHR, "only HR can initiate a process"))
		return
	}
	var body createRequestBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, err)
		return
	}
	processType, err := domain.ParseProcessType(body.Type)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	created, err := h.service.CreateRequest(r.Context(), domain.CreateRequestInput{
		EmployeeName: body.EmployeeName,
		Role:         body.Role,
		Department:   body.Department,
		StartDate:    body.StartDate,
		Type:         processType,
		Notes:        body.Notes,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	w.Header().Set("Location", "/api/requests/"+created.ID)
	_ = httpx.WriteJSON(w, http.StatusCreated, newDetailView(domain.Summarize(created, role), role))
}

func (h *handler) toggleTask(w http.ResponseWriter, r *http.Request) {
	role, err := h.viewerRole(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	updated, outcome, err := h.service.ToggleTask(r.Context(), chi.URLParam(r, "requestID"), chi.URLParam(r, "taskID"), role)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	writeMutation(w, updated, outcome)
}

func (h *handler) saveChecklist(w http.ResponseWriter, r *http.Request) {
	role, err := h.viewerRole(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	var body saveChecklistBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, err)
		return
	}
	edited := make([]domain.Task, 0, len(body.Tasks))
	for _, task := range body.Tasks {
		edited = append(edited, domain.Task{ID: task.ID, IsCompleted: task.IsCompleted})
	}
	updated, outcome, err := h.service.SaveChecklist(r.Context(), chi.URLParam(r, "requestID"), edited, role)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	writeMutation(w, updated, outcome)
}

// writeMutation maps a mutation outcome onto the response status.
func writeMutation(w http.ResponseWriter, updated domain.Request, outcome domain.MutationOutcome) {
	switch outcome {
	case domain.OutcomeApplied, domain.OutcomeUnchanged:
		view := newRequestView(updated)
		_ = httpx.WriteJSON(w, http.StatusOK, mutationView{Outcome: string(outcome), Request: &view})
	case domain.OutcomeRequestNotFound:
		_ = httpx.WriteJSONError(w, http.StatusNotFound, string(apperrors.CodeNotFound), "request not found")
	case domain.OutcomeTaskNotFound:
		_ = httpx.WriteJSONError(w, http.StatusNotFound, string(apperrors.CodeNotFound), "task not found")
	case domain.OutcomePermissionDenied:
		_ = httpx.WriteJSONError(w, http.StatusForbidden, string(apperrors.CodePermissionDenied), "role cannot modify this department's tasks")
	default:
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, string(apperrors.CodeUnknown), "internal error")
	}
}
