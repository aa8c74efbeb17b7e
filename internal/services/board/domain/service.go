package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
	"github.com/louisbranch/personnel.board/internal/platform/id"
)

const startDateLayout = "2006-01-02"

var (
	// ErrNotFound indicates a request was not found or is not visible.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "request not found")
	// ErrConflict indicates a request id is already taken.
	ErrConflict = apperrors.New(apperrors.CodeConflict, "request already exists")
	// ErrStoreNotConfigured indicates the service is missing its request store.
	ErrStoreNotConfigured = errors.New("board store is not configured")
	// ErrProviderNotConfigured indicates the service has no checklist provider.
	ErrProviderNotConfigured = errors.New("checklist provider is not configured")
	// ErrEmptyChecklist indicates a provider broke its never-empty contract.
	ErrEmptyChecklist = errors.New("checklist provider returned no tasks")
)

// Store keeps the board's request collection, newest first.
type Store interface {
	ListRequests(ctx context.Context) ([]Request, error)
	GetRequest(ctx context.Context, requestID string) (Request, error)
	PrependRequest(ctx context.Context, request Request) error
	// UpdateRequest runs update against a private copy of the stored request
	// and, when update reports a change, substitutes the returned value.
	// Updates to the same store are serialized. It returns the request as
	// stored afterwards, or ErrNotFound.
	UpdateRequest(ctx context.Context, requestID string, update func(Request) (Request, bool)) (Request, error)
}

// ChecklistInput describes the request a checklist is generated for.
type ChecklistInput struct {
	Role       string
	Department string
	Type       ProcessType
	Notes      string
}

// ChecklistItem is one generated task before it receives an id.
type ChecklistItem struct {
	Description string
	Category    string
	Department  Department
	Timeline    string
}

// ChecklistProvider produces the cross-departmental checklist for a new
// request. Implementations never fail and never return an empty list; they
// substitute a fallback list instead.
type ChecklistProvider interface {
	Generate(ctx context.Context, input ChecklistInput) []ChecklistItem
}

// CreateRequestInput is the HR form for starting a process.
type CreateRequestInput struct {
	EmployeeName string
	Role         string
	Department   string
	StartDate    string
	Type         ProcessType
	Notes        string
}

// Service is the board controller: it owns the request collection and the
// currently selected viewer role.
type Service struct {
	store    Store
	provider ChecklistProvider
	clock    func() time.Time
	newID    func() (string, error)

	mu     sync.RWMutex
	viewer Role
}

// NewService constructs the board controller. A nil clock or id generator
// falls back to time.Now and id.NewID. The viewer role starts as HR.
func NewService(store Store, provider ChecklistProvider, clock func() time.Time, newID func() (string, error)) *Service {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Service{
		store:    store,
		provider: provider,
		clock:    clock,
		newID:    newID,
		viewer:   DepartmentHR,
	}
}

// ViewerRole returns the currently selected viewer role.
func (s *Service) ViewerRole() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer
}

// SetViewerRole selects the process-wide viewer role.
func (s *Service) SetViewerRole(role Role) error {
	if !role.Valid() {
		return apperrors.WithMetadata(apperrors.CodeRoleInvalid, "role must be one of HR, IT, ADMIN", map[string]string{"role": string(role)})
	}
	s.mu.Lock()
	s.viewer = role
	s.mu.Unlock()
	return nil
}

// resolveRole picks the explicit role when given, else the selected one.
func (s *Service) resolveRole(role Role) (Role, error) {
	if role == "" {
		return s.ViewerRole(), nil
	}
	if !role.Valid() {
		return "", apperrors.WithMetadata(apperrors.CodeRoleInvalid, "role must be one of HR, IT, ADMIN", map[string]string{"role": string(role)})
	}
	return role, nil
}

// CreateRequest generates a checklist for input and prepends the new request
// to the board. The provider call happens without holding any board lock, so
// the request lands on top of whatever the collection holds once generation
// resolves. New requests always start PENDING.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (Request, error) {
	if s == nil || s.store == nil {
		return Request{}, ErrStoreNotConfigured
	}
	if s.provider == nil {
		return Request{}, ErrProviderNotConfigured
	}
	input, err := normalizeCreateInput(input)
	if err != nil {
		return Request{}, err
	}

	items := s.provider.Generate(ctx, ChecklistInput{
		Role:       input.Role,
		Department: input.Department,
		Type:       input.Type,
		Notes:      input.Notes,
	})
	if len(items) == 0 {
		return Request{}, ErrEmptyChecklist
	}

	checklist := make([]Task, 0, len(items))
	for _, item := range items {
		taskID, err := s.newID()
		if err != nil {
			return Request{}, fmt.Errorf("generate task id: %w", err)
		}
		checklist = append(checklist, Task{
			ID:          taskID,
			Description: item.Description,
			Category:    item.Category,
			Department:  item.Department,
			Timeline:    item.Timeline,
		})
	}
	requestID, err := s.newID()
	if err != nil {
		return Request{}, fmt.Errorf("generate request id: %w", err)
	}

	request := Request{
		ID:           requestID,
		EmployeeName: input.EmployeeName,
		Role:         input.Role,
		Department:   input.Department,
		StartDate:    input.StartDate,
		Type:         input.Type,
		Status:       StatusPending,
		Notes:        input.Notes,
		Checklist:    checklist,
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.store.PrependRequest(ctx, request); err != nil {
		return Request{}, err
	}
	return request.Clone(), nil
}

func normalizeCreateInput(input CreateRequestInput) (CreateRequestInput, error) {
	input.EmployeeName = strings.TrimSpace(input.EmployeeName)
	input.Role = strings.TrimSpace(input.Role)
	input.Department = strings.TrimSpace(input.Department)
	input.StartDate = strings.TrimSpace(input.StartDate)
	input.Notes = strings.TrimSpace(input.Notes)

	switch {
	case input.EmployeeName == "":
		return input, apperrors.New(apperrors.CodeRequestEmployeeNameEmpty, "employee name is required")
	case input.Role == "":
		return input, apperrors.New(apperrors.CodeRequestRoleEmpty, "job role is required")
	case input.Department == "":
		return input, apperrors.New(apperrors.CodeRequestDepartmentEmpty, "department is required")
	case !input.Type.Valid():
		return input, apperrors.WithMetadata(apperrors.CodeRequestInvalidType, "type must be ONBOARDING or OFFBOARDING", map[string]string{"type": string(input.Type)})
	}
	if _, err := time.Parse(startDateLayout, input.StartDate); err != nil {
		return input, apperrors.WithMetadata(apperrors.CodeRequestInvalidStartDate, "start date must be YYYY-MM-DD", map[string]string{"start_date": input.StartDate})
	}
	return input, nil
}

// ToggleTask flips one task's completion and recomputes the request status.
// Missing requests or tasks and denied roles are silent no-ops reported only
// through the outcome; the stored request is then left exactly as it was.
// An error is returned only when the store itself fails.
//
// Unlike the read methods, role is not resolved to the selected viewer role:
// a blank role fails CanModify and yields OutcomePermissionDenied. Callers
// that act for the selected viewer pass ViewerRole() explicitly.
func (s *Service) ToggleTask(ctx context.Context, requestID, taskID string, role Role) (Request, MutationOutcome, error) {
	if s == nil || s.store == nil {
		return Request{}, OutcomeUnchanged, ErrStoreNotConfigured
	}
	outcome := OutcomeTaskNotFound
	updated, err := s.store.UpdateRequest(ctx, requestID, func(current Request) (Request, bool) {
		idx := current.taskIndex(taskID)
		if idx < 0 {
			outcome = OutcomeTaskNotFound
			return current, false
		}
		if !CanModify(role, current.Checklist[idx].Department) {
			outcome = OutcomePermissionDenied
			return current, false
		}
		next := current.Clone()
		next.Checklist[idx].IsCompleted = !next.Checklist[idx].IsCompleted
		next.Status = DeriveStatus(next.Checklist)
		outcome = OutcomeApplied
		return next, true
	})
	if errors.Is(err, ErrNotFound) {
		return Request{}, OutcomeRequestNotFound, nil
	}
	if err != nil {
		return Request{}, OutcomeUnchanged, err
	}
	return updated, outcome, nil
}

// SaveChecklist commits a batch of completion changes and recomputes status
// once over the full checklist. Only IsCompleted is read from edited; tasks
// are matched by ID, unknown IDs are ignored, and each change is gated by
// CanModify against the stored task's department. As with ToggleTask, a
// blank role is not replaced by the selected viewer role and every change is
// denied.
func (s *Service) SaveChecklist(ctx context.Context, requestID string, edited []Task, role Role) (Request, MutationOutcome, error) {
	if s == nil || s.store == nil {
		return Request{}, OutcomeUnchanged, ErrStoreNotConfigured
	}
	wanted := make(map[string]bool, len(edited))
	for _, task := range edited {
		wanted[task.ID] = task.IsCompleted
	}

	outcome := OutcomeUnchanged
	updated, err := s.store.UpdateRequest(ctx, requestID, func(current Request) (Request, bool) {
		next := current.Clone()
		var applied, denied int
		for i, task := range next.Checklist {
			completed, ok := wanted[task.ID]
			if !ok || completed == task.IsCompleted {
				continue
			}
			if !CanModify(role, task.Department) {
				denied++
				continue
			}
			next.Checklist[i].IsCompleted = completed
			applied++
		}
		switch {
		case applied > 0:
			outcome = OutcomeApplied
		case denied > 0:
			outcome = OutcomePermissionDenied
		default:
			outcome = OutcomeUnchanged
		}
		if applied == 0 {
			return current, false
		}
		next.Status = DeriveStatus(next.Checklist)
		return next, true
	})
	if errors.Is(err, ErrNotFound) {
		return Request{}, OutcomeRequestNotFound, nil
	}
	if err != nil {
		return Request{}, OutcomeUnchanged, err
	}
	return updated, outcome, nil
}

// ListVisibleRequests returns the board as seen through query. A blank role
// uses the selected viewer role.
func (s *Service) ListVisibleRequests(ctx context.Context, query Query) ([]Request, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	role, err := s.resolveRole(query.Role)
	if err != nil {
		return nil, err
	}
	query.Role = role
	if query.Type == "" {
		query.Type = TypeAll
	}
	requests, err := s.store.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return VisibleRequests(requests, query), nil
}

// GetRequest returns the summary of one request for role. Requests the role
// cannot see are reported as ErrNotFound.
func (s *Service) GetRequest(ctx context.Context, requestID string, role Role) (RequestSummary, error) {
	if s == nil || s.store == nil {
		return RequestSummary{}, ErrStoreNotConfigured
	}
	role, err := s.resolveRole(role)
	if err != nil {
		return RequestSummary{}, err
	}
	request, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return RequestSummary{}, err
	}
	if len(FilterForRole([]Request{request}, role)) == 0 {
		return RequestSummary{}, ErrNotFound
	}
	return Summarize(request, role), nil
}
