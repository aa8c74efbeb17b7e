// Package checklist produces the cross-departmental task list for a new
// request.
//
// A Generator asks a Source for a tailored list and falls back to a fixed
// list per process type whenever the source fails, times out, or answers
// with something unusable. Callers therefore always receive a non-empty
// checklist.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/personnel.board/internal/platform/otel"
	"github.com/louisbranch/personnel.board/internal/platform/requestctx"
	"github.com/louisbranch/personnel.board/internal/platform/timeouts"
	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

// Source generates checklist items and may fail.
type Source interface {
	Generate(ctx context.Context, input domain.ChecklistInput) ([]domain.ChecklistItem, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context, input domain.ChecklistInput) ([]domain.ChecklistItem, error)

// Generate calls f.
func (f SourceFunc) Generate(ctx context.Context, input domain.ChecklistInput) ([]domain.ChecklistItem, error) {
	return f(ctx, input)
}

// ErrSourceUnavailable is returned by sources that cannot be reached at all,
// such as a missing API key.
var ErrSourceUnavailable = errors.New("checklist source unavailable")

// Outcome labels how a checklist was produced.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeFallback  Outcome = "fallback"
)

// Config configures a Generator.
type Config struct {
	// Source is asked first. A nil source always yields the fallback.
	Source Source
	// Timeout bounds one source call. Zero uses timeouts.Generation.
	Timeout time.Duration
	// Logf receives diagnostics. Nil uses log.Printf.
	Logf func(format string, args ...any)
}

// Generator implements domain.ChecklistProvider.
type Generator struct {
	source  Source
	timeout time.Duration
	logf    func(format string, args ...any)
}

var _ domain.ChecklistProvider = (*Generator)(nil)

// NewGenerator builds a Generator from cfg.
func NewGenerator(cfg Config) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.Generation
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return &Generator{source: cfg.Source, timeout: cfg.Timeout, logf: cfg.Logf}
}

// Generate returns the source's checklist, or the fallback for input.Type.
func (g *Generator) Generate(ctx context.Context, input domain.ChecklistInput) []domain.ChecklistItem {
	ctx, span := otel.Tracer().Start(ctx, "checklist.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("board.process_type", string(input.Type)))

	items, err := g.fromSource(ctx, input)
	if err != nil {
		requestID := requestctx.RequestIDFromContext(ctx)
		if requestID == "" {
			requestID = "-"
		}
		g.logf("checklist fallback process_type=%s role=%q request_id=%s err=%v", input.Type, input.Role, requestID, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "checklist generation unavailable")
		span.SetAttributes(attribute.String("board.checklist_outcome", string(OutcomeFallback)))
		return Fallback(input.Type)
	}
	span.SetAttributes(
		attribute.String("board.checklist_outcome", string(OutcomeGenerated)),
		attribute.Int("board.checklist_size", len(items)),
	)
	return items
}

func (g *Generator) fromSource(ctx context.Context, input domain.ChecklistInput) ([]domain.ChecklistItem, error) {
	if g == nil || g.source == nil {
		return nil, ErrSourceUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	items, err := g.source.Generate(ctx, input)
	if err != nil {
		return nil, err
	}
	return validate(items)
}

// validate rejects the whole list when any item is unusable.
func validate(items []domain.ChecklistItem) ([]domain.ChecklistItem, error) {
	if len(items) == 0 {
		return nil, errors.New("source returned no tasks")
	}
	out := make([]domain.ChecklistItem, 0, len(items))
	for i, item := range items {
		item.Description = strings.TrimSpace(item.Description)
		item.Category = strings.TrimSpace(item.Category)
		item.Timeline = strings.TrimSpace(item.Timeline)
		item.Department = domain.Department(strings.ToUpper(strings.TrimSpace(string(item.Department))))
		if item.Description == "" {
			return nil, fmt.Errorf("task %d: description is required", i)
		}
		if !item.Department.Valid() {
			return nil, fmt.Errorf("task %d: unknown department %q", i, item.Department)
		}
		out = append(out, item)
	}
	return out, nil
}
