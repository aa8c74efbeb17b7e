// Package memory keeps the board's request collection in process memory.
//
// Nothing survives a restart. Readers always receive deep copies, and writes
// replace whole request values, so a request handed out earlier is a stable
// snapshot.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

// Store is an in-memory domain.Store ordered newest first.
type Store struct {
	mu       sync.RWMutex
	requests []domain.Request
}

var _ domain.Store = (*Store)(nil)

// NewStore builds a store holding seed in the given (newest-first) order.
func NewStore(seed []domain.Request) (*Store, error) {
	s := &Store{requests: make([]domain.Request, 0, len(seed))}
	seen := make(map[string]struct{}, len(seed))
	for _, request := range seed {
		requestID := strings.TrimSpace(request.ID)
		if requestID == "" {
			return nil, fmt.Errorf("seed request id is required")
		}
		if _, dup := seen[requestID]; dup {
			return nil, fmt.Errorf("seed request %q: %w", requestID, domain.ErrConflict)
		}
		seen[requestID] = struct{}{}
		s.requests = append(s.requests, request.Clone())
	}
	return s, nil
}

// ListRequests returns copies of every request, newest first.
func (s *Store) ListRequests(ctx context.Context) ([]domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Request, len(s.requests))
	for i, request := range s.requests {
		out[i] = request.Clone()
	}
	return out, nil
}

// GetRequest returns a copy of one request.
func (s *Store) GetRequest(ctx context.Context, requestID string) (domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return domain.Request{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(requestID)
	if idx < 0 {
		return domain.Request{}, domain.ErrNotFound
	}
	return s.requests[idx].Clone(), nil
}

// PrependRequest puts request at the top of the collection.
func (s *Store) PrependRequest(ctx context.Context, request domain.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(request.ID) == "" {
		return fmt.Errorf("request id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(request.ID) >= 0 {
		return domain.ErrConflict
	}
	s.requests = append([]domain.Request{request.Clone()}, s.requests...)
	return nil
}

// UpdateRequest applies update under the write lock. update receives a copy;
// its result replaces the stored value only when it reports a change, and the
// replacement keeps the request's id and position.
func (s *Store) UpdateRequest(ctx context.Context, requestID string, update func(domain.Request) (domain.Request, bool)) (domain.Request, error) {
	if err := ctx.Err(); err != nil {
		return domain.Request{}, err
	}
	if update == nil {
		return domain.Request{}, fmt.Errorf("update function is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(requestID)
	if idx < 0 {
		return domain.Request{}, domain.ErrNotFound
	}
	next, changed := update(s.requests[idx].Clone())
	if !changed {
		return s.requests[idx].Clone(), nil
	}
	next.ID = s.requests[idx].ID
	s.requests[idx] = next.Clone()
	return next.Clone(), nil
}

// Len reports how many requests the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.requests)
}

func (s *Store) indexOf(requestID string) int {
	for i, request := range s.requests {
		if request.ID == requestID {
			return i
		}
	}
	return -1
}
