// Package server composes and runs the personnel board process.
//
// One process hosts the JSON HTTP API (with MCP tools mounted at /mcp) and a
// gRPC health endpoint. Both share a single in-memory board.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	platformgrpc "github.com/louisbranch/personnel.board/internal/platform/grpc"
	"github.com/louisbranch/personnel.board/internal/platform/timeouts"
	"github.com/louisbranch/personnel.board/internal/services/board/api/httpapi"
	"github.com/louisbranch/personnel.board/internal/services/board/api/mcptools"
	"github.com/louisbranch/personnel.board/internal/services/board/checklist"
	"github.com/louisbranch/personnel.board/internal/services/board/domain"
	"github.com/louisbranch/personnel.board/internal/services/board/seed"
	"github.com/louisbranch/personnel.board/internal/services/board/storage/memory"
)

// HealthService is the gRPC health service name reported by the board.
const HealthService = "personnel.board"

// Config configures a board server.
type Config struct {
	HTTPAddr string
	GRPCAddr string

	// SeedPath names a YAML seed file. When empty and SeedDemo is set, the
	// built-in demo board is loaded instead.
	SeedPath string
	SeedDemo bool

	DefaultRole       domain.Role
	Gemini            checklist.GeminiConfig
	GenerationTimeout time.Duration

	// Logf receives diagnostics. Nil uses log.Printf.
	Logf func(format string, args ...any)
}

// Server hosts the board HTTP API and gRPC health lifecycle.
type Server struct {
	logf func(format string, args ...any)

	service *domain.Service

	httpListener net.Listener
	httpServer   *http.Server

	grpcListener net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
}

// New builds a server listening on both configured addresses.
func New(cfg Config) (*Server, error) {
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	service, err := newService(cfg)
	if err != nil {
		return nil, err
	}

	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return nil, fmt.Errorf("listen HTTP on %s: %w", cfg.HTTPAddr, err)
	}
	grpcListener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = httpListener.Close()
		return nil, fmt.Errorf("listen gRPC on %s: %w", cfg.GRPCAddr, err)
	}

	handler := httpapi.NewHandler(service, httpapi.Options{
		MCPHandler: mcptools.NewHTTPHandler(mcptools.NewServer(service)),
	})
	grpcServer, healthServer := platformgrpc.NewHealthServer(HealthService)

	return &Server{
		logf:         cfg.Logf,
		service:      service,
		httpListener: httpListener,
		httpServer:   &http.Server{Handler: handler, ReadHeaderTimeout: timeouts.ReadHeader},
		grpcListener: grpcListener,
		grpcServer:   grpcServer,
		health:       healthServer,
	}, nil
}

func newService(cfg Config) (*domain.Service, error) {
	requests, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}
	store, err := memory.NewStore(requests)
	if err != nil {
		return nil, fmt.Errorf("build board store: %w", err)
	}

	var source checklist.Source
	if strings.TrimSpace(cfg.Gemini.APIKey) != "" {
		source = checklist.NewGeminiSource(cfg.Gemini)
	} else {
		cfg.Logf("checklist generation disabled: no api key, fallback lists only")
	}
	generator := checklist.NewGenerator(checklist.Config{
		Source:  source,
		Timeout: cfg.GenerationTimeout,
		Logf:    cfg.Logf,
	})

	service := domain.NewService(store, generator, nil, nil)
	if cfg.DefaultRole != "" {
		if err := service.SetViewerRole(cfg.DefaultRole); err != nil {
			return nil, fmt.Errorf("default role: %w", err)
		}
	}
	cfg.Logf("board loaded requests=%d viewer_role=%s", store.Len(), service.ViewerRole())
	return service, nil
}

func loadSeed(cfg Config) ([]domain.Request, error) {
	switch {
	case strings.TrimSpace(cfg.SeedPath) != "":
		return seed.LoadFile(cfg.SeedPath)
	case cfg.SeedDemo:
		return seed.Demo()
	default:
		return nil, nil
	}
}

// HTTPAddr returns the HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the gRPC listener address.
func (s *Server) GRPCAddr() string {
	if s == nil || s.grpcListener == nil {
		return ""
	}
	return s.grpcListener.Addr().String()
}

// Service exposes the board service backing this server.
func (s *Server) Service() *domain.Service {
	if s == nil {
		return nil
	}
	return s.service
}

// Run creates and serves a board server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs both listeners until ctx ends or either one fails, then shuts
// the other down.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		s.logf("board HTTP server listening at %v", s.httpListener.Addr())
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve HTTP: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		s.logf("board gRPC health server listening at %v", s.grpcListener.Addr())
		if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		s.shutdown()
		return nil
	})

	return group.Wait()
}

func (s *Server) shutdown() {
	if s.health != nil {
		s.health.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logf("board HTTP shutdown: %v", err)
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		s.grpcServer.Stop()
	}
}
