// Package board parses board service flags and launches the service.
package board

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/personnel.board/internal/platform/cmd"
	server "github.com/louisbranch/personnel.board/internal/services/board/app"
	"github.com/louisbranch/personnel.board/internal/services/board/checklist"
	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

// Config holds board command configuration.
type Config struct {
	HTTPAddr string `env:"PERSONNEL_BOARD_HTTP_ADDR" envDefault:":8090"`
	GRPCPort int    `env:"PERSONNEL_BOARD_GRPC_PORT" envDefault:"8091"`

	SeedPath string `env:"PERSONNEL_BOARD_SEED_PATH"`
	SeedDemo bool   `env:"PERSONNEL_BOARD_SEED_DEMO" envDefault:"true"`

	DefaultRole string `env:"PERSONNEL_BOARD_DEFAULT_ROLE" envDefault:"HR"`

	GeminiAPIKey      string        `env:"PERSONNEL_BOARD_GEMINI_API_KEY"`
	GeminiModel       string        `env:"PERSONNEL_BOARD_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseURL     string        `env:"PERSONNEL_BOARD_GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GenerationTimeout time.Duration `env:"PERSONNEL_BOARD_GENERATION_TIMEOUT" envDefault:"20s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The board HTTP API address")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "The board gRPC health server port")
	fs.StringVar(&cfg.SeedPath, "seed", cfg.SeedPath, "YAML file with the initial board")
	fs.BoolVar(&cfg.SeedDemo, "demo", cfg.SeedDemo, "Load the demo board when no seed file is given")
	fs.StringVar(&cfg.DefaultRole, "role", cfg.DefaultRole, "Initial viewer role (HR, IT, ADMIN)")
	fs.StringVar(&cfg.GeminiModel, "gemini-model", cfg.GeminiModel, "Gemini model used for checklist generation")
	fs.DurationVar(&cfg.GenerationTimeout, "generation-timeout", cfg.GenerationTimeout, "Upper bound for one checklist generation")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, err := domain.ParseRole(cfg.DefaultRole); err != nil {
		return Config{}, fmt.Errorf("default role: %w", err)
	}
	if cfg.GRPCPort < 0 || cfg.GRPCPort > 65535 {
		return Config{}, fmt.Errorf("grpc port %d out of range", cfg.GRPCPort)
	}
	return cfg, nil
}

// ServerConfig translates command configuration into server configuration.
func (c Config) ServerConfig() server.Config {
	role, _ := domain.ParseRole(c.DefaultRole)
	return server.Config{
		HTTPAddr:    c.HTTPAddr,
		GRPCAddr:    fmt.Sprintf(":%d", c.GRPCPort),
		SeedPath:    c.SeedPath,
		SeedDemo:    c.SeedDemo,
		DefaultRole: role,
		Gemini: checklist.GeminiConfig{
			APIKey:  c.GeminiAPIKey,
			Model:   c.GeminiModel,
			BaseURL: c.GeminiBaseURL,
		},
		GenerationTimeout: c.GenerationTimeout,
	}
}

// Run starts the board service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBoard, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
