// Package seed loads initial board contents from YAML.
//
// A seed file lists requests newest first. Statuses are never read from the
// file; each request's status is derived from its checklist on load.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

//go:embed demo.yaml
var demoYAML []byte

type fileDoc struct {
	Requests []requestDoc `yaml:"requests"`
}

type requestDoc struct {
	ID           string    `yaml:"id"`
	EmployeeName string    `yaml:"employee_name"`
	Role         string    `yaml:"role"`
	Department   string    `yaml:"department"`
	StartDate    string    `yaml:"start_date"`
	Type         string    `yaml:"type"`
	Notes        string    `yaml:"notes"`
	CreatedAt    time.Time `yaml:"created_at"`
	Checklist    []taskDoc `yaml:"checklist"`
}

type taskDoc struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Department  string `yaml:"department"`
	Timeline    string `yaml:"timeline"`
	Completed   bool   `yaml:"completed"`
}

// Demo returns the built-in demo board.
func Demo() ([]domain.Request, error) {
	requests, err := Load(bytes.NewReader(demoYAML))
	if err != nil {
		return nil, fmt.Errorf("load demo seed: %w", err)
	}
	return requests, nil
}

// LoadFile reads a seed file from path.
func LoadFile(path string) ([]domain.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	requests, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load seed file %s: %w", path, err)
	}
	return requests, nil
}

// Load decodes and validates a seed document. Unknown fields are rejected.
func Load(r io.Reader) ([]domain.Request, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc fileDoc
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Request{}, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	requests := make([]domain.Request, 0, len(doc.Requests))
	seen := make(map[string]struct{}, len(doc.Requests))
	for i, raw := range doc.Requests {
		request, err := raw.toDomain()
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		if _, dup := seen[request.ID]; dup {
			return nil, fmt.Errorf("request %d: duplicate id %q", i, request.ID)
		}
		seen[request.ID] = struct{}{}
		requests = append(requests, request)
	}
	return requests, nil
}

func (d requestDoc) toDomain() (domain.Request, error) {
	requestID := strings.TrimSpace(d.ID)
	if requestID == "" {
		return domain.Request{}, fmt.Errorf("id is required")
	}
	processType, err := domain.ParseProcessType(d.Type)
	if err != nil {
		return domain.Request{}, fmt.Errorf("request %s: %w", requestID, err)
	}
	startDate := strings.TrimSpace(d.StartDate)
	if _, err := time.Parse("2006-01-02", startDate); err != nil {
		return domain.Request{}, fmt.Errorf("request %s: start_date must be YYYY-MM-DD: %w", requestID, err)
	}

	checklist := make([]domain.Task, 0, len(d.Checklist))
	taskIDs := make(map[string]struct{}, len(d.Checklist))
	for i, raw := range d.Checklist {
		taskID := strings.TrimSpace(raw.ID)
		if taskID == "" {
			return domain.Request{}, fmt.Errorf("request %s: task %d: id is required", requestID, i)
		}
		if _, dup := taskIDs[taskID]; dup {
			return domain.Request{}, fmt.Errorf("request %s: duplicate task id %q", requestID, taskID)
		}
		taskIDs[taskID] = struct{}{}
		department, err := domain.ParseRole(raw.Department)
		if err != nil {
			return domain.Request{}, fmt.Errorf("request %s: task %s: %w", requestID, taskID, err)
		}
		checklist = append(checklist, domain.Task{
			ID:          taskID,
			Description: strings.TrimSpace(raw.Description),
			IsCompleted: raw.Completed,
			Category:    strings.TrimSpace(raw.Category),
			Department:  department,
			Timeline:    strings.TrimSpace(raw.Timeline),
		})
	}

	return domain.Request{
		ID:           requestID,
		EmployeeName: strings.TrimSpace(d.EmployeeName),
		Role:         strings.TrimSpace(d.Role),
		Department:   strings.TrimSpace(d.Department),
		StartDate:    startDate,
		Type:         processType,
		Status:       domain.DeriveStatus(checklist),
		Notes:        strings.TrimSpace(d.Notes),
		Checklist:    checklist,
		CreatedAt:    d.CreatedAt.UTC(),
	}, nil
}
