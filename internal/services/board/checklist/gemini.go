package checklist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/louisbranch/personnel.board/internal/services/board/domain"
)

const (
	// DefaultGeminiModel is used when GeminiConfig.Model is blank.
	DefaultGeminiModel = "gemini-2.5-flash"
	// DefaultGeminiBaseURL is the public Generative Language API root.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	geminiSystemInstruction = "You are an expert enterprise workflow automation assistant."
	geminiTextPath          = "candidates.0.content.parts.0.text"
	maxErrorBody            = 4096
	maxResponseBody         = 1 << 20
)

// GeminiConfig configures the Gemini generateContent endpoint.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiSource asks Gemini for a structured checklist.
type GeminiSource struct {
	cfg GeminiConfig
}

var _ Source = (*GeminiSource)(nil)

// NewGeminiSource builds a Gemini-backed Source.
func NewGeminiSource(cfg GeminiConfig) *GeminiSource {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultGeminiModel
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	return &GeminiSource{cfg: cfg}
}

// Generate calls generateContent and decodes the candidate's JSON text.
func (s *GeminiSource) Generate(ctx context.Context, input domain.ChecklistInput) ([]domain.ChecklistItem, error) {
	apiKey := strings.TrimSpace(s.cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured: %w", ErrSourceUnavailable)
	}
	endpoint, err := s.endpoint()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(geminiRequestBody(input))
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels only in this header and is never echoed in errors.
	req.Header.Set("x-goog-api-key", apiKey)

	res, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		raw, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		if err != nil {
			return nil, fmt.Errorf("read generate error body: %w", err)
		}
		message := gjson.GetBytes(raw, "error.message").String()
		if message == "" {
			message = strings.TrimSpace(string(raw))
		}
		return nil, fmt.Errorf("generate request status %d: %s", res.StatusCode, message)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody+1))
	if err != nil {
		return nil, fmt.Errorf("read generate response: %w", err)
	}
	if len(raw) > maxResponseBody {
		return nil, fmt.Errorf("generate response exceeds %d bytes", maxResponseBody)
	}
	return decodeGeminiResponse(raw)
}

func (s *GeminiSource) endpoint() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/")
	if _, err := url.Parse(base); err != nil {
		return "", fmt.Errorf("parse gemini base url: %w", err)
	}
	return base + "/models/" + url.PathEscape(strings.TrimSpace(s.cfg.Model)) + ":generateContent", nil
}

func decodeGeminiResponse(raw []byte) ([]domain.ChecklistItem, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("generate response is not json")
	}
	text := gjson.GetBytes(raw, geminiTextPath)
	if !text.Exists() || strings.TrimSpace(text.String()) == "" {
		reason := gjson.GetBytes(raw, "candidates.0.finishReason").String()
		if reason == "" {
			reason = gjson.GetBytes(raw, "promptFeedback.blockReason").String()
		}
		return nil, fmt.Errorf("generate response has no text (reason=%q)", reason)
	}

	var payload struct {
		Tasks []struct {
			Description string `json:"description"`
			Category    string `json:"category"`
			Department  string `json:"department"`
			Timeline    string `json:"timeline"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(text.String()), &payload); err != nil {
		return nil, fmt.Errorf("decode generated checklist: %w", err)
	}
	items := make([]domain.ChecklistItem, 0, len(payload.Tasks))
	for _, task := range payload.Tasks {
		items = append(items, domain.ChecklistItem{
			Description: task.Description,
			Category:    task.Category,
			Department:  domain.Department(task.Department),
			Timeline:    task.Timeline,
		})
	}
	return items, nil
}

func geminiRequestBody(input domain.ChecklistInput) map[string]any {
	return map[string]any{
		"systemInstruction": map[string]any{
			"parts": []map[string]string{{"text": geminiSystemInstruction}},
		},
		"contents": []map[string]any{{
			"role":  "user",
			"parts": []map[string]string{{"text": buildPrompt(input)}},
		}},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"responseSchema":   checklistSchema(),
		},
	}
}

func checklistSchema() map[string]any {
	departments := make([]string, 0, len(domain.Departments))
	for _, department := range domain.Departments {
		departments = append(departments, string(department))
	}
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"tasks": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"description": map[string]any{"type": "STRING", "description": "A specific actionable task."},
						"category":    map[string]any{"type": "STRING", "description": "Category of the task (Hardware, Legal, Facilities, Access)."},
						"department": map[string]any{
							"type":        "STRING",
							"description": "The department responsible: 'HR', 'IT', or 'ADMIN'.",
							"enum":        departments,
						},
						"timeline": map[string]any{"type": "STRING", "description": "When this should happen relative to start date (e.g. 'Day -7', 'Day 0', 'Day 1')."},
					},
					"required": []string{"description", "category", "department", "timeline"},
				},
			},
		},
	}
}

func buildPrompt(input domain.ChecklistInput) string {
	var b strings.Builder
	b.WriteString("Act as an Operations Director. Generate a comprehensive cross-departmental checklist for the following scenario:\n\n")
	fmt.Fprintf(&b, "Process: %s\nRole: %s\nDepartment: %s\nAdditional Notes: %s\n\n", input.Type, input.Role, input.Department, input.Notes)
	b.WriteString("You must coordinate between HR, IT, and ADMIN (Facilities).\n\n")
	b.WriteString("For ONBOARDING, sequence the events logically:\n")
	b.WriteString("1. HR: Contract signing, document collection (Day -14).\n")
	b.WriteString("2. IT: Hardware procurement, account creation (Day -7).\n")
	b.WriteString("3. ADMIN: Desk setup, access badge, welcome kit (Day -1).\n\n")
	b.WriteString("For OFFBOARDING:\n")
	b.WriteString("1. HR: Exit interview, legal paperwork.\n")
	b.WriteString("2. IT: Backup data, revoke access, collect electronics.\n")
	b.WriteString("3. ADMIN: Collect badge, desk inspection.\n\n")
	b.WriteString("Be specific to the role (e.g., Designers need Macs/Figma; Sales needs Mobile/CRM).\n")
	b.WriteString("Assign each task strictly to 'HR', 'IT', or 'ADMIN'.")
	return b.String()
}
