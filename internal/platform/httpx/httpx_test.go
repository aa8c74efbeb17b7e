package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
	"github.com/louisbranch/personnel.board/internal/platform/requestctx"
)

func TestRequestIDAddsHeaderWhenMissing(t *testing.T) {
	t.Parallel()

	var seen, fromContext string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		fromContext = requestctx.RequestIDFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.HasPrefix(seen, "board-") {
		t.Fatalf("request id = %q, want board- prefix", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("echoed id = %q, want %q", rec.Header().Get(RequestIDHeader), seen)
	}
	if fromContext != seen {
		t.Fatalf("context id = %q, want %q", fromContext, seen)
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	RequestID(http.NotFoundHandler()).ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("request id = %q, want abc", got)
	}
}

func TestRecoverPanicReturnsInternalServerError(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	handler := RecoverPanic(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/requests", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	logged := buf.String()
	if !strings.Contains(logged, "path=/api/requests") || !strings.Contains(logged, "request_id=req-1") {
		t.Fatalf("log line missing request context: %q", logged)
	}
}

func TestWriteJSONSetsContentTypeAndBody(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	if err := WriteJSON(rec, http.StatusCreated, map[string]string{"id": "r1"}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"id":"r1"}` {
		t.Fatalf("body = %q", body)
	}
}

func TestWriteErrorUsesDomainCode(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(rec, apperrors.New(apperrors.CodeRoleInvalid, "role is invalid"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != string(apperrors.CodeRoleInvalid) || body.Error != "role is invalid" {
		t.Fatalf("body = %+v", body)
	}
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("disk on fire"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Fatalf("internal message leaked: %q", rec.Body.String())
	}
}

func TestWriteErrorNilAndNilWriterSafety(t *testing.T) {
	t.Parallel()

	WriteError(nil, errors.New("ignored"))
	rec := httptest.NewRecorder()
	WriteError(rec, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if err := WriteJSON(nil, http.StatusOK, nil); err == nil {
		t.Fatal("expected nil writer error")
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var target struct {
		Role string `json:"role"`
	}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"role":"IT","extra":1}`))
	err := DecodeJSON(req, &target)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if got := apperrors.CodeOf(err); got != apperrors.CodeInvalidArgument {
		t.Fatalf("code = %s, want %s", got, apperrors.CodeInvalidArgument)
	}

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"role":"IT"}`))
	if err := DecodeJSON(req, &target); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if target.Role != "IT" {
		t.Fatalf("role = %q, want IT", target.Role)
	}
}
