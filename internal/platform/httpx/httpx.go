// Package httpx provides HTTP middleware and JSON response helpers.
package httpx

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/louisbranch/personnel.board/internal/platform/errors"
	"github.com/louisbranch/personnel.board/internal/platform/requestctx"
)

// RequestIDHeader carries the correlation id for one HTTP request.
const RequestIDHeader = "X-Request-ID"

var requestIDCounter atomic.Uint64

// RequestID injects and echoes a request id for correlation.
func RequestID(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = fmt.Sprintf("board-%d-%d", time.Now().UnixNano(), requestIDCounter.Add(1))
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), requestID)))
	})
}

// RecoverPanic converts panics into HTTP 500 responses and logs the stack.
func RecoverPanic(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
				if requestID == "" {
					requestID = "-"
				}
				log.Printf(
					"panic recovered method=%s path=%s request_id=%s panic=%v stack=%s",
					r.Method,
					r.URL.Path,
					requestID,
					recovered,
					strings.TrimSpace(string(debug.Stack())),
				)
				_ = WriteJSONError(w, http.StatusInternalServerError, string(apperrors.CodeUnknown), "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WriteJSON writes a JSON response with the provided status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteJSONError writes a JSON error response.
func WriteJSONError(w http.ResponseWriter, status int, code string, message string) error {
	return WriteJSON(w, status, ErrorBody{Error: message, Code: code})
}

// WriteError writes err as JSON using the domain code to pick the status.
// Uncoded errors are reported as internal without leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	code := apperrors.CodeOf(err)
	status := code.HTTPStatus()
	message := err.Error()
	if code == apperrors.CodeUnknown {
		log.Printf("http internal error err=%v", err)
		message = "internal error"
	}
	_ = WriteJSONError(w, status, string(code), message)
}

// DecodeJSON reads one JSON object from r into target, rejecting unknown
// fields. Failures carry CodeInvalidArgument.
func DecodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return apperrors.New(apperrors.CodeInvalidArgument, "request body is required")
	}
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "invalid request body: "+err.Error(), err)
	}
	return nil
}
