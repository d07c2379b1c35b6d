package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTestLogger creates a Logger backed by traceHandler writing to buf.
func newTestLogger(buf *bytes.Buffer) Logger {
	return NewWithWriter(buf, slog.LevelDebug)
}

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp
}

func parseLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = lines[i]
			break
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("failed to parse log line %q: %v", last, err)
	}
	return m
}

func TestTraceHandler(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	spanCtx, span := otel.Tracer("test").Start(context.Background(), "save-item")
	defer span.End()
	reqCtx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	tests := []struct {
		name        string
		ctx         context.Context
		log         func(Logger, context.Context)
		wantTrace   bool
		wantRequest string
	}{
		{
			name:      "info with span",
			ctx:       spanCtx,
			log:       func(l Logger, ctx context.Context) { l.InfoContext(ctx, "item saved", "item_id", 3) },
			wantTrace: true,
		},
		{
			name:      "error with span keeps attributes",
			ctx:       spanCtx,
			log:       func(l Logger, ctx context.Context) { l.ErrorContext(ctx, "save failed", "error", errors.New("boom"), "item_id", 3) },
			wantTrace: true,
		},
		{
			name: "no span",
			ctx:  context.Background(),
			log:  func(l Logger, ctx context.Context) { l.InfoContext(ctx, "no span", "item_id", 3) },
		},
		{
			name:        "request id only",
			ctx:         reqCtx,
			log:         func(l Logger, ctx context.Context) { l.With("component", "test").WarnContext(ctx, "rejected", "item_id", 3) },
			wantRequest: "req-42",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newTestLogger(&buf), tt.ctx)

			entry := parseLastLine(t, &buf)
			_, hasTrace := entry["trace_id"]
			_, hasSpan := entry["span_id"]
			if hasTrace != tt.wantTrace || hasSpan != tt.wantTrace {
				t.Errorf("trace_id/span_id present = %v/%v, want %v", hasTrace, hasSpan, tt.wantTrace)
			}
			if got, _ := entry["request_id"].(string); got != tt.wantRequest {
				t.Errorf("request_id: got %q, want %q", got, tt.wantRequest)
			}
			if entry["item_id"] != float64(3) {
				t.Errorf("item_id attribute lost: %v", entry)
			}
		})
	}
}

func TestMiddleware_InjectsRequestIDAndTrace(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newTestLogger(&buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(log))
	r.Get("/validation/v3/items", func(w http.ResponseWriter, req *http.Request) {
		_, span := otel.Tracer("test").Start(req.Context(), "handler-span")
		defer span.End()
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/validation/v3/items", http.NoBody)
	req.Header.Set("Accept-Language", "ko-KR")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := parseLastLine(t, &buf)
	if _, ok := entry["request_id"]; !ok {
		t.Error("expected request_id in request log")
	}
	if entry["method"] != "GET" || entry["status"] != float64(http.StatusOK) {
		t.Errorf("unexpected method/status: %v %v", entry["method"], entry["status"])
	}
	if entry["bytes"] != float64(len(`{"items":[]}`)) {
		t.Errorf("unexpected bytes: %v", entry["bytes"])
	}
	if entry["accept_language"] != "ko-KR" {
		t.Errorf("unexpected accept_language: %v", entry["accept_language"])
	}
}

func TestMiddleware_LevelAndLocation(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		location     string
		wantLevel    string
		wantLocation any
	}{
		{"redirect after save", http.StatusSeeOther, "/validation/v2/items/3?status=true", "INFO", "/validation/v2/items/3?status=true"},
		{"rejected form", http.StatusUnprocessableEntity, "", "INFO", nil},
		{"server error", http.StatusInternalServerError, "", "ERROR", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := Middleware(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.location != "" {
					w.Header().Set("Location", tt.location)
				}
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/validation/v2/items/add", http.NoBody))

			entry := parseLastLine(t, &buf)
			if entry["level"] != tt.wantLevel {
				t.Errorf("level: got %v, want %v", entry["level"], tt.wantLevel)
			}
			if entry["status"] != float64(tt.status) {
				t.Errorf("status: got %v, want %d", entry["status"], tt.status)
			}
			if entry["location"] != tt.wantLocation {
				t.Errorf("location: got %v, want %v", entry["location"], tt.wantLocation)
			}
		})
	}
}

func TestRecovery_ReturnsJSON500(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf)

	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/validation/v4/items", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] != "Internal Server Error" {
		t.Fatalf("unexpected body %q (%v)", rr.Body.String(), err)
	}
	entry := parseLastLine(t, &buf)
	if entry["msg"] != "panic recovered" || entry["path"] != "/validation/v4/items" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	h := Recovery(Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler { //nolint:errorlint
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		"DEBUG":  slog.LevelDebug,
		"warn":   slog.LevelWarn,
		"error":  slog.LevelError,
		"info":   slog.LevelInfo,
		"info+2": slog.LevelInfo + 2,
		"":       slog.LevelInfo,
		"bogus":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestNestedSpans verifies same trace_id but different span_ids for parent/child.
func TestNestedSpans(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	var buf bytes.Buffer
	log := newTestLogger(&buf)
	tracer := otel.Tracer("test")

	ctx, parent := tracer.Start(context.Background(), "parent")
	log.InfoContext(ctx, "parent log")
	parentEntry := parseLastLine(t, &buf)
	buf.Reset()

	ctx, child := tracer.Start(ctx, "child")
	log.InfoContext(ctx, "child log")
	childEntry := parseLastLine(t, &buf)

	child.End()
	parent.End()

	if parentEntry["trace_id"] != childEntry["trace_id"] {
		t.Errorf("expected same trace_id: %v vs %v", parentEntry["trace_id"], childEntry["trace_id"])
	}
	if parentEntry["span_id"] == childEntry["span_id"] {
		t.Error("expected different span_ids for parent and child")
	}
}
