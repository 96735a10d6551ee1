package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Event Type Tests
// =============================================================================

func TestEventTypes(t *testing.T) {
	// Verify all event types are unique
	types := []EventType{
		EventGenerationStarted,
		EventGenerationCompleted,
		EventGenerationFailed,
		EventArtifactReleased,
	}

	seen := make(map[EventType]bool)
	for _, et := range types {
		if seen[et] {
			t.Errorf("duplicate event type: %s", et)
		}
		seen[et] = true
	}
}

// =============================================================================
// NopNotifier Tests
// =============================================================================

func TestNopNotifier(t *testing.T) {
	n := NopNotifier{}
	ctx := context.Background()

	err := n.Notify(ctx, Event{
		Type:    EventGenerationStarted,
		Message: "test",
	})

	if err != nil {
		t.Errorf("NopNotifier.Notify() error = %v, want nil", err)
	}
}

// =============================================================================
// LogNotifier Tests
// =============================================================================

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := NewLogNotifier(logger)
	ctx := context.Background()

	event := Event{
		Type:      EventGenerationCompleted,
		RunID:     "run-123",
		Message:   "archive ready",
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
	}

	err := n.Notify(ctx, event)
	if err != nil {
		t.Errorf("LogNotifier.Notify() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "archive ready") {
		t.Errorf("Log output missing message: %s", output)
	}
	if !strings.Contains(output, "run-123") {
		t.Errorf("Log output missing run_id: %s", output)
	}
}

func TestLogNotifier_Severity(t *testing.T) {
	tests := []struct {
		severity string
		wantLog  string
	}{
		{SeverityInfo, "level=INFO"},
		{SeverityWarning, "level=WARN"},
		{SeverityError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			n := NewLogNotifier(logger)

			err := n.Notify(context.Background(), Event{
				Type:     EventGenerationStarted,
				Message:  "test",
				Severity: tt.severity,
			})

			if err != nil {
				t.Errorf("Notify() error = %v", err)
			}

			if !strings.Contains(buf.String(), tt.wantLog) {
				t.Errorf("Log output = %q, want to contain %q", buf.String(), tt.wantLog)
			}
		})
	}
}

func TestLogNotifier_NilLogger(t *testing.T) {
	n := NewLogNotifier(nil)
	if n.Logger == nil {
		t.Error("NewLogNotifier should use default logger when nil")
	}
}

// =============================================================================
// WebhookNotifier Tests
// =============================================================================

func TestWebhookNotifier(t *testing.T) {
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, nil)
	ctx := context.Background()

	event := Event{
		Type:      EventGenerationCompleted,
		RunID:     "run-123",
		Message:   "webhook test",
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
	}

	err := n.Notify(ctx, event)
	if err != nil {
		t.Errorf("WebhookNotifier.Notify() error = %v", err)
	}

	var parsed Event
	if err := json.Unmarshal(receivedBody, &parsed); err != nil {
		t.Errorf("Failed to parse received body: %v", err)
	}
	if parsed.RunID != "run-123" {
		t.Errorf("Received RunID = %s, want run-123", parsed.RunID)
	}
}

func TestWebhookNotifier_CustomHeaders(t *testing.T) {
	var receivedAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	headers := map[string]string{
		"Authorization": "Bearer test-token",
	}
	n := NewWebhookNotifier(server.URL, headers)

	err := n.Notify(context.Background(), Event{Type: EventGenerationStarted})
	if err != nil {
		t.Errorf("Notify() error = %v", err)
	}

	if receivedAuth != "Bearer test-token" {
		t.Errorf("Authorization header = %q, want 'Bearer test-token'", receivedAuth)
	}
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(server.URL, nil)

	err := n.Notify(context.Background(), Event{Type: EventGenerationFailed})
	if err == nil {
		t.Error("Notify() should return error for 500 response")
	}
}

// =============================================================================
// SlackNotifier Tests
// =============================================================================

func TestSlackNotifier(t *testing.T) {
	var receivedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewSlackNotifier(server.URL,
		WithSlackChannel("#genforge"),
		WithSlackUsername("genforge-bot"),
	)

	err := n.Notify(context.Background(), Event{
		Type:      EventGenerationCompleted,
		RunID:     "run-123",
		Message:   "cli.zip is ready",
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
		Metadata:  map[string]any{"filename": "cli.zip"},
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("Failed to parse slack payload: %v", err)
	}
	if payload["channel"] != "#genforge" {
		t.Errorf("channel = %v, want #genforge", payload["channel"])
	}
	if payload["username"] != "genforge-bot" {
		t.Errorf("username = %v, want genforge-bot", payload["username"])
	}
	if !strings.Contains(string(receivedBody), "cli.zip is ready") {
		t.Errorf("payload missing message: %s", receivedBody)
	}
}

// =============================================================================
// MultiNotifier Tests
// =============================================================================

type recordingNotifier struct {
	events []Event
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestMultiNotifier(t *testing.T) {
	a := &recordingNotifier{}
	b := &recordingNotifier{}

	n := NewMultiNotifier(a, b)

	err := n.Notify(context.Background(), Event{Type: EventGenerationCompleted})
	if err != nil {
		t.Errorf("Notify() error = %v", err)
	}

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("got %d/%d events, want 1/1", len(a.events), len(b.events))
	}
}

func TestMultiNotifier_ContinuesOnError(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("boom")}
	ok := &recordingNotifier{}

	n := NewMultiNotifier(failing, ok)
	n.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	err := n.Notify(context.Background(), Event{Type: EventGenerationFailed})
	if err == nil {
		t.Error("Notify() should surface the failing notifier's error")
	}
	if len(ok.events) != 1 {
		t.Errorf("second notifier got %d events, want 1", len(ok.events))
	}
}

// =============================================================================
// Context Injection Tests
// =============================================================================

func TestNotifierContext(t *testing.T) {
	ctx := context.Background()

	if got := NotifierFromContext(ctx); got != nil {
		t.Errorf("NotifierFromContext on empty context = %v, want nil", got)
	}

	n := NopNotifier{}
	ctx = WithNotifier(ctx, n)

	if got := NotifierFromContext(ctx); got == nil {
		t.Error("NotifierFromContext should return the injected notifier")
	}
}
