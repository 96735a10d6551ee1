package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/client"
	genctx "github.com/randalmurphal/genforge/context"
	"github.com/randalmurphal/genforge/notify"
	"github.com/randalmurphal/genforge/workflow"
)

// ErrSubmissionInFlight is returned by Submit while a previous submission
// is still running. The caller's session state is left untouched.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// FallbackErrorMessage is shown when a failure carries no usable message.
const FallbackErrorMessage = "project generation failed"

// Status describes what the session is currently doing.
type Status string

const (
	// StatusIdle means the session is ready to accept a submission.
	StatusIdle Status = "idle"

	// StatusSubmitting means a generation request is in flight.
	StatusSubmitting Status = "submitting"
)

// Config configures a Session.
type Config struct {
	// Client talks to the generation service. Required.
	Client *client.Client

	// Artifacts stores the generated archive. Required.
	Artifacts *artifact.Manager

	// Notifier receives generation events. Optional.
	Notifier notify.Notifier

	// Logger for session activity. Defaults to slog.Default().
	Logger *slog.Logger
}

// Session holds the requirement text a user is editing and drives
// submissions against the generation service. One session manages at
// most one artifact and at most one in-flight submission.
type Session struct {
	mu          sync.Mutex
	requirement string
	lastError   string
	status      Status

	client    *client.Client
	artifacts *artifact.Manager
	notifier  notify.Notifier
	logger    *slog.Logger
}

// New creates a Session.
func New(cfg Config) (*Session, error) {
	if cfg.Client == nil {
		return nil, errors.New("session: generation client is required")
	}
	if cfg.Artifacts == nil {
		return nil, errors.New("session: artifact manager is required")
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		status:    StatusIdle,
		client:    cfg.Client,
		artifacts: cfg.Artifacts,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

// SetRequirement replaces the requirement text.
func (s *Session) SetRequirement(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requirement = text
}

// Requirement returns the current requirement text.
func (s *Session) Requirement() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requirement
}

// LoadExample replaces the requirement text with a canned example and
// returns it.
func (s *Session) LoadExample() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requirement = ExampleRequirement
	return s.requirement
}

// Validate checks whether the current requirement text is submittable.
func (s *Session) Validate() error {
	s.mu.Lock()
	text := s.requirement
	s.mu.Unlock()
	return workflow.ValidateRequirement(text)
}

// Status returns the current session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LastError returns the message from the most recent failed submission,
// or the empty string.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Submit sends the requirement text to the generation service and
// materializes the returned archive. The text becomes the session's
// requirement. Any previously held artifact is released once the text
// validates, before the request goes out.
//
// Submit runs at most one submission at a time; a call made while
// another is in flight fails with ErrSubmissionInFlight without touching
// session state. The session always returns to StatusIdle when the
// submission finishes, whatever the outcome.
func (s *Session) Submit(ctx context.Context, text string) (*artifact.Artifact, error) {
	s.mu.Lock()
	if s.status == StatusSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.requirement = text
	s.lastError = ""
	if err := workflow.ValidateRequirement(text); err != nil {
		s.lastError = errorMessage(err)
		s.mu.Unlock()
		return nil, err
	}
	prior := s.artifacts.Current()
	if err := s.artifacts.Release(); err != nil {
		s.logger.Warn("previous artifact not fully released", "error", err)
	}
	s.status = StatusSubmitting
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.status = StatusIdle
		s.mu.Unlock()
	}()

	state := workflow.NewState(text)
	s.logger.Info("submission started", "runId", state.RunID)

	if prior != nil {
		s.sendEvent(ctx, notify.Event{
			Type:     notify.EventArtifactReleased,
			RunID:    state.RunID,
			Message:  fmt.Sprintf("released %s", prior.Filename),
			Severity: notify.SeverityInfo,
			Metadata: map[string]any{"filename": prior.Filename, "artifactId": prior.ID},
		})
	}
	s.sendEvent(ctx, notify.Event{
		Type:     notify.EventGenerationStarted,
		RunID:    state.RunID,
		Message:  "project generation started",
		Severity: notify.SeverityInfo,
	})

	services := &genctx.Services{
		Client:    s.client,
		Artifacts: s.artifacts,
		Notifier:  s.notifier,
	}
	result, err := workflow.Run(services.InjectAll(ctx), state)
	if err != nil {
		msg := errorMessage(err)
		s.mu.Lock()
		s.lastError = msg
		s.mu.Unlock()
		s.logger.Error("submission failed", "runId", state.RunID, "error", err)
		s.sendEvent(ctx, notify.Event{
			Type:     notify.EventGenerationFailed,
			RunID:    state.RunID,
			Message:  msg,
			Severity: notify.SeverityError,
		})
		return nil, err
	}

	art := s.artifacts.Current()
	s.logger.Info("submission completed",
		"runId", result.RunID,
		"filename", result.Filename,
		"bytes", result.ArtifactSize,
		"duration", result.Duration,
	)
	return art, nil
}

// Snapshot captures the session state for display.
type Snapshot struct {
	Requirement string             `json:"requirement"`
	Status      Status             `json:"status"`
	Error       string             `json:"error,omitempty"`
	Artifact    *artifact.Artifact `json:"artifact,omitempty"`
}

// Snapshot returns a point-in-time view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Requirement: s.requirement,
		Status:      s.status,
		Error:       s.lastError,
	}
	s.mu.Unlock()

	snap.Artifact = s.artifacts.Current()
	return snap
}

// OpenArtifact opens the held artifact for reading.
func (s *Session) OpenArtifact() (*artifact.Artifact, io.ReadCloser, error) {
	return s.artifacts.Open()
}

// Close releases the held artifact and any resources owned by the
// artifact manager.
func (s *Session) Close() error {
	return s.artifacts.Close()
}

// sendEvent delivers evt on a best-effort basis. Notification failures
// never affect the submission outcome.
func (s *Session) sendEvent(ctx context.Context, evt notify.Event) {
	evt.Timestamp = time.Now()
	if err := s.notifier.Notify(ctx, evt); err != nil {
		s.logger.Warn("notification not delivered", "runId", evt.RunID, "type", evt.Type, "error", err)
	}
}

// errorMessage renders err for display, substituting a generic message
// when the error text is blank.
func errorMessage(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return FallbackErrorMessage
	}
	return msg
}
