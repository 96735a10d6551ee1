package workflow

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// State - Submission State
// =============================================================================

// State is the complete state for one generation submission
type State struct {
	// Identification
	RunID string `json:"runId"`

	// Input
	Requirement string    `json:"requirement"`
	SubmittedAt time.Time `json:"submittedAt"`

	// Generation output
	Filename string `json:"filename,omitempty"`
	Payload  []byte `json:"-"`

	// Materialized artifact
	ArtifactID   string        `json:"artifactId,omitempty"`
	ArtifactSize int64         `json:"artifactSize,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`

	// Error tracking
	Error string `json:"error,omitempty"`
}

// NewState creates a new submission state
func NewState(requirement string) State {
	return State{
		RunID:       generateRunID(),
		Requirement: requirement,
		SubmittedAt: time.Now(),
	}
}

// WithRunID sets a custom run ID
func (s State) WithRunID(runID string) State {
	s.RunID = runID
	return s
}

// FinalizeDuration sets total duration from submission time
func (s *State) FinalizeDuration() {
	s.Duration = time.Since(s.SubmittedAt)
}

// SetError sets the error state
func (s *State) SetError(err error) {
	if err != nil {
		s.Error = err.Error()
	}
}

// HasError returns true if state has an error
func (s State) HasError() bool {
	return s.Error != ""
}

// =============================================================================
// Requirement Validation
// =============================================================================

// ErrEmptyRequirement is returned when the requirement text is blank
// after trimming whitespace. Its message doubles as the user-facing
// prompt.
var ErrEmptyRequirement = errors.New("describe your requirement first")

// ValidateRequirement checks that requirement text is usable for
// submission. Detected before any network activity.
func ValidateRequirement(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyRequirement
	}
	return nil
}

// =============================================================================
// State Validation
// =============================================================================

// StateRequirement defines a state prerequisite
type StateRequirement string

const (
	RequireRequirement StateRequirement = "requirement"
	RequirePayload     StateRequirement = "payload"
	RequireFilename    StateRequirement = "filename"
)

// Validate checks if state has required fields
func (s State) Validate(requirements ...StateRequirement) error {
	for _, req := range requirements {
		switch req {
		case RequireRequirement:
			if err := ValidateRequirement(s.Requirement); err != nil {
				return err
			}
		case RequirePayload:
			if s.Payload == nil {
				return fmt.Errorf("payload required")
			}
		case RequireFilename:
			if s.Filename == "" {
				return fmt.Errorf("filename required")
			}
		default:
			return fmt.Errorf("unknown requirement: %s", req)
		}
	}
	return nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// generateRunID creates a unique run ID
func generateRunID() string {
	timestamp := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s-gen-%s", timestamp, randomSuffix(4))
}

// randomSuffix generates a random hex suffix
func randomSuffix(bytes int) string {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based suffix on entropy failure
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// =============================================================================
// State Summary
// =============================================================================

// Summary returns a human-readable summary of the state
func (s State) Summary() string {
	var status string
	switch {
	case s.Error != "":
		status = "failed"
	case s.ArtifactID != "":
		status = "materialized"
	case s.Payload != nil:
		status = "generated"
	default:
		status = "pending"
	}

	return fmt.Sprintf("Run %s [%s]: %q", s.RunID, status, snippet(s.Requirement, 60))
}

// snippet shortens text to at most n runes for display
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
