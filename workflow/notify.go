package workflow

import (
	"fmt"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
	"github.com/randalmurphal/genforge/notify"
)

// NotifyNode sends a notification based on current state.
//
// This node is typically placed at the end of a pipeline to notify
// interested parties of completion or failure. If no notifier is
// configured in the context, this is a no-op.
//
// Updates: None (only sends notification)
func NotifyNode(ctx flowgraph.Context, state State) (State, error) {
	notifier := notify.NotifierFromContext(ctx)
	if notifier == nil {
		return state, nil // No-op if no notifier
	}

	event := notify.Event{
		Type:      determineEventType(state),
		RunID:     state.RunID,
		Timestamp: time.Now(),
		Metadata:  buildMetadata(state),
	}

	// Set severity based on state
	if state.Error != "" {
		event.Severity = notify.SeverityError
		event.Message = state.Error
	} else {
		event.Severity = notify.SeverityInfo
		event.Message = fmt.Sprintf("%s is ready for download", state.Filename)
	}

	// Notify but don't fail the pipeline on notification errors
	_ = notifier.Notify(ctx, event)

	return state, nil
}

// determineEventType determines the event type from state
func determineEventType(state State) notify.EventType {
	if state.Error != "" {
		return notify.EventGenerationFailed
	}
	return notify.EventGenerationCompleted
}

// buildMetadata builds notification metadata from state
func buildMetadata(state State) map[string]any {
	meta := make(map[string]any)

	if state.Filename != "" {
		meta["filename"] = state.Filename
	}
	if state.ArtifactID != "" {
		meta["artifactId"] = state.ArtifactID
		meta["size"] = state.ArtifactSize
	}
	if state.Duration > 0 {
		meta["duration"] = state.Duration.String()
	}

	return meta
}
