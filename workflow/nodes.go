package workflow

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
	genctx "github.com/randalmurphal/genforge/context"
)

// GenerateNode submits the requirement text to the generation service.
//
// Prerequisites: state.Requirement must be non-blank
// Updates: state.Payload, state.Filename
func GenerateNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequireRequirement); err != nil {
		return state, err
	}

	gen := genctx.Client(ctx)
	if gen == nil {
		return state, fmt.Errorf("client.Client not found in context")
	}

	start := time.Now()
	archive, err := gen.Generate(ctx, state.Requirement)
	if err != nil {
		state.SetError(err)
		return state, err
	}

	state.Payload = archive.Data
	state.Filename = archive.Filename

	slog.Debug("generation completed",
		"runId", state.RunID,
		"filename", state.Filename,
		"bytes", len(state.Payload),
		"duration", time.Since(start))

	return state, nil
}

// MaterializeNode hands the generated payload to the artifact manager.
// The previous artifact, if any, is released by the manager before the
// new one is stored.
//
// Prerequisites: state.Payload and state.Filename must be set
// Updates: state.ArtifactID, state.ArtifactSize, state.Duration
func MaterializeNode(ctx flowgraph.Context, state State) (State, error) {
	if err := state.Validate(RequirePayload, RequireFilename); err != nil {
		return state, err
	}

	artifacts := genctx.Artifact(ctx)
	if artifacts == nil {
		return state, fmt.Errorf("artifact.Manager not found in context")
	}

	art, err := artifacts.Materialize(state.Filename, state.Payload)
	if err != nil {
		state.SetError(err)
		return state, err
	}

	state.ArtifactID = art.ID
	state.ArtifactSize = art.Size
	state.FinalizeDuration()

	slog.Debug("artifact materialized",
		"runId", state.RunID,
		"artifactId", state.ArtifactID,
		"filename", state.Filename,
		"size", state.ArtifactSize)

	return state, nil
}
