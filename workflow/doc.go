// Package workflow provides submission state management and node
// implementations for the generation pipeline.
//
// Core types:
//   - State: Submission state with requirement, payload, and artifact data
//   - StateRequirement: Prerequisites a node can validate before running
//
// Pipeline nodes:
//   - GenerateNode: Submits the requirement to the generation service
//   - MaterializeNode: Stores the returned archive as the current artifact
//   - NotifyNode: Sends completion/failure notifications
//
// Run executes the standard pipeline (generate -> materialize ->
// notify) over a flowgraph; custom graphs can compose the nodes
// directly.
//
// Example usage:
//
//	state := workflow.NewState("Build a CLI tool for tracking TODOs")
//	final, err := workflow.Run(ctx, state)
package workflow
