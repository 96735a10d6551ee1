// Package artifact manages the downloadable result of a generation
// request.
//
// Core types:
//   - Manager: holds at most one artifact at a time
//   - Artifact: archive bytes on disk plus a display filename
//
// The backing file is a finite resource with an explicit lifetime: it
// is removed when a new artifact supersedes it and when the manager is
// closed, and never more than once. Releasing an absent or
// already-released artifact is a safe no-op.
//
// Example usage:
//
//	mgr, err := artifact.NewManager(artifact.Config{})
//	defer mgr.Close()
//
//	art, err := mgr.Materialize("cli.zip", data)
//	meta, rc, err := mgr.Open()
package artifact
