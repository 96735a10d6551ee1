// Package genforge provides a client and local UI for a remote
// project-generation service: describe a project in free text, submit
// it, and download the generated archive.
//
// The package is organized into subpackages by domain:
//
//   - client: HTTP client for the generation endpoint
//   - artifact: Lifecycle of the downloadable archive (one at a time)
//   - workflow: Submission state and pipeline nodes
//   - session: Requirement text, validation, and submission orchestration
//   - server: Embedded single-page UI and JSON API
//   - notify: Notification services (log, webhook, Slack)
//   - config: Layered configuration resolution
//   - context: Service dependency injection
//   - testutil: Fake generation service for tests
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/genforge/artifact"
//	    "github.com/randalmurphal/genforge/client"
//	    "github.com/randalmurphal/genforge/session"
//	)
//
//	// Create the generation client and artifact store
//	gen := client.New(client.Config{BaseURL: "http://localhost:8000"})
//	store, _ := artifact.NewManager(artifact.Config{})
//	defer store.Close()
//
//	// Run a submission
//	sess, _ := session.New(session.Config{Client: gen, Artifacts: store})
//	art, err := sess.Submit(ctx, "Build a CLI tool for tracking TODOs")
//
// See individual package documentation for detailed usage.
package genforge
