package context

import (
	"context"

	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/client"
)

// =============================================================================
// Context Injection Helpers
// =============================================================================
// These helpers allow genforge services to be injected into context.Context
// for use by flowgraph nodes.

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

// Context keys for genforge services
const (
	clientServiceKey   serviceContextKey = "genforge.client"
	artifactServiceKey serviceContextKey = "genforge.artifacts"
)

// WithClient adds a generation client to the context
func WithClient(ctx context.Context, c *client.Client) context.Context {
	return context.WithValue(ctx, clientServiceKey, c)
}

// Client extracts the generation client from context
func Client(ctx context.Context) *client.Client {
	if c, ok := ctx.Value(clientServiceKey).(*client.Client); ok {
		return c
	}
	return nil
}

// MustClient extracts the generation client or panics
func MustClient(ctx context.Context) *client.Client {
	c := Client(ctx)
	if c == nil {
		panic("genforge/context: client.Client not found in context")
	}
	return c
}

// WithArtifact adds an artifact manager to the context
func WithArtifact(ctx context.Context, mgr *artifact.Manager) context.Context {
	return context.WithValue(ctx, artifactServiceKey, mgr)
}

// Artifact extracts artifact manager from context
func Artifact(ctx context.Context) *artifact.Manager {
	if mgr, ok := ctx.Value(artifactServiceKey).(*artifact.Manager); ok {
		return mgr
	}
	return nil
}

// MustArtifact extracts artifact manager or panics
func MustArtifact(ctx context.Context) *artifact.Manager {
	mgr := Artifact(ctx)
	if mgr == nil {
		panic("genforge/context: artifact.Manager not found in context")
	}
	return mgr
}
