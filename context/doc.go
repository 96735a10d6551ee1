// Package context provides dependency injection for pipeline services.
//
// Core types:
//   - Services: Collection of all genforge services for injection
//
// Context injection functions:
//   - WithClient/Client: Generation client injection
//   - WithArtifact/Artifact: Artifact manager injection
//   - notify.WithNotifier/NotifierFromContext: Notifier injection
//
// Example usage:
//
//	services := &context.Services{
//	    Client:    gen,
//	    Artifacts: store,
//	    Notifier:  webhookNotifier,
//	}
//	ctx := services.InjectAll(ctx)
//
//	// Later, retrieve services
//	gen := context.Client(ctx)
//	store := context.Artifact(ctx)
package context
