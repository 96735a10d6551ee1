package context

import (
	"context"

	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/client"
	"github.com/randalmurphal/genforge/notify"
)

// Services wraps all genforge services for convenient initialization
type Services struct {
	Client    *client.Client
	Artifacts *artifact.Manager
	Notifier  notify.Notifier // Optional notification service
}

// InjectAll adds all configured services to the context
func (s *Services) InjectAll(ctx context.Context) context.Context {
	if s.Client != nil {
		ctx = WithClient(ctx, s.Client)
	}
	if s.Artifacts != nil {
		ctx = WithArtifact(ctx, s.Artifacts)
	}
	if s.Notifier != nil {
		ctx = notify.WithNotifier(ctx, s.Notifier)
	}
	return ctx
}

// Config configures NewServices
type Config struct {
	Endpoint    string // Generation service base URL (required)
	ArtifactDir string // Directory for artifact files (default: private temp dir)
}

// NewServices creates Services with common defaults
func NewServices(cfg Config) (*Services, error) {
	s := &Services{}

	s.Client = client.New(client.Config{
		BaseURL: cfg.Endpoint,
	})

	artifacts, err := artifact.NewManager(artifact.Config{
		Dir: cfg.ArtifactDir,
	})
	if err != nil {
		return nil, err
	}
	s.Artifacts = artifacts

	return s, nil
}
