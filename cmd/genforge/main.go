// genforge serves a local page for turning a plain-text requirement into
// a generated, downloadable project archive.
//
// Usage:
//
//	genforge [-listen :8080] [-endpoint http://localhost:8000]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/client"
	"github.com/randalmurphal/genforge/config"
	"github.com/randalmurphal/genforge/notify"
	"github.com/randalmurphal/genforge/server"
	"github.com/randalmurphal/genforge/session"
)

func main() {
	listen := flag.String("listen", "", "address to listen on (default :8080)")
	endpoint := flag.String("endpoint", "", "generation service base URL (default http://localhost:8000)")
	artifactDir := flag.String("artifact-dir", "", "directory for generated archives (default: private temp dir)")
	webhook := flag.String("webhook", "", "webhook URL for generation events")
	slackWebhook := flag.String("slack-webhook", "", "Slack incoming-webhook URL for generation events")
	logLevel := flag.String("log-level", "", "minimum log level: debug, info, warn or error")
	flag.Parse()

	cfg := config.Default().ResolveWithFlags(map[string]string{
		config.KeyListen:       *listen,
		config.KeyEndpoint:     *endpoint,
		config.KeyArtifactDir:  *artifactDir,
		config.KeyWebhookURL:   *webhook,
		config.KeySlackWebhook: *slackWebhook,
		config.KeyLogLevel:     *logLevel,
	})

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Get(config.KeyLogLevel)),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Resolved, logger *slog.Logger) error {
	store, err := artifact.NewManager(artifact.Config{Dir: cfg.Get(config.KeyArtifactDir)})
	if err != nil {
		return err
	}

	sess, err := session.New(session.Config{
		Client:    client.New(client.Config{BaseURL: cfg.Get(config.KeyEndpoint)}),
		Artifacts: store,
		Notifier:  buildNotifier(cfg, logger),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	srv, err := server.New(server.Config{Session: sess, Logger: logger})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.Get(config.KeyListen),
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("genforge listening",
			"addr", httpServer.Addr,
			"endpoint", cfg.Get(config.KeyEndpoint),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// buildNotifier assembles the notifier stack: log always, webhook and
// Slack when configured.
func buildNotifier(cfg *config.Resolved, logger *slog.Logger) notify.Notifier {
	notifiers := []notify.Notifier{notify.NewLogNotifier(logger)}

	if url := cfg.Get(config.KeyWebhookURL); url != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(url, nil))
	}
	if url := cfg.Get(config.KeySlackWebhook); url != "" {
		var opts []notify.SlackOption
		if channel := cfg.Get(config.KeySlackChannel); channel != "" {
			opts = append(opts, notify.WithSlackChannel(channel))
		}
		notifiers = append(notifiers, notify.NewSlackNotifier(url, opts...))
	}

	if len(notifiers) == 1 {
		return notifiers[0]
	}
	return notify.NewMultiNotifier(notifiers...)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
