package integrationtest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/client"
	genctx "github.com/randalmurphal/genforge/context"
	"github.com/randalmurphal/genforge/notify"
	"github.com/randalmurphal/genforge/session"
	"github.com/randalmurphal/genforge/testutil"
)

// setupServices wires a client and artifact manager to a fake generation
// service. The service and manager are torn down when the test ends.
func setupServices(t *testing.T, svc *testutil.GenService) *genctx.Services {
	t.Helper()

	server := svc.Start(t)

	store, err := artifact.NewManager(artifact.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &genctx.Services{
		Client:    client.New(client.Config{BaseURL: server.URL}),
		Artifacts: store,
	}
}

// setupContext creates a flowgraph.Context with all genforge services
// configured.
func setupContext(t *testing.T, services *genctx.Services) flowgraph.Context {
	t.Helper()

	baseCtx := services.InjectAll(context.Background())
	return flowgraph.NewContext(baseCtx)
}

// setupSession creates a session against the fake generation service.
// Returns the session and the artifact directory it writes to.
func setupSession(t *testing.T, svc *testutil.GenService) (*session.Session, string) {
	t.Helper()

	server := svc.Start(t)

	dir := t.TempDir()
	store, err := artifact.NewManager(artifact.Config{Dir: dir})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	sess, err := session.New(session.Config{
		Client:    client.New(client.Config{BaseURL: server.URL}),
		Artifacts: store,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	t.Cleanup(func() { sess.Close() })

	return sess, dir
}

// notificationCapture captures notifications for testing.
type notificationCapture struct {
	events *[]notify.Event
}

func (n *notificationCapture) Notify(ctx context.Context, event notify.Event) error {
	*n.events = append(*n.events, event)
	return nil
}
