package integrationtest

import (
	"context"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
	"github.com/randalmurphal/genforge/artifact"
	"github.com/randalmurphal/genforge/notify"
	"github.com/randalmurphal/genforge/session"
	"github.com/randalmurphal/genforge/testutil"
	"github.com/randalmurphal/genforge/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerationPipeline runs the full generate -> materialize -> notify
// pipeline against a fake service.
func TestGenerationPipeline(t *testing.T) {
	svc := testutil.NewGenService()
	svc.Payload = []byte{1, 2, 3}
	svc.Disposition = `attachment; filename="cli.zip"`

	services := setupServices(t, svc)

	var captured []notify.Event
	services.Notifier = &notificationCapture{events: &captured}

	graph := flowgraph.NewGraph[workflow.State]().
		AddNode("generate", workflow.GenerateNode).
		AddNode("materialize", workflow.MaterializeNode).
		AddNode("notify", workflow.NotifyNode).
		AddEdge("generate", "materialize").
		AddEdge("materialize", "notify").
		AddEdge("notify", flowgraph.END).
		SetEntry("generate")

	compiled, err := graph.Compile()
	require.NoError(t, err)

	ctx := setupContext(t, services)
	state := workflow.NewState("Build a CLI tool")

	result, err := compiled.Run(ctx, state)
	require.NoError(t, err)

	// Verify the archive flowed through the pipeline
	assert.Equal(t, "cli.zip", result.Filename)
	assert.Equal(t, []byte{1, 2, 3}, result.Payload)
	assert.NotEmpty(t, result.ArtifactID)
	assert.EqualValues(t, 3, result.ArtifactSize)
	assert.False(t, result.HasError())

	// Verify the artifact is held and on disk
	held := services.Artifacts.Current()
	require.NotNil(t, held)
	assert.Equal(t, "cli.zip", held.Filename)

	// Verify the completion notification
	require.Len(t, captured, 1)
	assert.Equal(t, notify.EventGenerationCompleted, captured[0].Type)
	assert.Contains(t, captured[0].Message, "cli.zip")

	// Exactly one request, no retries
	assert.Equal(t, 1, svc.CallCount())
}

// TestPipelineUpstreamFailure verifies a failing service aborts the
// pipeline without materializing anything.
func TestPipelineUpstreamFailure(t *testing.T) {
	svc := testutil.NewGenService()
	svc.Status = http.StatusInternalServerError

	services := setupServices(t, svc)

	_, err := workflow.Run(services.InjectAll(context.Background()), workflow.NewState("Build a CLI tool"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	assert.False(t, services.Artifacts.Held(), "no artifact should be held after a failure")
	assert.Equal(t, 1, svc.CallCount(), "a failed request must not be retried")
}

// TestRunHelper exercises the packaged pipeline entry point.
func TestRunHelper(t *testing.T) {
	svc := testutil.NewGenService()
	services := setupServices(t, svc)

	result, err := workflow.Run(services.InjectAll(context.Background()), workflow.NewState("Build an API"))
	require.NoError(t, err)

	assert.Equal(t, "generated.zip", result.Filename)
	assert.Equal(t, "Build an API", result.Requirement)
	require.NotNil(t, services.Artifacts.Current())
}

// TestSessionSubmitAndDownload covers the whole user flow: submit, hold,
// read back.
func TestSessionSubmitAndDownload(t *testing.T) {
	svc := testutil.NewGenService()
	svc.Payload = []byte{1, 2, 3}
	svc.Disposition = `attachment; filename="cli.zip"`
	sess, _ := setupSession(t, svc)

	art, err := sess.Submit(context.Background(), "Build a CLI tool")
	require.NoError(t, err)
	assert.Equal(t, "cli.zip", art.Filename)
	assert.EqualValues(t, 3, art.Size)
	assert.Empty(t, sess.LastError())

	meta, rc, err := sess.OpenArtifact()
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, art.ID, meta.ID)

	assert.Equal(t, "Build a CLI tool", svc.LastRequirements())
}

// TestSessionWhitespaceInput verifies validation short-circuits before
// any network traffic.
func TestSessionWhitespaceInput(t *testing.T) {
	svc := testutil.NewGenService()
	sess, _ := setupSession(t, svc)

	_, err := sess.Submit(context.Background(), "   ")
	require.ErrorIs(t, err, workflow.ErrEmptyRequirement)

	assert.Zero(t, svc.CallCount(), "validation failure must not hit the service")
	assert.Equal(t, "describe your requirement first", sess.LastError())
	assert.Equal(t, session.StatusIdle, sess.Status())
}

// TestSessionUpstreamError verifies a server failure surfaces its status
// code and leaves the session clean.
func TestSessionUpstreamError(t *testing.T) {
	svc := testutil.NewGenService()
	svc.Status = http.StatusInternalServerError
	sess, dir := setupSession(t, svc)

	_, err := sess.Submit(context.Background(), "Build a CLI tool")
	require.Error(t, err)

	assert.Contains(t, sess.LastError(), "500")
	assert.Equal(t, session.StatusIdle, sess.Status())
	assert.Nil(t, sess.Snapshot().Artifact)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no artifact file should remain after a failure")
}

// TestSessionSequentialSubmissions verifies the first artifact is
// released exactly once when a second submission succeeds.
func TestSessionSequentialSubmissions(t *testing.T) {
	svc := testutil.NewGenService()
	sess, dir := setupSession(t, svc)
	ctx := context.Background()

	first, err := sess.Submit(ctx, "first project")
	require.NoError(t, err)

	second, err := sess.Submit(ctx, "second project")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the latest artifact should remain on disk")

	assert.Equal(t, 2, svc.CallCount())
}

// TestReleaseIdempotent verifies releasing twice is a safe no-op.
func TestReleaseIdempotent(t *testing.T) {
	store, err := artifact.NewManager(artifact.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Materialize("cli.zip", []byte{1, 2, 3})
	require.NoError(t, err)

	require.NoError(t, store.Release())
	require.NoError(t, store.Release(), "second release must be a no-op")
	assert.False(t, store.Held())
}

// TestFilenameResolution verifies Content-Disposition handling end to end.
func TestFilenameResolution(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		want        string
	}{
		{"quoted", `attachment; filename="api.zip"`, "api.zip"},
		{"unquoted", `attachment; filename=api.zip`, "api.zip"},
		{"uppercase param", `attachment; FILENAME="api.zip"`, "api.zip"},
		{"missing header", "", "generated-project.zip"},
		{"no filename token", "attachment", "generated-project.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewGenService()
			svc.Disposition = tt.disposition
			sess, _ := setupSession(t, svc)

			art, err := sess.Submit(context.Background(), "Build a CLI tool")
			require.NoError(t, err)
			assert.Equal(t, tt.want, art.Filename)
		})
	}
}
