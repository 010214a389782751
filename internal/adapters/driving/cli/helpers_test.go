package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sigplace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/services"
)

// letter is a US Letter page in PDF points.
var letter = domain.PageDims{Width: 612, Height: 792}

type stubLoader struct{}

func (stubLoader) Load(_ context.Context, path string) (*domain.Document, error) {
	if path == "/missing.pdf" {
		return nil, domain.ErrInvalidDocument
	}
	return &domain.Document{Path: path, Pages: []domain.PageDims{letter, letter}}, nil
}

type stubSubmitter struct {
	received *domain.Submission
}

func (s *stubSubmitter) Submit(_ context.Context, submission *domain.Submission) (*domain.SubmissionReceipt, error) {
	s.received = submission
	return &domain.SubmissionReceipt{DocumentID: "doc-42", Status: "pending"}, nil
}

type testEnv struct {
	placement *services.PlacementService
	settings  *services.SettingsService
	submitter *stubSubmitter
}

// setupTestServices wires in-memory services and restores the previous
// ones when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	prev := &Services{
		Placement:  placementService,
		Submission: submissionService,
		Settings:   settingsService,
		Watcher:    documentWatcher,
	}

	sessions := memory.NewSessionStore()
	settings := services.NewSettingsService(memory.NewConfigStore())
	env := &testEnv{
		placement: services.NewPlacementService(stubLoader{}, sessions, settings),
		settings:  settings,
		submitter: &stubSubmitter{},
	}
	SetServices(&Services{
		Placement:  env.placement,
		Submission: services.NewSubmissionService(sessions, env.submitter),
		Settings:   settings,
	})

	t.Cleanup(func() {
		placementService = prev.Placement
		submissionService = prev.Submission
		settingsService = prev.Settings
		documentWatcher = prev.Watcher
	})
	return env
}

// clearServices leaves every port unset for the duration of the test.
func clearServices(t *testing.T) {
	t.Helper()
	setupTestServices(t)
	placementService = nil
	submissionService = nil
	settingsService = nil
}

// resetFlags restores every flag to its default so values do not leak
// between executions of the shared root command.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// newSession creates a session with Alice and Bob.
func (e *testEnv) newSession(t *testing.T) (*domain.PlacementSession, *domain.Recipient, *domain.Recipient) {
	t.Helper()
	ctx := context.Background()
	session, err := e.placement.CreateSession(ctx, "/docs/lease.pdf")
	require.NoError(t, err)
	alice, err := e.placement.AddRecipient(ctx, session.ID, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := e.placement.AddRecipient(ctx, session.ID, "Bob", "bob@example.com")
	require.NoError(t, err)
	return session, alice, bob
}

func (e *testEnv) session(t *testing.T, id string) *domain.PlacementSession {
	t.Helper()
	session, err := e.placement.GetSession(context.Background(), id)
	require.NoError(t, err)
	return session
}
