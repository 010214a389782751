// Package cli implements the sigplace command line with cobra.
//
// Commands reach core services through package-level driving ports. The
// composition root either sets them directly with SetServices or installs
// a Bootstrapper that builds them once the global flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired by the composition root.
var (
	placementService  driving.PlacementService
	submissionService driving.SubmissionService
	settingsService   driving.SettingsService
	documentWatcher   driven.DocumentWatcher
)

// Global flags.
var (
	verboseFlag bool
	dataDirFlag string
	memoryFlag  bool
)

// Options are the global flags handed to the Bootstrapper.
type Options struct {
	// DataDir overrides ~/.sigplace for config and the session database.
	DataDir string

	// Memory keeps sessions and settings in memory for this run only.
	Memory bool
}

// Services groups the ports commands depend on.
type Services struct {
	Placement  driving.PlacementService
	Submission driving.SubmissionService
	Settings   driving.SettingsService
	Watcher    driven.DocumentWatcher
}

// Bootstrapper builds services from the global flags. The returned cleanup
// runs after the command finishes.
type Bootstrapper func(opts Options) (*Services, func() error, error)

var (
	bootstrap Bootstrapper
	cleanup   func() error
)

var rootCmd = &cobra.Command{
	Use:   "sigplace",
	Short: "Place signature boxes on PDF pages",
	Long: `sigplace positions signature placeholders on the pages of a PDF and
hands them to a signing API.

Placeholders are edited in screen space (top-left origin, zoomed) and stored
in PDF document space (bottom-left origin, unscaled), so positions survive
any zoom level.`,
	SilenceUsage:      true,
	PersistentPreRunE: runRootPreRun,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if cleanup == nil {
			return nil
		}
		fn := cleanup
		cleanup = nil
		return fn()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory for config and sessions (default ~/.sigplace)")
	rootCmd.PersistentFlags().BoolVar(&memoryFlag, "memory", false, "keep sessions and settings in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices wires the ports directly, bypassing any Bootstrapper.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	placementService = s.Placement
	submissionService = s.Submission
	settingsService = s.Settings
	documentWatcher = s.Watcher
}

// SetBootstrap installs a Bootstrapper that runs before each command.
func SetBootstrap(b Bootstrapper) {
	bootstrap = b
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runRootPreRun(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)
	if bootstrap == nil {
		return nil
	}

	logger.Section("Bootstrap")
	services, fn, err := bootstrap(Options{DataDir: dataDirFlag, Memory: memoryFlag})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	cleanup = fn
	return nil
}

// commandContext returns the command's context, or Background when run
// without ExecuteContext.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func requirePlacement() error {
	if placementService == nil {
		return errors.New("placement service not configured")
	}
	return nil
}
