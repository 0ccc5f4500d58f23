// Package cli wires the cobra command surface to the reconciliation engine.
// Commands map 1:1 to engine operations; all policy lives below this layer.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mre31/ppm/internal/application/services"
	"github.com/mre31/ppm/internal/config"
	"github.com/mre31/ppm/internal/core/domain"
	"github.com/mre31/ppm/internal/infrastructure/files"
	"github.com/mre31/ppm/internal/infrastructure/manifest"
	"github.com/mre31/ppm/internal/infrastructure/registry"
	"github.com/mre31/ppm/internal/logging"
)

var (
	flagConfig   string
	flagRepo     string
	flagLogLevel string
)

// NewRootCommand builds the ppm command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ppm",
		Short: "Poly Package Manager - install and manage Poly plugins",
		Long: `ppm installs plugins for the Poly shell from a central repository.

Plugins are described by a remote manifest; every download is verified
against the manifest's SHA-256 digest before it touches the plugins
directory, and the local registry tracks what is installed, at which
version, and whether it is enabled.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "path to the ppm config file")
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "override the plugin repository URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug|info|warn|error|silent)")

	rootCmd.AddCommand(newInstallCommand())
	rootCmd.AddCommand(newUninstallCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newSearchCommand())
	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newEnableCommand())
	rootCmd.AddCommand(newDisableCommand())
	rootCmd.AddCommand(newDoctorCommand())

	return rootCmd
}

// Execute runs the CLI and returns the top-level error, if any.
func Execute(version, commit, date string) error {
	return NewRootCommand(version, commit, date).Execute()
}

// ExitCode maps an error class to the process exit status: 0 for success and
// no-ops, 2 when the target plugin does not exist (remotely or locally), 1
// for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotInstalled):
		return 2
	default:
		return 1
	}
}

// newEngine assembles the engine from config and flags. Each command builds
// a fresh engine; there is no cross-command state.
func newEngine() (*services.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagRepo != "" {
		cfg.RepoURL = flagRepo
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	log := logging.New(nil, cfg.LogLevel)
	client := manifest.NewClient(cfg.RepoURL, cfg.Timeout(), cfg.RetryMax, log)
	store := registry.NewStore(cfg.RegistryPath, log)
	fileManager := files.NewManager(cfg.PluginsDir, log)

	return services.NewEngine(client, store, fileManager, log), nil
}
