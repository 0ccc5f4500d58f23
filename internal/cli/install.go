package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mre31/ppm/internal/core/domain"
)

func newInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "install <plugin>",
		Aliases: []string{"i"},
		Short:   "Install a plugin from the repository",
		Long: `Download a plugin, verify it against the manifest's SHA-256 digest, and
place it in the plugins directory. Nothing is written unless the digest
matches.`,
		Args: cobra.ExactArgs(1),
		RunE: runInstall,
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	engine, err := newEngine()
	if err != nil {
		return err
	}

	rec, err := engine.Install(context.Background(), name)
	if errors.Is(err, domain.ErrAlreadyInstalled) {
		printWarning("Plugin %s is already installed.", name)
		return nil
	}
	var integrityErr *domain.IntegrityError
	if errors.As(err, &integrityErr) {
		printFailure("Hash mismatch! The downloaded file may be corrupted or tampered with.")
		printNote("  Expected: %s", integrityErr.Expected)
		printNote("  Actual:   %s", integrityErr.Actual)
		return err
	}
	if err != nil {
		return err
	}

	printSuccess("Installed plugin %s (v%s) to %s", name, rec.Version, rec.Path)
	printNote("Restart Poly to load the new plugin.")
	return nil
}
