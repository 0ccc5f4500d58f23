package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mre31/ppm/internal/application/services"
)

func newDoctorCommand() *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check installed plugins for missing or corrupted files",
		Long: `Verify every registry entry: the plugin file must exist, be readable, and
still hash to the digest recorded at install time. With --repair, registry
entries for missing files are dropped and corrupted files are re-fetched
from the repository. Plugin files themselves are never deleted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(repair)
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "repair the problems doctor finds")
	return cmd
}

func runDoctor(repair bool) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	findings, err := engine.Doctor(context.Background(), repair)
	if err != nil {
		return err
	}
	if len(findings) == 0 {
		printSuccess("All installed plugins are healthy.")
		return nil
	}

	unresolved := 0
	for _, f := range findings {
		switch {
		case f.Repaired:
			printSuccess("%s: %s (repaired)", f.Name, describeProblem(f))
		case f.Err != nil:
			unresolved++
			printFailure("%s: %s: %v", f.Name, describeProblem(f), f.Err)
		default:
			unresolved++
			printWarning("%s: %s", f.Name, describeProblem(f))
		}
	}

	if unresolved > 0 {
		if !repair {
			printNote("Run 'ppm doctor --repair' to fix these problems.")
		}
		return fmt.Errorf("%d plugin(s) need attention", unresolved)
	}
	return nil
}

func describeProblem(f services.DoctorFinding) string {
	switch f.Problem {
	case services.ProblemMissingFile:
		return fmt.Sprintf("file %s is missing", f.Path)
	case services.ProblemHashMismatch:
		return fmt.Sprintf("file %s does not match its recorded digest", f.Path)
	case services.ProblemUnreadable:
		return fmt.Sprintf("file %s cannot be read", f.Path)
	default:
		return string(f.Problem)
	}
}
