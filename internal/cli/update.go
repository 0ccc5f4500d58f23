package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "update [plugin]",
		Aliases: []string{"up"},
		Short:   "Update one or all installed plugins",
		Long: `Re-install a plugin whose remote version differs from the installed one,
preserving its enabled/disabled state. With --all, every installed plugin is
updated independently: one failure does not stop the others.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runUpdateAll()
			}
			if len(args) == 0 {
				return fmt.Errorf("specify a plugin name or --all")
			}
			return runUpdate(args[0])
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "update every installed plugin")
	return cmd
}

func runUpdate(name string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	res, err := engine.Update(context.Background(), name)
	if err != nil {
		return err
	}

	if !res.Updated {
		printWarning("Plugin %s is already up to date (v%s).", name, res.From)
		return nil
	}
	printSuccess("Updated plugin %s from v%s to v%s.", name, res.From, res.To)
	return nil
}

func runUpdateAll() error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	results, err := engine.UpdateAll(context.Background())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		printNote("No plugins installed.")
		return nil
	}

	updated, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			printFailure("%s: %v", res.Name, res.Err)
		case res.Updated:
			updated++
			printSuccess("%s: updated v%s -> v%s", res.Name, res.From, res.To)
		default:
			skipped++
			printNote("%s: already up to date (v%s)", res.Name, res.From)
		}
	}

	printTitle("\n%d updated, %d up to date, %d failed", updated, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d plugin(s) failed to update", failed)
	}
	return nil
}
