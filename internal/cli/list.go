package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	var installedOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available or installed plugins",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if installedOnly {
				return runListInstalled()
			}
			return runListAvailable()
		},
	}

	cmd.Flags().BoolVarP(&installedOnly, "installed", "i", false, "list installed plugins instead of available ones")
	return cmd
}

func runListAvailable() error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	manifest, err := engine.Available(context.Background())
	if err != nil {
		return err
	}
	if len(manifest.Plugins) == 0 {
		printNote("No plugins found in the repository.")
		return nil
	}

	installed, err := engine.Installed()
	if err != nil {
		return err
	}

	printTitle("Available plugins (%d):", len(manifest.Plugins))
	w := newTable()
	fmt.Fprintln(w, "NAME\tVERSION\tSTATUS\tDESCRIPTION")
	for _, name := range manifest.Names() {
		desc := manifest.Plugins[name]
		status := "available"
		if rec, ok := installed[name]; ok {
			status = "installed v" + rec.Version
			if !rec.Enabled {
				status += " (disabled)"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, desc.Version, status, desc.Description)
	}
	w.Flush()
	return nil
}

func runListInstalled() error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	installed, err := engine.Installed()
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		printNote("No plugins installed.")
		return nil
	}

	printTitle("Installed plugins (%d):", len(installed))
	w := newTable()
	fmt.Fprintln(w, "NAME\tVERSION\tSTATE\tPATH")
	for _, name := range installed.Names() {
		rec := installed[name]
		state := "enabled"
		if !rec.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, rec.Version, state, rec.Path)
	}
	w.Flush()
	return nil
}
