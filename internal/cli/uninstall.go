package cli

import (
	"github.com/spf13/cobra"
)

func newUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "uninstall <plugin>",
		Aliases: []string{"un"},
		Short:   "Uninstall an installed plugin",
		Args:    cobra.ExactArgs(1),
		RunE:    runUninstall,
	}
}

func runUninstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	engine, err := newEngine()
	if err != nil {
		return err
	}

	if err := engine.Uninstall(name); err != nil {
		return err
	}

	printSuccess("Uninstalled plugin %s.", name)
	printNote("Restart Poly for the change to take effect.")
	return nil
}
