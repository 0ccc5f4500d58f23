package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mre31/ppm/internal/core/domain"
)

func newEnableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <plugin>",
		Short: "Enable an installed plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(args[0], true)
		},
	}
}

func newDisableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <plugin>",
		Short: "Disable an installed plugin without removing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(args[0], false)
		},
	}
}

func runToggle(name string, enabled bool) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	if enabled {
		err = engine.Enable(name)
	} else {
		err = engine.Disable(name)
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	if errors.Is(err, domain.ErrAlreadyInState) {
		printWarning("Plugin %s is already %s.", name, state)
		return nil
	}
	if err != nil {
		return err
	}

	printSuccess("Plugin %s is now %s.", name, state)
	printNote("Restart Poly for the change to take effect.")
	return nil
}
