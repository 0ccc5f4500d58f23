package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <plugin>",
		Short: "Show repository metadata and local state for a plugin",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

	engine, err := newEngine()
	if err != nil {
		return err
	}

	info, err := engine.PluginInfo(context.Background(), name)
	if err != nil {
		return err
	}

	printTitle("%s", info.Name)
	w := newTable()
	fmt.Fprintf(w, "Author\t%s\n", info.Descriptor.Author)
	fmt.Fprintf(w, "Description\t%s\n", info.Descriptor.Description)
	fmt.Fprintf(w, "Version\t%s\n", info.Descriptor.Version)
	fmt.Fprintf(w, "File\t%s\n", info.Descriptor.File)
	fmt.Fprintf(w, "SHA-256\t%s\n", info.Descriptor.SHA256)
	if info.Installed {
		state := "enabled"
		if !info.Record.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(w, "Installed\tv%s (%s)\n", info.Record.Version, state)
		fmt.Fprintf(w, "Path\t%s\n", info.Record.Path)
	} else {
		fmt.Fprintf(w, "Installed\tno\n")
	}
	w.Flush()
	return nil
}
