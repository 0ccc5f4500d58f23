package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search repository plugins by name or description",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	engine, err := newEngine()
	if err != nil {
		return err
	}

	matches, err := engine.Search(context.Background(), keyword)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		printNote("No plugins found matching %q.", keyword)
		return nil
	}

	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)

	printTitle("Plugins matching %q:", keyword)
	w := newTable()
	fmt.Fprintln(w, "NAME\tVERSION\tDESCRIPTION")
	for _, name := range names {
		desc := matches[name]
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, desc.Version, desc.Description)
	}
	w.Flush()
	return nil
}
