package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/render"
)

type listOptions struct {
	query   string
	sort    string
	jsonOut bool
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List papers in the seed catalog",
		Long: `List the papers a new session starts with, filtered and sorted the
same way the interactive session and web page do.

--query matches title, author or description, ignoring case.
--sort is one of date (newest first), title or author.

Examples:
  paperctl list
  paperctl list --query learning --sort title
  paperctl list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Filter by title, author or description")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort by date, title or author")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Output as JSON")
	_ = cmd.RegisterFlagCompletionFunc("sort", completeSortKeys)
	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctl, err := newController(controllerDeps{})
	if err != nil {
		return err
	}
	defer ctl.Notifier().Close()

	cards := render.Cards(ctl.View(opts.query, catalog.ParseSortKey(opts.sort)))
	out := cmd.OutOrStdout()

	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}
	if isTerminal() {
		_, err = fmt.Fprintln(out, render.Terminal(cards, 80, -1))
		return err
	}
	_, err = fmt.Fprint(out, render.Plain(cards))
	return err
}

func completeSortKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	keys := make([]string, len(catalog.SortKeys))
	for i, k := range catalog.SortKeys {
		keys[i] = string(k)
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}
