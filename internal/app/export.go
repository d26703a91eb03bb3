package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/config"
	"github.com/blackwell-systems/paperctl/internal/render"
	"github.com/blackwell-systems/paperctl/internal/util"
)

// Export formats.
const (
	formatYAML   = "yaml"
	formatJSON   = "json"
	formatBibTeX = "bibtex"
)

var exportFormats = []string{formatYAML, formatJSON, formatBibTeX}

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
		query  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the seed catalog as YAML, JSON or BibTeX",
		Long: `Export the papers a session starts with.

The YAML output can be used as catalog.seed_file for later sessions.

Examples:
  paperctl export --format bibtex
  paperctl export --format yaml --output ~/papers/seed.yml
  paperctl export --format json --query learning`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := newController(controllerDeps{})
			if err != nil {
				return err
			}
			defer ctl.Notifier().Close()

			papers := ctl.Search(query)
			data, err := encodeExport(papers, format)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			path := config.ExpandHome(output)
			if err := util.WriteFileAtomic(path, data, 0644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			ok("Exported %d papers to %s", len(papers), path)
			fmt.Printf("  sha256: %s\n", util.SHA256Bytes(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: yaml, json or bibtex")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only export papers matching the query")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return exportFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func encodeExport(papers []catalog.Paper, format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return catalog.Marshal(papers)
	case formatJSON:
		data, err := json.MarshalIndent(papers, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatBibTeX:
		return []byte(render.BibTeX(papers)), nil
	}
	return nil, fmt.Errorf("unknown export format %q (want yaml, json or bibtex)", format)
}
