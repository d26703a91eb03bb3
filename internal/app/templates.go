package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Show the paper templates available to generate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpls, err := cfg.TemplateCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tpls.All())
			}

			for _, t := range tpls.All() {
				fmt.Fprintf(out, "%s  %s\n", color.CyanString("%-10s", t.Kind), t.Name)
				fmt.Fprintf(out, "  format:   %s\n", t.Format)
				fmt.Fprintf(out, "  sections: %s\n\n", strings.Join(t.Sections, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
