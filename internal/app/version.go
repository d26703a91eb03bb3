package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion records the build version shown by 'paperctl version'.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the paperctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paperctl %s (%s)\n", appVersion, runtime.Version())
		},
	}
}
