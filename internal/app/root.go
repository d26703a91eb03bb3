package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/paperctl/internal/clipboard"
	"github.com/blackwell-systems/paperctl/internal/config"
	"github.com/blackwell-systems/paperctl/internal/tui"
	"github.com/blackwell-systems/paperctl/internal/util"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paperctl",
		Short: "Browse and manage a session catalog of research papers",
		Long: `paperctl keeps an in-memory catalog of research papers for one session.

Upload, edit, delete, download and share papers, or generate a new one
from a Research, Review or Technical template. Nothing is persisted:
every session starts from the seed catalog.

Run 'paperctl' with no arguments in a terminal for the interactive
session, or 'paperctl serve' for the web page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runSession(cmd)
			}
			return runList(cmd, listOptions{})
		},
	}

	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/paperctl/config.yml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// The session owns the terminal, so it only logs to a file.
		interactive := cmd == cmd.Root() && tui.ShouldUseTUI(cmd)
		logger, err = newLogger(cfg.Log, interactive)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		return nil
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}

	root.AddCommand(
		newListCmd(),
		newTemplatesCmd(),
		newExportCmd(),
		newServeCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func runSession(cmd *cobra.Command) error {
	ctl, err := newController(controllerDeps{clipboard: clipboard.System{}})
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), ctl)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
