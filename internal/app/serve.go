package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/blackwell-systems/paperctl/internal/clipboard"
	"github.com/blackwell-systems/paperctl/internal/metrics"
	"github.com/blackwell-systems/paperctl/internal/notify"
	"github.com/blackwell-systems/paperctl/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog page and JSON API",
		Long: `Start a web session. The page at / lists papers with search, sort,
upload, generate, edit, delete, download and share; toasts are pushed
over a websocket. Prometheus metrics are exposed at /metrics.

Share links are returned to the browser, which copies them to its own
clipboard.

Examples:
  paperctl serve
  paperctl serve --port 9000
  PAPERCTL_SERVE_HOST=0.0.0.0 paperctl serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				cfg.Serve.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Serve.Port = port
			}
			if !logger.Core().Enabled(zapcore.DebugLevel) {
				gin.SetMode(gin.ReleaseMode)
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			ctl, err := newController(controllerDeps{
				clipboard: &clipboard.Memory{},
				metrics:   metrics.New(reg),
			})
			if err != nil {
				return err
			}
			defer ctl.Notifier().Close()

			stop := notify.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}.Follow(ctl.Notifier())
			defer stop()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			addr := cfg.Addr()
			header("paperctl serving on http://%s", addr)
			srv := server.New(server.Options{Controller: ctl, Gatherer: reg, Logger: logger})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (default from serve.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from serve.port)")
	return cmd
}
