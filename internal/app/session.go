package app

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/clipboard"
	"github.com/blackwell-systems/paperctl/internal/command"
	"github.com/blackwell-systems/paperctl/internal/config"
	"github.com/blackwell-systems/paperctl/internal/metrics"
	"github.com/blackwell-systems/paperctl/internal/notify"
	"github.com/blackwell-systems/paperctl/internal/util"
)

// controllerDeps are the pieces that differ between the terminal session,
// the web server and one-shot commands.
type controllerDeps struct {
	clipboard clipboard.Writer
	metrics   *metrics.Recorder
}

// newController builds a session from the loaded config: seed catalog,
// template overrides, latencies, toast duration and share base URL.
func newController(deps controllerDeps) (*command.Controller, error) {
	papers := catalog.SeedPapers()
	if cfg.Catalog.SeedFile != "" {
		var err error
		papers, err = catalog.Load(cfg.Catalog.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("loading seed catalog: %w", err)
		}
		logger.Debug("loaded seed catalog",
			zap.String("path", cfg.Catalog.SeedFile),
			zap.Int("papers", len(papers)),
		)
	}

	tpls, err := cfg.TemplateCatalog()
	if err != nil {
		return nil, err
	}
	latency := cfg.CommandLatency()

	return command.New(command.Options{
		Store:        catalog.NewStore(papers),
		Templates:    tpls,
		Notifier:     notify.New(cfg.Notify.Duration),
		Delayer:      command.SleepDelayer{},
		Clipboard:    deps.clipboard,
		Latency:      &latency,
		ShareBaseURL: cfg.Share.BaseURL,
		Logger:       logger,
		Metrics:      deps.metrics,
	}), nil
}

// newLogger builds a JSON production logger writing to lc.File or stderr.
// The interactive session gets a no-op logger unless a file is set.
func newLogger(lc config.LogConfig, interactive bool) (*zap.Logger, error) {
	if interactive && lc.File == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if lc.File != "" {
		if err := util.EnsureDir(filepath.Dir(lc.File)); err != nil {
			return nil, err
		}
		zc.OutputPaths = []string{lc.File}
		zc.ErrorOutputPaths = []string{lc.File}
	}
	return zc.Build()
}

// isTerminal decides between card boxes and tab-separated lines.
var isTerminal = util.IsRichTerminal
