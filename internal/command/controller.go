// Package command implements the catalog's user actions. Each action takes
// a plain input struct, mutates or reads the store, reports through the
// notifier, and returns a result or an error. Nothing here knows about the
// terminal or the browser.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/blackwell-systems/paperctl/internal/catalog"
	"github.com/blackwell-systems/paperctl/internal/clipboard"
	"github.com/blackwell-systems/paperctl/internal/metrics"
	"github.com/blackwell-systems/paperctl/internal/notify"
	"github.com/blackwell-systems/paperctl/internal/templates"
)

// DefaultShareBaseURL is the prefix of generated share links.
const DefaultShareBaseURL = "https://raddaran-paper.com/share"

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Store        *catalog.Store
	Templates    *templates.Catalog
	Notifier     *notify.Notifier
	Delayer      Delayer
	Clipboard    clipboard.Writer
	Latency      *Latency
	ShareBaseURL string
	Logger       *zap.Logger
	Metrics      *metrics.Recorder
	Now          func() time.Time
}

// Controller owns one session's catalog and runs commands against it.
type Controller struct {
	store     *catalog.Store
	templates *templates.Catalog
	notifier  *notify.Notifier
	delayer   Delayer
	clipboard clipboard.Writer
	latency   Latency
	shareBase string
	log       *zap.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	mu        sync.Mutex
	busy      map[string]int
	listeners []func()
}

// New builds a controller from opts.
func New(opts Options) *Controller {
	c := &Controller{
		store:     opts.Store,
		templates: opts.Templates,
		notifier:  opts.Notifier,
		delayer:   opts.Delayer,
		clipboard: opts.Clipboard,
		latency:   DefaultLatency(),
		shareBase: strings.TrimRight(opts.ShareBaseURL, "/"),
		log:       opts.Logger,
		metrics:   opts.Metrics,
		now:       opts.Now,
		busy:      make(map[string]int),
	}
	if c.store == nil {
		c.store = catalog.NewStore(catalog.SeedPapers())
	}
	if c.templates == nil {
		c.templates = templates.Default()
	}
	if c.notifier == nil {
		c.notifier = notify.New(notify.DefaultDuration)
	}
	if c.delayer == nil {
		c.delayer = SleepDelayer{}
	}
	if c.clipboard == nil {
		c.clipboard = &clipboard.Memory{}
	}
	if opts.Latency != nil {
		c.latency = *opts.Latency
	}
	if c.shareBase == "" {
		c.shareBase = DefaultShareBaseURL
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.metrics.SetPapers(c.store.Len())
	return c
}

// Notifier returns the toast queue commands report to.
func (c *Controller) Notifier() *notify.Notifier { return c.notifier }

// Templates returns the template catalog used by Generate.
func (c *Controller) Templates() *templates.Catalog { return c.templates }

// Papers returns every paper in store order.
func (c *Controller) Papers() []catalog.Paper { return c.store.All() }

// OnChange registers fn to run after every successful mutation. Views use
// it to re-render.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Busy reports whether a command triggered from control is in flight.
func (c *Controller) Busy(control string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy[control] > 0
}

// BusyControls lists the controls with commands in flight, sorted.
func (c *Controller) BusyControls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.busy))
	for k := range c.busy {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ShareURL returns the share link for a paper ID.
func (c *Controller) ShareURL(id int) string {
	return fmt.Sprintf("%s/%d", c.shareBase, id)
}

// Control names for per-paper actions.
func DeleteControl(id int) string   { return fmt.Sprintf("delete:%d", id) }
func DownloadControl(id int) string { return fmt.Sprintf("download:%d", id) }
func ShareControl(id int) string    { return fmt.Sprintf("share:%d", id) }

// begin marks control busy and returns the function that clears it.
func (c *Controller) begin(control string) func() {
	c.mu.Lock()
	c.busy[control]++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.busy[control]--; c.busy[control] <= 0 {
			delete(c.busy, control)
		}
	}
}

// succeed finishes a command that worked.
func (c *Controller) succeed(name string, start time.Time, mutated bool, message string, fields ...zap.Field) {
	c.metrics.Observe(name, metrics.OutcomeSuccess, time.Since(start))
	c.log.Info("command succeeded", append([]zap.Field{zap.String("command", name)}, fields...)...)
	if mutated {
		c.metrics.SetPapers(c.store.Len())
		c.changed()
	}
	if message != "" {
		c.notifier.Success(message)
	}
}

// failed converts any error into an error toast and returns it unchanged.
func (c *Controller) failed(name, context string, start time.Time, err error) error {
	c.metrics.Observe(name, metrics.OutcomeError, time.Since(start))
	c.log.Error("command failed",
		zap.String("command", name),
		zap.String("context", context),
		zap.Error(err),
	)
	c.notifier.Fail(Message(err, context))
	return err
}

func (c *Controller) changed() {
	c.mu.Lock()
	listeners := append([]func(){}, c.listeners...)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Message returns the text shown to the user for err: its own message, or a
// generic sentence built from context when it has none.
func Message(err error, context string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return "An error occurred while " + context
}

// IsNotFound reports whether err means the paper does not exist.
func IsNotFound(err error) bool { return errors.Is(err, catalog.ErrNotFound) }

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool { return errors.Is(err, catalog.ErrValidation) }

// Find returns one paper without touching toasts or busy state.
func (c *Controller) Find(id int) (catalog.Paper, error) { return c.store.Find(id) }
