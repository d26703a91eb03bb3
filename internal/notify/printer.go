package notify

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes toasts as colored terminal lines.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

// Print writes a single notification: successes to Out, warnings and
// errors to Err.
func (p Printer) Print(n Notification) {
	switch n.Kind {
	case Success:
		fmt.Fprintln(p.Out, color.GreenString("✓"), n.Message)
	case Warning:
		fmt.Fprintln(p.Err, color.YellowString("!"), n.Message)
	default:
		fmt.Fprintln(p.Err, color.RedString("✗"), n.Message)
	}
}

// Follow prints every toast shown by n until the notifier is closed or stop
// is called. It returns immediately.
func (p Printer) Follow(n *Notifier) (stop func()) {
	ch := n.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			if ev.Type == Shown {
				p.Print(ev.Notification)
			}
		}
	}()
	return func() {
		n.Unsubscribe(ch)
		<-done
	}
}
