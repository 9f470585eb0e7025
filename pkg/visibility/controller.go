package visibility

import (
	"log/slog"
	"time"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/sched"
)

// Phase is the controller's lifecycle phase.
type Phase uint8

const (
	PhaseClosed Phase = iota
	// PhaseOpening is transient: the will-open hook runs, then the
	// panel mounts, then the did-open hook runs.
	PhaseOpening
	PhaseOpen
	// PhaseClosing is transient: the will-close hook runs while the
	// panel is still mounted, then it unmounts.
	PhaseClosing
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// Hooks are the caller-facing lifecycle callbacks. Any of them may be
// nil; DidOpen fires even when WillOpen is absent.
type Hooks struct {
	WillOpen  func()
	DidOpen   func()
	WillClose func()
}

// Config is the controller's per-update configuration. It is replaced
// wholesale on every Reconfigure; the controller never mutates it.
type Config struct {
	// Controlled marks ownership: when true the caller supplies the
	// authoritative open value and the controller only mirrors it.
	Controlled bool

	// IsOpen is the authoritative value in controlled mode, and the
	// seed value at construction in uncontrolled mode.
	IsOpen bool

	// Disabled suppresses open transitions in uncontrolled mode.
	// Controlled mirroring bypasses it.
	Disabled bool

	// HoverOpenDelay and HoverCloseDelay debounce hover-triggered
	// requests. Zero transitions synchronously.
	HoverOpenDelay  time.Duration
	HoverCloseDelay time.Duration

	// Hooks are the lifecycle callbacks.
	Hooks Hooks

	// OnInteraction is invoked exactly once per accepted request that
	// would change the open state, with the intended next value. It
	// fires in controlled mode too, where acting on it is the caller's
	// responsibility.
	OnInteraction func(nextOpen bool, ev *dom.Event)

	// OnClose is invoked whenever a close is about to happen, before
	// the will-close hook. The event may be nil for programmatic
	// closes.
	OnClose func(ev *dom.Event)

	// OnMount and OnUnmount bridge to the overlay side: OnMount runs
	// when the panel becomes visible (acquire the document listener,
	// recompute placement), OnUnmount when it is hidden. They run for
	// mirrored transitions as well.
	OnMount   func()
	OnUnmount func()
}

// Controller is the visibility state machine. It is not safe for
// concurrent use; all calls must come from the host's single event
// loop (timer callbacks re-enter through a Dispatched clock).
type Controller struct {
	cfg      Config
	clock    sched.Clock
	logger   *slog.Logger
	phase    Phase
	timers   timerTable
	disposed bool
}

// New creates a controller seeded from cfg.IsOpen. When seeded open,
// OnMount runs immediately; lifecycle hooks and notifications do not
// fire for the initial state.
func New(cfg Config, clock sched.Clock, logger *slog.Logger) *Controller {
	if clock == nil {
		clock = sched.System()
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		cfg:    cfg,
		clock:  clock,
		logger: logger,
		phase:  PhaseClosed,
	}
	if cfg.IsOpen {
		c.phase = PhaseOpen
		if cfg.OnMount != nil {
			cfg.OnMount()
		}
	}
	return c
}

// IsOpen reports whether the panel is mounted. It stays true during
// PhaseClosing so the will-close hook observes the panel while it is
// still present.
func (c *Controller) IsOpen() bool {
	return c.phase == PhaseOpen || c.phase == PhaseClosing
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Disposed reports whether the controller has been torn down.
func (c *Controller) Disposed() bool {
	return c.disposed
}

// RequestOpen applies an open request immediately. No-op when already
// open, disabled, or disposed. In controlled mode the internal state
// is untouched and only the interaction notification fires.
func (c *Controller) RequestOpen(ev *dom.Event) {
	if c.disposed {
		return
	}
	// An accepted open supersedes any pending hover close.
	c.timers.cancel(dirClose)
	c.open(ev)
}

// RequestClose applies a close request immediately. No-op when already
// closed or disposed. In controlled mode the internal state is
// untouched and only the close/interaction notifications fire.
func (c *Controller) RequestClose(ev *dom.Event) {
	if c.disposed {
		return
	}
	c.timers.cancel(dirOpen)
	c.close(ev)
}

// RequestOpenDelayed debounces an open request through the hover open
// delay: a pending open timer is re-armed, a pending close timer is
// cancelled, and a zero delay transitions synchronously.
func (c *Controller) RequestOpenDelayed(ev *dom.Event) {
	if c.disposed {
		return
	}
	c.timers.cancel(dirClose)
	if c.phase == PhaseOpen || c.phase == PhaseOpening {
		return
	}
	c.timers.arm(c.clock, dirOpen, c.cfg.HoverOpenDelay, func() {
		c.open(ev)
	})
}

// RequestCloseDelayed debounces a close request through the hover
// close delay, symmetric to RequestOpenDelayed.
func (c *Controller) RequestCloseDelayed(ev *dom.Event) {
	if c.disposed {
		return
	}
	c.timers.cancel(dirOpen)
	if c.phase == PhaseClosed || c.phase == PhaseClosing {
		return
	}
	c.timers.arm(c.clock, dirClose, c.cfg.HoverCloseDelay, func() {
		c.close(ev)
	})
}

// Reconfigure replaces the configuration. In controlled mode the
// internal state is mirrored unconditionally from cfg.IsOpen,
// bypassing the classifier and the disabled gate: mirrored transitions
// run the lifecycle hooks and mount callbacks but never the
// interaction or close notifications. In uncontrolled mode, disabled
// turning true while open forces an immediate close.
func (c *Controller) Reconfigure(cfg Config) {
	if c.disposed {
		return
	}

	wasOpen := c.IsOpen()
	c.cfg = cfg

	if cfg.Controlled {
		// Interaction timers are meaningless once the caller owns the
		// value; a pending hover transition must not fight the mirror.
		c.timers.cancelAll()
		if cfg.IsOpen && !wasOpen {
			c.mount()
		} else if !cfg.IsOpen && wasOpen {
			c.unmount()
		}
		return
	}

	if cfg.Disabled {
		c.timers.cancel(dirOpen)
		if wasOpen {
			c.logger.Debug("popover disabled while open, forcing close")
			c.close(nil)
		}
	}
}

// Dispose tears the controller down: every outstanding timer is
// cancelled before any further processing, and all later calls are
// no-ops. Dispose does not run close hooks; teardown is not a
// transition.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.timers.cancelAll()
}

// open performs an accepted open request.
func (c *Controller) open(ev *dom.Event) {
	if c.disposed || c.cfg.Disabled {
		return
	}
	if c.phase == PhaseOpen || c.phase == PhaseOpening {
		return
	}

	if c.cfg.Controlled {
		c.notify(true, ev)
		return
	}

	c.mount()
	c.notify(true, ev)
}

// close performs an accepted close request.
func (c *Controller) close(ev *dom.Event) {
	if c.disposed {
		return
	}
	if c.phase == PhaseClosed || c.phase == PhaseClosing {
		return
	}

	if c.cfg.OnClose != nil {
		c.cfg.OnClose(ev)
	}

	if c.cfg.Controlled {
		c.notify(false, ev)
		return
	}

	c.unmount()
	c.notify(false, ev)
}

// mount runs the uncontrolled (or mirrored) open transition:
// will-open, mount, did-open.
func (c *Controller) mount() {
	c.phase = PhaseOpening
	if c.cfg.Hooks.WillOpen != nil {
		c.cfg.Hooks.WillOpen()
	}
	c.phase = PhaseOpen
	if c.cfg.OnMount != nil {
		c.cfg.OnMount()
	}
	if c.cfg.Hooks.DidOpen != nil {
		c.cfg.Hooks.DidOpen()
	}
}

// unmount runs the close transition: will-close while the panel is
// still mounted, then unmount.
func (c *Controller) unmount() {
	c.phase = PhaseClosing
	if c.cfg.Hooks.WillClose != nil {
		c.cfg.Hooks.WillClose()
	}
	c.phase = PhaseClosed
	if c.cfg.OnUnmount != nil {
		c.cfg.OnUnmount()
	}
}

// notify emits the interaction-changed notification. It always runs
// after any hook for the same transition.
func (c *Controller) notify(next bool, ev *dom.Event) {
	if c.cfg.OnInteraction != nil {
		c.cfg.OnInteraction(next, ev)
	}
}
