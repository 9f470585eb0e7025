package popover

import (
	"log/slog"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
	"github.com/vango-dev/popover/pkg/overlay"
	"github.com/vango-dev/popover/pkg/position"
	"github.com/vango-dev/popover/pkg/sched"
	"github.com/vango-dev/popover/pkg/visibility"
)

// State is the visibility snapshot consumed by the overlay host.
// ArrowRotation and TransformOrigin are only meaningful while IsOpen.
type State struct {
	IsOpen          bool
	ArrowRotation   float64
	TransformOrigin string
}

// RenderProps is the output of one render pass: the wrapped target to
// place into the host tree, and the overlay props for the panel.
type RenderProps struct {
	Target  *dom.VNode
	Overlay overlay.Props
}

// Popover is one popover instance. It is single-threaded: all calls
// must come from the host's event loop. Timer callbacks re-enter
// through the configured clock (wrap it with sched.Dispatched when the
// clock fires on another goroutine).
type Popover struct {
	logger     *slog.Logger
	clock      sched.Clock
	doc        *dom.Document
	positioner position.Positioner

	opts Options
	ctrl *visibility.Controller

	// releaseDoc is the held document-listener capability, non-nil
	// exactly while the popover is open.
	releaseDoc func()

	// overContent tracks whether the pointer is over the content
	// panel, for the plain-hover leave rule.
	overContent bool

	targetRect  position.Rect
	contentRect position.Rect
	placement   position.Placement

	disposed bool
}

// Option configures collaborators at construction.
type Option func(*Popover)

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Popover) { p.logger = logger }
}

// WithClock sets the timer clock. Defaults to the system clock.
func WithClock(clock sched.Clock) Option {
	return func(p *Popover) { p.clock = clock }
}

// WithDocument sets the shared document event registry. Defaults to a
// private one; hosts with many popovers share a single Document so
// outside clicks reach every open instance.
func WithDocument(doc *dom.Document) Option {
	return func(p *Popover) { p.doc = doc }
}

// WithPositioner sets the positioner. Defaults to position.Basic.
func WithPositioner(pos position.Positioner) Option {
	return func(p *Popover) { p.positioner = pos }
}

// New creates a popover from cfg. It returns an error only for a
// configuration without a target; other structural problems warn and
// degrade (see Config).
func New(cfg Config, opts ...Option) (*Popover, error) {
	p := &Popover{
		logger:     slog.Default(),
		clock:      sched.System(),
		positioner: position.Basic{Gap: 8},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.doc == nil {
		p.doc = dom.NewDocument()
	}

	o, err := reconcile(cfg, p.logger)
	if err != nil {
		return nil, err
	}
	p.opts = o
	p.ctrl = visibility.New(p.visibilityConfig(o), p.clock, p.logger)
	return p, nil
}

// Update replaces the configuration. In controlled mode this is how
// the caller forces the popover open or closed.
func (p *Popover) Update(cfg Config) error {
	if p.disposed {
		return nil
	}
	o, err := reconcile(cfg, p.logger)
	if err != nil {
		return err
	}
	p.opts = o
	p.ctrl.Reconfigure(p.visibilityConfig(o))
	return nil
}

// Dispose tears the popover down: outstanding timers are cancelled
// before any further processing and the document listener is released.
func (p *Popover) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.ctrl.Dispose()
	p.releaseDocListener()
}

// IsOpen reports whether the panel is currently mounted.
func (p *Popover) IsOpen() bool {
	return p.ctrl.IsOpen()
}

// State returns the current visibility snapshot.
func (p *Popover) State() State {
	return State{
		IsOpen:          p.ctrl.IsOpen(),
		ArrowRotation:   p.placement.Rotation,
		TransformOrigin: p.placement.TransformOrigin,
	}
}

// SetGeometry updates target and content rects, recomputing placement
// when open.
func (p *Popover) SetGeometry(target, content position.Rect) {
	p.targetRect = target
	p.contentRect = content
	if p.ctrl.IsOpen() {
		p.placement = p.positioner.Place(p.targetRect, p.contentRect, p.opts.Side)
	}
}

// Open requests an immediate open, as if by interaction.
func (p *Popover) Open() {
	if p.disposed {
		return
	}
	p.ctrl.RequestOpen(nil)
}

// Close requests an immediate close, as if by interaction.
func (p *Popover) Close() {
	if p.disposed {
		return
	}
	p.ctrl.RequestClose(nil)
}

// Deliver routes a raw host event through the interaction classifier.
// The DOM bindings produced by Render call this internally; non-DOM
// hosts (a WebSocket bridge, tests) may call it directly.
func (p *Popover) Deliver(ev interaction.Event, src interaction.Source, raw *dom.Event) {
	if p.disposed {
		return
	}

	ctx := interaction.Context{
		Open:              p.ctrl.IsOpen(),
		Disabled:          p.opts.Disabled || p.opts.Degraded,
		OpenOnTargetFocus: p.opts.OpenOnTargetFocus,
		AutoFocus:         p.opts.AutoFocus,
		CanEscapeKeyClose: p.opts.CanEscapeKeyClose,
		OverContent:       p.overContent,
	}

	switch interaction.Classify(p.opts.Kind, ev, src, ctx) {
	case interaction.Open:
		if ev.Debounced() {
			p.ctrl.RequestOpenDelayed(raw)
		} else {
			p.ctrl.RequestOpen(raw)
		}
	case interaction.Close:
		if ev.Debounced() {
			p.ctrl.RequestCloseDelayed(raw)
		} else {
			p.ctrl.RequestClose(raw)
		}
	}
}

// visibilityConfig bridges reconciled options into the controller's
// configuration, wiring the mount callbacks to placement computation
// and the document-listener capability.
func (p *Popover) visibilityConfig(o Options) visibility.Config {
	return visibility.Config{
		Controlled:      o.Controlled,
		IsOpen:          o.IsOpen,
		Disabled:        o.Disabled || o.Degraded,
		HoverOpenDelay:  o.HoverOpenDelay,
		HoverCloseDelay: o.HoverCloseDelay,
		Hooks: visibility.Hooks{
			WillOpen:  o.WillOpen,
			DidOpen:   o.DidOpen,
			WillClose: o.WillClose,
		},
		OnInteraction: o.OnInteraction,
		OnClose:       o.OnClose,
		OnMount:       p.mounted,
		OnUnmount:     p.unmounted,
	}
}

// mounted runs when the panel becomes visible.
func (p *Popover) mounted() {
	p.placement = p.positioner.Place(p.targetRect, p.contentRect, p.opts.Side)
	if p.releaseDoc == nil {
		p.releaseDoc = p.doc.AddMouseDown(p.documentMouseDown)
	}
}

// unmounted runs when the panel is hidden.
func (p *Popover) unmounted() {
	p.overContent = false
	p.releaseDocListener()
}

func (p *Popover) releaseDocListener() {
	if p.releaseDoc != nil {
		p.releaseDoc()
		p.releaseDoc = nil
	}
}

// documentMouseDown handles the shared document-level listener. Each
// instance only reacts to events outside its own target and content.
func (p *Popover) documentMouseDown(ev *dom.Event) {
	if ev != nil && ev.Inside {
		return
	}
	p.Deliver(interaction.EventMouseDown, interaction.SourceDocument, ev)
}
