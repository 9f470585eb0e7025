package ptest

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	popover "github.com/vango-dev/popover"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/overlay"
	"github.com/vango-dev/popover/pkg/sched"
)

// Harness drives one popover instance through its rendered event
// bindings with a deterministic clock.
type Harness struct {
	t *testing.T

	// Pop is the popover under test.
	Pop *popover.Popover

	// Clock is the manual clock; advance it to fire hover timers.
	Clock *sched.Manual

	// Doc is the document registry used for outside-click delivery.
	Doc *dom.Document

	// Host receives overlay props on every Sync. Defaults to a
	// recorder whose last value Overlay returns; replace it to test a
	// custom overlay host.
	Host overlay.Host

	interactions []bool
	lastOverlay  overlay.Props
}

// New creates a harness around a fresh popover. The harness wraps the
// config's OnInteraction so recorded intents (see Interactions) still
// reach the caller's handler. The popover is disposed via t.Cleanup.
func New(t *testing.T, cfg popover.Config) *Harness {
	t.Helper()

	h := &Harness{
		t:     t,
		Clock: sched.NewManual(),
		Doc:   dom.NewDocument(),
	}
	h.Host = overlay.HostFunc(func(p overlay.Props) { h.lastOverlay = p })

	inner := cfg.OnInteraction
	cfg.OnInteraction = func(nextOpen bool, ev *dom.Event) {
		h.interactions = append(h.interactions, nextOpen)
		if inner != nil {
			inner(nextOpen, ev)
		}
	}

	pop, err := popover.New(cfg,
		popover.WithClock(h.Clock),
		popover.WithDocument(h.Doc),
		popover.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("ptest: New: %v", err)
	}
	t.Cleanup(pop.Dispose)

	h.Pop = pop
	return h
}

// Render returns the current render output.
func (h *Harness) Render() popover.RenderProps {
	return h.Pop.Render()
}

// Update replaces the popover configuration, re-wrapping OnInteraction
// so intent recording continues.
func (h *Harness) Update(cfg popover.Config) {
	h.t.Helper()

	inner := cfg.OnInteraction
	cfg.OnInteraction = func(nextOpen bool, ev *dom.Event) {
		h.interactions = append(h.interactions, nextOpen)
		if inner != nil {
			inner(nextOpen, ev)
		}
	}

	if err := h.Pop.Update(cfg); err != nil {
		h.t.Fatalf("ptest: Update: %v", err)
	}
}

// Sync pushes the current overlay props through the harness host, the
// way a rendering host would after a state change.
func (h *Harness) Sync() {
	h.Host.Apply(h.Pop.Render().Overlay)
}

// Overlay returns the overlay props most recently applied to the
// default recording host, after syncing once more.
func (h *Harness) Overlay() overlay.Props {
	h.Sync()
	return h.lastOverlay
}

// Advance moves the clock forward, firing any due hover timers.
func (h *Harness) Advance(d time.Duration) {
	h.Clock.Advance(d)
}

// Interactions returns the intended open-state changes reported
// through OnInteraction, in order.
func (h *Harness) Interactions() []bool {
	return h.interactions
}

// ClickTarget delivers a click on the target.
func (h *Harness) ClickTarget() { h.fireTarget("click", &dom.Event{Type: "click"}) }

// EnterTarget delivers a mouseenter on the target.
func (h *Harness) EnterTarget() { h.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"}) }

// LeaveTarget delivers a mouseleave on the target.
func (h *Harness) LeaveTarget() { h.fireTarget("mouseleave", &dom.Event{Type: "mouseleave"}) }

// FocusTarget delivers a focus on the target.
func (h *Harness) FocusTarget() { h.fireTarget("focus", &dom.Event{Type: "focus"}) }

// BlurTarget delivers a blur on the target.
func (h *Harness) BlurTarget() { h.fireTarget("blur", &dom.Event{Type: "blur"}) }

// EnterContent delivers a mouseenter on the content panel.
func (h *Harness) EnterContent() { h.fireContent("mouseenter", &dom.Event{Type: "mouseenter"}) }

// LeaveContent delivers a mouseleave on the content panel.
func (h *Harness) LeaveContent() { h.fireContent("mouseleave", &dom.Event{Type: "mouseleave"}) }

// PressEscape delivers an Escape keydown on the content panel.
func (h *Harness) PressEscape() {
	h.fireContent("keydown", &dom.Event{Type: "keydown", Key: dom.KeyEscape})
}

// ClickDismiss delivers a click on a dismiss-marked element inside the
// content panel.
func (h *Harness) ClickDismiss() {
	h.fireContent("click", &dom.Event{Type: "click", Dismiss: true})
}

// MouseDownOutside delivers a document-level mousedown outside the
// popover's subtree.
func (h *Harness) MouseDownOutside() {
	h.Doc.DispatchMouseDown(&dom.Event{Type: "mousedown"})
}

// MouseDownBackdrop delivers a mousedown on the backdrop. The popover
// must be configured with a backdrop and be open.
func (h *Harness) MouseDownBackdrop() {
	h.t.Helper()
	props := h.Pop.Render().Overlay
	fn, ok := props.BackdropProps["onmousedown"].(func(*dom.Event))
	if !ok {
		h.t.Fatal("ptest: popover has no backdrop mousedown handler")
	}
	fn(&dom.Event{Type: "mousedown"})
}

// ExpectOpen fails the test unless the popover is open.
func (h *Harness) ExpectOpen() {
	h.t.Helper()
	if !h.Pop.IsOpen() {
		h.t.Fatal("ptest: popover is closed, want open")
	}
}

// ExpectClosed fails the test unless the popover is closed.
func (h *Harness) ExpectClosed() {
	h.t.Helper()
	if h.Pop.IsOpen() {
		h.t.Fatal("ptest: popover is open, want closed")
	}
}

func (h *Harness) fireTarget(event string, ev *dom.Event) {
	h.t.Helper()
	fn := h.Pop.Render().Target.Handler(event)
	if fn == nil {
		h.t.Fatalf("ptest: target has no %s handler", event)
	}
	fn(ev)
}

func (h *Harness) fireContent(event string, ev *dom.Event) {
	h.t.Helper()
	content := h.Pop.Render().Overlay.Content
	if content == nil {
		h.t.Fatal("ptest: content is not rendered (popover closed?)")
	}
	fn := content.Handler(event)
	if fn == nil {
		h.t.Fatalf("ptest: content has no %s handler", event)
	}
	fn(ev)
}

// ExpectContains fails the test unless the node's rendered HTML
// contains the substring.
func ExpectContains(t *testing.T, node *dom.VNode, substr string) {
	t.Helper()
	html := dom.RenderToString(node)
	if !strings.Contains(html, substr) {
		t.Errorf("rendered output %q does not contain %q", html, substr)
	}
}

// ExpectNotContains fails the test if the node's rendered HTML
// contains the substring.
func ExpectNotContains(t *testing.T, node *dom.VNode, substr string) {
	t.Helper()
	html := dom.RenderToString(node)
	if strings.Contains(html, substr) {
		t.Errorf("rendered output %q must not contain %q", html, substr)
	}
}
