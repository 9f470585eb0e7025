package popover

import (
	"testing"
	"time"

	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
	"github.com/vango-dev/popover/pkg/sched"
)

type fixture struct {
	t     *testing.T
	pop   *Popover
	clock *sched.Manual
	doc   *dom.Document
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	clock := sched.NewManual()
	doc := dom.NewDocument()
	pop, err := New(cfg,
		WithClock(clock),
		WithDocument(doc),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(pop.Dispose)

	return &fixture{t: t, pop: pop, clock: clock, doc: doc}
}

// fireTarget invokes one of the target wrapper's handlers.
func (f *fixture) fireTarget(event string, ev *dom.Event) {
	f.t.Helper()
	h := f.pop.Render().Target.Handler(event)
	if h == nil {
		f.t.Fatalf("target has no %s handler", event)
	}
	h(ev)
}

// fireContent invokes one of the content wrapper's handlers; the
// popover must be open for the content to exist.
func (f *fixture) fireContent(event string, ev *dom.Event) {
	f.t.Helper()
	content := f.pop.Render().Overlay.Content
	if content == nil {
		f.t.Fatal("content is not rendered")
	}
	h := content.Handler(event)
	if h == nil {
		f.t.Fatalf("content has no %s handler", event)
	}
	h(ev)
}

func (f *fixture) expectOpen(want bool) {
	f.t.Helper()
	if got := f.pop.IsOpen(); got != want {
		f.t.Fatalf("IsOpen = %v, want %v", got, want)
	}
}

func TestRenderedTargetBindsHandlers(t *testing.T) {
	f := newFixture(t, baseConfig())

	target := f.pop.Render().Target
	for _, event := range []string{"click", "mouseenter", "mouseleave", "focus", "blur"} {
		if target.Handler(event) == nil {
			t.Errorf("target missing %s handler", event)
		}
	}

	// Handler adds the "on" prefix itself; a pre-prefixed name must not
	// resolve to anything.
	if target.Handler("onclick") != nil {
		t.Error(`Handler("onclick") must not resolve, lookups take bare event names`)
	}
}

func TestRenderedContentBindsHandlers(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	content := f.pop.Render().Overlay.Content
	for _, event := range []string{"click", "keydown"} {
		if content.Handler(event) == nil {
			t.Errorf("content missing %s handler", event)
		}
	}
}

func TestClickToggles(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(true)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(false)
}

func TestOutsideClickCloses(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(true)

	f.doc.DispatchMouseDown(&dom.Event{Type: "mousedown"})
	f.expectOpen(false)
}

func TestOutsideClickInsideSubtreeIgnored(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.doc.DispatchMouseDown(&dom.Event{Type: "mousedown", Inside: true})
	f.expectOpen(true)
}

func TestTargetOnlyIgnoresOutsideClick(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.ClickTargetOnly
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.doc.DispatchMouseDown(&dom.Event{Type: "mousedown"})
	f.expectOpen(true)
}

func TestDocumentListenerLifecycle(t *testing.T) {
	f := newFixture(t, baseConfig())

	if n := f.doc.MouseDownListeners(); n != 0 {
		t.Fatalf("listeners before open = %d, want 0", n)
	}

	f.fireTarget("click", &dom.Event{Type: "click"})
	if n := f.doc.MouseDownListeners(); n != 1 {
		t.Fatalf("listeners while open = %d, want 1", n)
	}

	f.fireTarget("click", &dom.Event{Type: "click"})
	if n := f.doc.MouseDownListeners(); n != 0 {
		t.Fatalf("listeners after close = %d, want 0", n)
	}
}

func TestDisposeReleasesListener(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.pop.Dispose()

	if n := f.doc.MouseDownListeners(); n != 0 {
		t.Fatalf("listeners after dispose = %d, want 0", n)
	}
}

func TestHoverDelays(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	cfg.HoverOpenDelay = Duration(100 * time.Millisecond)
	cfg.HoverCloseDelay = Duration(200 * time.Millisecond)
	f := newFixture(t, cfg)

	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.expectOpen(false)
	f.clock.Advance(99 * time.Millisecond)
	f.expectOpen(false)
	f.clock.Advance(1 * time.Millisecond)
	f.expectOpen(true)

	f.fireTarget("mouseleave", &dom.Event{Type: "mouseleave"})
	f.expectOpen(true)
	f.clock.Advance(200 * time.Millisecond)
	f.expectOpen(false)
}

func TestHoverReenterCancelsClose(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	cfg.HoverOpenDelay = Duration(0)
	cfg.HoverCloseDelay = Duration(200 * time.Millisecond)
	f := newFixture(t, cfg)

	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.expectOpen(true)

	f.fireTarget("mouseleave", &dom.Event{Type: "mouseleave"})
	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.clock.Advance(time.Second)
	f.expectOpen(true)
}

func TestHoverZeroDelaysSynchronous(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	cfg.HoverOpenDelay = Duration(0)
	cfg.HoverCloseDelay = Duration(0)
	f := newFixture(t, cfg)

	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.expectOpen(true)
	if n := f.clock.Pending(); n != 0 {
		t.Fatalf("pending timers = %d, want 0", n)
	}

	f.fireTarget("mouseleave", &dom.Event{Type: "mouseleave"})
	f.expectOpen(false)
}

func TestHoverContentKeepsOpen(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	cfg.HoverOpenDelay = Duration(0)
	cfg.HoverCloseDelay = Duration(100 * time.Millisecond)
	f := newFixture(t, cfg)

	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.expectOpen(true)

	// Pointer travels target -> content: the content enter cancels the
	// pending close from the target leave.
	f.fireContent("mouseenter", &dom.Event{Type: "mouseenter"})
	f.fireTarget("mouseleave", &dom.Event{Type: "mouseleave"})
	f.clock.Advance(time.Second)
	f.expectOpen(true)

	f.fireContent("mouseleave", &dom.Event{Type: "mouseleave"})
	f.clock.Advance(100 * time.Millisecond)
	f.expectOpen(false)
}

func TestHoverTargetOnlyContentHasNoHoverHandlers(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.HoverTargetOnly
	cfg.HoverOpenDelay = Duration(0)
	cfg.HoverCloseDelay = Duration(0)
	f := newFixture(t, cfg)

	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.expectOpen(true)

	content := f.pop.Render().Overlay.Content
	if content.Handler("mouseenter") != nil {
		t.Error("target-only hover content must not bind hover handlers")
	}

	f.fireTarget("mouseleave", &dom.Event{Type: "mouseleave"})
	f.expectOpen(false)
}

func TestTargetTabIndex(t *testing.T) {
	tests := []struct {
		name  string
		kind  interaction.Kind
		focus *bool
		want  bool
	}{
		{"click", interaction.Click, nil, false},
		{"click target-only", interaction.ClickTargetOnly, nil, false},
		{"hover default", interaction.Hover, nil, true},
		{"hover target-only default", interaction.HoverTargetOnly, nil, true},
		{"hover focus off", interaction.Hover, Bool(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.InteractionKind = tt.kind
			cfg.OpenOnTargetFocus = tt.focus
			f := newFixture(t, cfg)

			child := f.pop.Render().Target.Children[0]
			_, got := child.Attribute("tabindex")
			if got != tt.want {
				t.Errorf("tabindex present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFocusOpensHoverPopover(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	f := newFixture(t, cfg)

	f.fireTarget("focus", &dom.Event{Type: "focus"})
	f.expectOpen(true)

	f.fireTarget("blur", &dom.Event{Type: "blur"})
	f.expectOpen(false)
}

func TestFocusIgnoredWhenDisabledViaOption(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	cfg.OpenOnTargetFocus = Bool(false)
	f := newFixture(t, cfg)

	f.fireTarget("focus", &dom.Event{Type: "focus"})
	f.expectOpen(false)
}

func TestBlurIgnoredWithAutoFocus(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.Hover
	cfg.AutoFocus = true
	f := newFixture(t, cfg)

	f.fireTarget("focus", &dom.Event{Type: "focus"})
	f.fireTarget("blur", &dom.Event{Type: "blur"})
	f.expectOpen(true)
}

func TestEscapeCloses(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.fireContent("keydown", &dom.Event{Type: "keydown", Key: dom.KeyEscape})
	f.expectOpen(false)
}

func TestEscapeDisabled(t *testing.T) {
	cfg := baseConfig()
	cfg.CanEscapeKeyClose = Bool(false)
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.fireContent("keydown", &dom.Event{Type: "keydown", Key: dom.KeyEscape})
	f.expectOpen(true)
}

func TestNonEscapeKeyIgnored(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.fireContent("keydown", &dom.Event{Type: "keydown", Key: "Enter"})
	f.expectOpen(true)
}

func TestDismissElementCloses(t *testing.T) {
	cfg := baseConfig()
	cfg.InteractionKind = interaction.HoverTargetOnly
	cfg.HoverOpenDelay = Duration(0)
	f := newFixture(t, cfg)

	f.fireTarget("mouseenter", &dom.Event{Type: "mouseenter"})
	f.expectOpen(true)

	// Dismiss clicks close regardless of interaction kind.
	f.fireContent("click", &dom.Event{Type: "click", Dismiss: true})
	f.expectOpen(false)
}

func TestContentClickWithoutDismissIgnored(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.fireContent("click", &dom.Event{Type: "click"})
	f.expectOpen(true)
}

func TestBackdropCloses(t *testing.T) {
	cfg := baseConfig()
	cfg.HasBackdrop = Bool(true)
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(true)

	props := f.pop.Render().Overlay
	if !props.HasBackdrop {
		t.Fatal("overlay must carry the backdrop")
	}
	h, ok := props.BackdropProps["onmousedown"].(func(*dom.Event))
	if !ok {
		t.Fatal("backdrop must bind a mousedown handler")
	}
	h(&dom.Event{Type: "mousedown"})
	f.expectOpen(false)
}

func TestControlledNeverMutates(t *testing.T) {
	var requested []bool
	cfg := baseConfig()
	cfg.IsOpen = Bool(false)
	cfg.OnInteraction = func(next bool, _ *dom.Event) { requested = append(requested, next) }
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(false)

	if len(requested) != 1 || !requested[0] {
		t.Fatalf("OnInteraction calls = %v, want [true]", requested)
	}
}

func TestControlledUpdateMirrorsState(t *testing.T) {
	var hooks []string
	cfg := baseConfig()
	cfg.IsOpen = Bool(false)
	cfg.WillOpen = func() { hooks = append(hooks, "willOpen") }
	cfg.DidOpen = func() { hooks = append(hooks, "didOpen") }
	cfg.WillClose = func() { hooks = append(hooks, "willClose") }
	f := newFixture(t, cfg)

	open := cfg
	open.IsOpen = Bool(true)
	if err := f.pop.Update(open); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.expectOpen(true)
	if n := f.doc.MouseDownListeners(); n != 1 {
		t.Fatalf("listeners while open = %d, want 1", n)
	}

	if err := f.pop.Update(cfg); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.expectOpen(false)

	want := []string{"willOpen", "didOpen", "willClose"}
	if len(hooks) != len(want) {
		t.Fatalf("hooks = %v, want %v", hooks, want)
	}
	for i := range want {
		if hooks[i] != want[i] {
			t.Fatalf("hooks = %v, want %v", hooks, want)
		}
	}
}

func TestClickTargetOnlyInteractionSequence(t *testing.T) {
	var seq []bool
	cfg := baseConfig()
	cfg.InteractionKind = interaction.ClickTargetOnly
	cfg.OnInteraction = func(next bool, _ *dom.Event) { seq = append(seq, next) }
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(true)
	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(false)

	if len(seq) != 2 || !seq[0] || seq[1] {
		t.Fatalf("OnInteraction sequence = %v, want [true false]", seq)
	}
}

func TestOutsideClickNotifiesOnce(t *testing.T) {
	var seq []bool
	cfg := baseConfig()
	cfg.OnInteraction = func(next bool, _ *dom.Event) { seq = append(seq, next) }
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.doc.DispatchMouseDown(&dom.Event{Type: "mousedown"})
	f.doc.DispatchMouseDown(&dom.Event{Type: "mousedown"})
	f.expectOpen(false)

	if len(seq) != 2 || !seq[0] || seq[1] {
		t.Fatalf("OnInteraction sequence = %v, want [true false]", seq)
	}
}

func TestDisabledBlocksOpen(t *testing.T) {
	cfg := baseConfig()
	cfg.Disabled = Bool(true)
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(false)
}

func TestDisableWhileOpenForcesClose(t *testing.T) {
	cfg := baseConfig()
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(true)

	disabled := cfg
	disabled.Disabled = Bool(true)
	if err := f.pop.Update(disabled); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.expectOpen(false)
	if n := f.doc.MouseDownListeners(); n != 0 {
		t.Fatalf("listeners after forced close = %d, want 0", n)
	}
}

func TestDegradedRefusesOpen(t *testing.T) {
	cfg := Config{Target: dom.Button("t"), Content: dom.Text("   ")}
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	f.expectOpen(false)
}

func TestDefaultIsOpenSeedsState(t *testing.T) {
	cfg := baseConfig()
	cfg.DefaultIsOpen = true
	f := newFixture(t, cfg)

	f.expectOpen(true)
	if n := f.doc.MouseDownListeners(); n != 1 {
		t.Fatalf("listeners for seeded-open popover = %d, want 1", n)
	}
}

func TestDeliverAfterDisposeIgnored(t *testing.T) {
	f := newFixture(t, baseConfig())
	target := f.pop.Render().Target

	f.pop.Dispose()
	target.Handler("click")(&dom.Event{Type: "click"})
	f.expectOpen(false)
}

func TestOnCloseReceivesEvent(t *testing.T) {
	var got *dom.Event
	cfg := baseConfig()
	cfg.OnClose = func(ev *dom.Event) { got = ev }
	f := newFixture(t, cfg)

	f.fireTarget("click", &dom.Event{Type: "click"})
	ev := &dom.Event{Type: "click"}
	f.fireTarget("click", ev)

	if got != ev {
		t.Errorf("OnClose event = %v, want the triggering event", got)
	}
}

func TestStateReflectsPlacement(t *testing.T) {
	f := newFixture(t, baseConfig())

	f.fireTarget("click", &dom.Event{Type: "click"})
	st := f.pop.State()
	if !st.IsOpen {
		t.Fatal("state must report open")
	}
	if st.TransformOrigin == "" {
		t.Error("open state must carry a transform origin")
	}
}
