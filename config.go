package popover

import (
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/popover/internal/diag"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
	"github.com/vango-dev/popover/pkg/position"
)

// Default hover delays, applied when the corresponding Config field is
// unset.
const (
	DefaultHoverOpenDelay  = 150 * time.Millisecond
	DefaultHoverCloseDelay = 300 * time.Millisecond
)

// ErrNoTarget is returned when a configuration supplies no target.
var ErrNoTarget = diag.New("P001", diag.CategoryConfig, "popover requires a target").
	WithSuggestion("supply Config.Target or a first child")

// Config is the raw, caller-facing configuration. It is supplied
// fresh on every update and never mutated. Pointer fields distinguish
// "unset" from an explicit value; use Bool and Duration for literals.
type Config struct {
	// InteractionKind selects how the popover opens and closes.
	InteractionKind interaction.Kind

	// IsOpen switches the popover into controlled mode when non-nil:
	// its presence, not its value, transfers state ownership to the
	// caller.
	IsOpen *bool

	// DefaultIsOpen seeds the open state in uncontrolled mode.
	DefaultIsOpen bool

	// Disabled suppresses opening via interaction.
	Disabled *bool

	// IsDisabled is a deprecated alias for Disabled. When both are
	// supplied, Disabled wins.
	//
	// Deprecated: use Disabled.
	IsDisabled *bool

	// HasBackdrop renders a backdrop behind the panel; clicking it
	// closes the popover.
	HasBackdrop *bool

	// IsModal is a deprecated alias for HasBackdrop. When both are
	// supplied, HasBackdrop wins.
	//
	// Deprecated: use HasBackdrop.
	IsModal *bool

	// Inline renders the panel in place instead of a portal.
	Inline bool

	// CanEscapeKeyClose enables closing with the Escape key.
	// Defaults to true.
	CanEscapeKeyClose *bool

	// OpenOnTargetFocus opens hover popovers when the target receives
	// keyboard focus. Defaults to true.
	OpenOnTargetFocus *bool

	// AutoFocus marks the popover as focus-stealing, which suppresses
	// close-on-blur caused by its own focus handling.
	AutoFocus bool

	// HoverOpenDelay and HoverCloseDelay debounce hover transitions.
	// Unset fields take the package defaults; negative values are
	// clamped to zero with a warning.
	HoverOpenDelay  *time.Duration
	HoverCloseDelay *time.Duration

	// InheritDarkTheme propagates the ancestor dark theme onto the
	// portal subtree.
	InheritDarkTheme bool

	// Side is the requested placement side of the panel.
	Side position.Side

	// Target is the element the popover anchors to. Children may be
	// supplied instead: the first child is the target and an optional
	// second child is the content.
	Target   *dom.VNode
	Content  *dom.VNode
	Children []*dom.VNode

	// Lifecycle hooks, each optional.
	WillOpen  func()
	DidOpen   func()
	WillClose func()

	// OnInteraction is invoked exactly once per classified request
	// that would change the open state, with the intended next value.
	OnInteraction func(nextOpen bool, ev *dom.Event)

	// OnClose is invoked whenever a close is about to happen. The
	// event may be nil for programmatic closes.
	OnClose func(ev *dom.Event)
}

// Bool returns a pointer to v, for Config literal convenience.
func Bool(v bool) *bool { return &v }

// Duration returns a pointer to d, for Config literal convenience.
func Duration(d time.Duration) *time.Duration { return &d }

// Options is the reconciled, canonical configuration the rest of the
// package consumes. All alias and default resolution has happened.
type Options struct {
	Kind              interaction.Kind
	Controlled        bool
	IsOpen            bool
	Disabled          bool
	HasBackdrop       bool
	Inline            bool
	CanEscapeKeyClose bool
	OpenOnTargetFocus bool
	AutoFocus         bool
	HoverOpenDelay    time.Duration
	HoverCloseDelay   time.Duration
	InheritDarkTheme  bool
	Side              position.Side

	Target  *dom.VNode
	Content *dom.VNode

	// Degraded marks a configuration with missing or empty content:
	// the popover forces itself closed and refuses to open, instead of
	// presenting an empty panel.
	Degraded bool

	WillOpen      func()
	DidOpen       func()
	WillClose     func()
	OnInteraction func(bool, *dom.Event)
	OnClose       func(*dom.Event)
}

// reconcile resolves a raw Config into canonical Options. Alias
// resolution is pure and order-independent: for each deprecated/
// canonical pair the canonical field wins when explicitly supplied.
// Structural problems other than a missing target degrade with a
// warning instead of failing.
func reconcile(cfg Config, logger *slog.Logger) (Options, error) {
	o := Options{
		Kind:              cfg.InteractionKind,
		Controlled:        cfg.IsOpen != nil,
		Disabled:          resolveAlias(cfg.Disabled, cfg.IsDisabled, false),
		HasBackdrop:       resolveAlias(cfg.HasBackdrop, cfg.IsModal, false),
		Inline:            cfg.Inline,
		CanEscapeKeyClose: boolOr(cfg.CanEscapeKeyClose, true),
		OpenOnTargetFocus: boolOr(cfg.OpenOnTargetFocus, true),
		AutoFocus:         cfg.AutoFocus,
		HoverOpenDelay:    clampDelay(logger, "HoverOpenDelay", durationOr(cfg.HoverOpenDelay, DefaultHoverOpenDelay)),
		HoverCloseDelay:   clampDelay(logger, "HoverCloseDelay", durationOr(cfg.HoverCloseDelay, DefaultHoverCloseDelay)),
		InheritDarkTheme:  cfg.InheritDarkTheme,
		Side:              cfg.Side,

		WillOpen:      cfg.WillOpen,
		DidOpen:       cfg.DidOpen,
		WillClose:     cfg.WillClose,
		OnInteraction: cfg.OnInteraction,
		OnClose:       cfg.OnClose,
	}

	if cfg.IsOpen != nil {
		o.IsOpen = *cfg.IsOpen
	} else {
		o.IsOpen = cfg.DefaultIsOpen
	}

	target, content := resolvePayload(cfg, logger)
	if target == nil {
		return Options{}, ErrNoTarget
	}
	o.Target = target
	o.Content = content

	if emptyContent(content) {
		diag.Warn(logger, "P005", "popover content is empty, rendering disabled")
		o.Degraded = true
		o.IsOpen = false
		o.Disabled = true
	}

	return o, nil
}

// resolveAlias implements canonical-wins precedence for a deprecated/
// canonical bool pair.
func resolveAlias(canonical, deprecated *bool, def bool) bool {
	if canonical != nil {
		return *canonical
	}
	if deprecated != nil {
		return *deprecated
	}
	return def
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func durationOr(v *time.Duration, def time.Duration) time.Duration {
	if v != nil {
		return *v
	}
	return def
}

func clampDelay(logger *slog.Logger, field string, d time.Duration) time.Duration {
	if d < 0 {
		diag.Warn(logger, "P006", "negative hover delay clamped to zero", "field", field)
		return 0
	}
	return d
}

// resolvePayload picks the target and content nodes from the possible
// supply routes (explicit fields vs. children), warning on each
// ambiguity and applying the first-child-wins rule.
func resolvePayload(cfg Config, logger *slog.Logger) (target, content *dom.VNode) {
	target = cfg.Target
	content = cfg.Content

	if len(cfg.Children) > 0 {
		if target != nil {
			diag.Warn(logger, "P002", "both Target and children supplied, using first child")
		}
		target = cfg.Children[0]

		if len(cfg.Children) > 1 {
			if content != nil {
				diag.Warn(logger, "P003", "both Content and a second child supplied, using the child")
			}
			content = cfg.Children[1]
		}
		if len(cfg.Children) > 2 {
			diag.Warn(logger, "P004", "popover expects at most two children",
				"count", len(cfg.Children))
		}
	}

	return target, content
}

// emptyContent reports whether the content renders nothing visible:
// nil, whitespace-only text, or a fragment of such nodes.
func emptyContent(node *dom.VNode) bool {
	if node == nil {
		return true
	}
	switch node.Kind {
	case dom.KindText:
		return strings.TrimSpace(node.Text) == ""
	case dom.KindFragment:
		for _, c := range node.Children {
			if !emptyContent(c) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
