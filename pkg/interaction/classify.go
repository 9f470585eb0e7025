package interaction

// Decision is the classifier's verdict for an event.
type Decision uint8

const (
	Ignore Decision = iota
	Open
	Close
)

// String returns the string representation of the Decision.
func (d Decision) String() string {
	switch d {
	case Ignore:
		return "ignore"
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Context is the state snapshot classification runs against.
type Context struct {
	// Open is the current visibility.
	Open bool

	// Disabled suppresses open requests. Close requests are still
	// honored so a popover disabled while open can close.
	Disabled bool

	// OpenOnTargetFocus enables opening hover popovers on target focus.
	OpenOnTargetFocus bool

	// AutoFocus indicates the popover steals focus when opening, which
	// suppresses close-on-blur caused by its own focus handling.
	AutoFocus bool

	// CanEscapeKeyClose enables closing on the Escape key.
	CanEscapeKeyClose bool

	// OverContent is set while the pointer is over the content panel.
	// Leaving the target while still over the content must not close a
	// plain hover popover.
	OverContent bool
}

// Classify decides whether an event should request open, request
// close, or be ignored. The decision is pure: callers apply it through
// the visibility controller, which also decides whether the request is
// debounced (see Event.Debounced).
func Classify(kind Kind, ev Event, src Source, ctx Context) Decision {
	return gate(classify(kind, ev, src, ctx), ctx)
}

// gate applies the disabled rule: open requests are dropped while
// disabled, close requests always pass.
func gate(d Decision, ctx Context) Decision {
	if d == Open && ctx.Disabled {
		return Ignore
	}
	return d
}

func classify(kind Kind, ev Event, src Source, ctx Context) Decision {
	// Dismiss elements close regardless of interaction kind.
	if src == SourceDismiss {
		if ev == EventClick && ctx.Open {
			return Close
		}
		return Ignore
	}

	switch ev {
	case EventClick:
		if src == SourceTarget && !kind.IsHover() {
			if ctx.Open {
				return Close
			}
			return Open
		}

	case EventMouseEnter:
		switch src {
		case SourceTarget:
			if kind.IsHover() {
				return Open
			}
		case SourceContent:
			if kind == Hover {
				return Open
			}
		}

	case EventMouseLeave:
		switch src {
		case SourceTarget:
			if kind == HoverTargetOnly {
				return Close
			}
			if kind == Hover && !ctx.OverContent {
				return Close
			}
		case SourceContent:
			if kind == Hover {
				return Close
			}
		}

	case EventFocus:
		if src == SourceTarget && ctx.OpenOnTargetFocus && kind.IsHover() {
			return Open
		}

	case EventBlur:
		if src == SourceTarget && ctx.Open && !ctx.AutoFocus {
			return Close
		}

	case EventMouseDown:
		switch src {
		case SourceBackdrop:
			if ctx.Open {
				return Close
			}
		case SourceDocument:
			if ctx.Open && !kind.TargetOnly() {
				return Close
			}
		}

	case EventEscape:
		if ctx.Open && ctx.CanEscapeKeyClose {
			return Close
		}
	}

	return Ignore
}
