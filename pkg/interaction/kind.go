package interaction

// Kind is the configured interaction mode of a popover.
type Kind uint8

const (
	// Click opens and closes on target clicks; outside clicks close.
	Click Kind = iota
	// ClickTargetOnly is like Click, but only events on the target
	// affect visibility. Outside clicks are ignored.
	ClickTargetOnly
	// Hover opens on pointer entry of target or content and closes
	// when the pointer leaves both.
	Hover
	// HoverTargetOnly is like Hover, but only the target's hover state
	// matters; entering the content does not keep the popover open.
	HoverTargetOnly
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	case ClickTargetOnly:
		return "click-target"
	case Hover:
		return "hover"
	case HoverTargetOnly:
		return "hover-target"
	default:
		return "unknown"
	}
}

// IsHover reports whether the kind reacts to pointer hover.
func (k Kind) IsHover() bool {
	return k == Hover || k == HoverTargetOnly
}

// TargetOnly reports whether only target events affect visibility.
func (k Kind) TargetOnly() bool {
	return k == ClickTargetOnly || k == HoverTargetOnly
}

// Source identifies where an event originated.
type Source uint8

const (
	SourceTarget   Source = iota // the anchor element
	SourceContent                // the floating panel body
	SourceBackdrop               // the modal backdrop
	SourceDocument               // document level (outside-click detection)
	SourceDismiss                // an element carrying the dismiss marker
)

// String returns the string representation of the Source.
func (s Source) String() string {
	switch s {
	case SourceTarget:
		return "target"
	case SourceContent:
		return "content"
	case SourceBackdrop:
		return "backdrop"
	case SourceDocument:
		return "document"
	case SourceDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

// Event is the classified event kind.
type Event uint8

const (
	EventClick Event = iota
	EventMouseEnter
	EventMouseLeave
	EventMouseDown
	EventFocus
	EventBlur
	EventEscape // keydown with the Escape key
)

// String returns the string representation of the Event.
func (e Event) String() string {
	switch e {
	case EventClick:
		return "click"
	case EventMouseEnter:
		return "mouseenter"
	case EventMouseLeave:
		return "mouseleave"
	case EventMouseDown:
		return "mousedown"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// Debounced reports whether requests triggered by this event kind go
// through the hover delay timers. Only pointer enter/leave events are
// debounced; click, focus, escape, backdrop, document, and dismiss
// requests apply immediately.
func (e Event) Debounced() bool {
	return e == EventMouseEnter || e == EventMouseLeave
}
