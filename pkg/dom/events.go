package dom

// Event is the host-delivered input event. Hosts fill in the fields
// they can determine; every field other than Type is optional.
type Event struct {
	// Type is the DOM event type ("click", "mouseenter", ...).
	Type string

	// Key is the key value for keyboard events (e.g. "Escape").
	Key string

	// Dismiss is set when the event originated on an element carrying
	// the dismiss marker attribute (see Dismiss()).
	Dismiss bool

	// Inside is set on document-level events whose original target
	// lies inside the popover's own target or content subtree.
	Inside bool
}

// KeyEscape is the key value delivered for the Escape key.
const KeyEscape = "Escape"

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler func(*Event)) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler func(*Event)) EventHandler { return event("click", handler) }

// OnMouseDown handles mousedown events.
func OnMouseDown(handler func(*Event)) EventHandler { return event("mousedown", handler) }

// OnMouseEnter handles mouseenter events.
func OnMouseEnter(handler func(*Event)) EventHandler { return event("mouseenter", handler) }

// OnMouseLeave handles mouseleave events.
func OnMouseLeave(handler func(*Event)) EventHandler { return event("mouseleave", handler) }

// OnFocus handles focus events.
func OnFocus(handler func(*Event)) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler func(*Event)) EventHandler { return event("blur", handler) }

// OnKeyDown handles keydown events.
func OnKeyDown(handler func(*Event)) EventHandler { return event("keydown", handler) }
