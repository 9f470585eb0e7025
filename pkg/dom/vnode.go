package dom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <span>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// VNode is a virtual element node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Text     string   // For KindText
}

// Props holds attributes and event handlers. Event handler entries are
// keyed by their "on"-prefixed event name and hold a func(*Event).
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents a bound event handler.
type EventHandler struct {
	Event   string // "onclick", "onmouseenter", etc.
	Handler func(*Event)
}

// IsInteractive returns true if this node has event handlers bound.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			if _, ok := v.Props[key].(func(*Event)); ok {
				return true
			}
		}
	}
	return false
}

// Handler returns the handler bound for the given event name
// ("click", "mouseenter", ...), or nil if none is bound.
func (v *VNode) Handler(event string) func(*Event) {
	if v == nil || v.Props == nil {
		return nil
	}
	h, _ := v.Props["on"+event].(func(*Event))
	return h
}

// Attribute returns the attribute value for key and whether it is set.
// Event handler entries are not attributes.
func (v *VNode) Attribute(key string) (any, bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	value, ok := v.Props[key]
	if !ok {
		return nil, false
	}
	if _, isHandler := value.(func(*Event)); isHandler {
		return nil, false
	}
	return value, true
}

// Clone returns a shallow copy of the node with its own Props map.
// Children are shared with the original.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	clone := *v
	clone.Props = make(Props, len(v.Props))
	for k, val := range v.Props {
		clone.Props[k] = val
	}
	return &clone
}
