// Package overlay defines the contract between the popover core and
// the host-side overlay that renders the floating panel.
//
// The core produces a Props value on every render; the host owns
// mount/unmount timing, transition animation, and (when Inline is
// false) rendering into a detached portal subtree.
package overlay

import (
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/position"
)

// Props is everything the overlay host needs to render one popover.
type Props struct {
	// IsOpen is the single source of visual truth.
	IsOpen bool

	// Inline renders the panel in place instead of a portal.
	Inline bool

	// HasBackdrop adds a backdrop element behind the panel.
	HasBackdrop bool

	// BackdropProps carries the backdrop's attributes and handlers
	// (notably the mousedown handler that closes the popover).
	BackdropProps dom.Props

	// Content is the panel body with the popover's bindings attached.
	Content *dom.VNode

	// Placement is the computed panel position, valid while IsOpen.
	Placement position.Placement

	// InheritDarkTheme propagates the ancestor dark theme class onto
	// the portal subtree.
	InheritDarkTheme bool

	// OnClose is invoked by the host when it closes the panel itself
	// (e.g. after a backdrop transition finishes).
	OnClose func(ev *dom.Event)
}

// Host renders popover overlays. Implementations live host-side; the
// core only hands them Props.
type Host interface {
	Apply(Props)
}

// HostFunc adapts a function to the Host interface.
type HostFunc func(Props)

// Apply implements Host.
func (f HostFunc) Apply(p Props) { f(p) }
