// Package popover implements a floating-overlay UI primitive: a
// transient panel anchored to a target element, shown and hidden by a
// configurable interaction mode (click, hover, focus) or by explicit
// caller control.
//
// The package owns the interaction/visibility state machine and the
// target/content event bindings. Rendering is delegated to
// collaborators: an overlay host (pkg/overlay) mounts the panel and
// backdrop, a positioner (pkg/position) computes geometry, and the
// host event system delivers pkg/dom events back into the bindings.
//
// A popover is either uncontrolled (it owns its open state, seeded
// from DefaultIsOpen) or controlled (the caller supplies IsOpen on
// every Update and the popover only reports intended changes through
// OnInteraction).
//
//	pop, err := popover.New(popover.Config{
//	    InteractionKind: interaction.Hover,
//	    Target:          dom.Button("Hover me"),
//	    Content:         dom.Div("Hello"),
//	})
package popover
