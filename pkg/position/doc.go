// Package position computes where the floating panel sits relative to
// its target.
//
// The Positioner interface is the collaborator contract the popover
// core consumes; Basic is a straightforward side-based implementation
// that centers the panel on the chosen side with a configurable gap
// and derives the arrow rotation and transform origin for it.
package position
