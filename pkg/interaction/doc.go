// Package interaction classifies raw input events into open/close
// requests for the popover's visibility controller.
//
// Classification is a pure decision table over the configured
// interaction kind, the event kind, the element the event originated
// on, and a snapshot of the current state. It never mutates anything:
// the visibility controller owns all state transitions.
package interaction
