// Package visibility owns the popover's open/closed state machine.
//
// A Controller either owns the boolean itself (uncontrolled mode) or
// mirrors a value the caller supplies on every configuration update
// (controlled mode). Classified open/close requests flow through it;
// it runs lifecycle hooks in will → mount/unmount → did order, emits
// the interaction-changed notification after any hook for the same
// transition, and debounces hover-triggered requests through a
// two-slot timer table (one open slot, one close slot).
package visibility
