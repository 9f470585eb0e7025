// Package dom provides the minimal element and event model the
// popover binding layer renders into.
//
// It is deliberately host-agnostic: a VNode tree describes the target
// wrapper and overlay content, EventHandler values carry the bound
// callbacks, and the host (a browser bridge, a live WebSocket session,
// or a test harness) is responsible for delivering Events back into
// those callbacks. Document models the shared document-level listener
// infrastructure used for outside-click detection.
package dom
