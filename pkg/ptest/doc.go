// Package ptest provides testing helpers for popover behavior.
//
// The harness drives a popover through its rendered event bindings
// with a deterministic clock, so hover-delay behavior is testable
// without sleeping.
//
// # Quick Start
//
//	func TestTooltip(t *testing.T) {
//	    h := ptest.New(t, popover.Config{
//	        InteractionKind: interaction.Hover,
//	        Target:          dom.Button("?"),
//	        Content:         dom.Div("help text"),
//	    })
//
//	    h.EnterTarget()
//	    h.Advance(popover.DefaultHoverOpenDelay)
//	    h.ExpectOpen()
//
//	    h.LeaveTarget()
//	    h.Advance(popover.DefaultHoverCloseDelay)
//	    h.ExpectClosed()
//	}
//
// # Render Assertions
//
// Assert on rendered output:
//
//	ptest.ExpectContains(t, h.Render().Target, "?")
package ptest
