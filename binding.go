package popover

import (
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
	"github.com/vango-dev/popover/pkg/overlay"
)

// Render produces the current render output: the wrapped target node
// and the overlay props. Call it after New, after Update, and after
// any visibility change.
func (p *Popover) Render() RenderProps {
	return RenderProps{
		Target:  p.renderTarget(),
		Overlay: p.renderOverlay(),
	}
}

// renderTarget wraps the configured target element with the popover's
// interaction bindings. All handlers are bound unconditionally; the
// classifier decides which of them matter for the configured kind.
func (p *Popover) renderTarget() *dom.VNode {
	child := p.opts.Target.Clone()
	if p.opts.Kind.IsHover() && p.opts.OpenOnTargetFocus {
		child.Props["tabindex"] = 0
	}

	return dom.Span(
		dom.Class("popover-target"),
		dom.AriaHasPopup("true"),
		dom.AriaExpanded(p.ctrl.IsOpen()),
		dom.OnClick(func(ev *dom.Event) {
			p.Deliver(interaction.EventClick, interaction.SourceTarget, ev)
		}),
		dom.OnMouseEnter(func(ev *dom.Event) {
			p.Deliver(interaction.EventMouseEnter, interaction.SourceTarget, ev)
		}),
		dom.OnMouseLeave(func(ev *dom.Event) {
			p.Deliver(interaction.EventMouseLeave, interaction.SourceTarget, ev)
		}),
		dom.OnFocus(func(ev *dom.Event) {
			p.Deliver(interaction.EventFocus, interaction.SourceTarget, ev)
		}),
		dom.OnBlur(func(ev *dom.Event) {
			p.Deliver(interaction.EventBlur, interaction.SourceTarget, ev)
		}),
		child,
	)
}

// renderContent wraps the configured content with the panel bindings:
// Escape handling, dismiss-marker clicks, and (for the plain hover
// kind) the content hover handlers that keep the panel open while the
// pointer rests on it.
func (p *Popover) renderContent() *dom.VNode {
	args := []any{
		dom.Class("popover-content"),
		dom.Role("dialog"),
		dom.OnKeyDown(func(ev *dom.Event) {
			if ev != nil && ev.Key == dom.KeyEscape {
				p.Deliver(interaction.EventEscape, interaction.SourceContent, ev)
			}
		}),
		dom.OnClick(func(ev *dom.Event) {
			if ev != nil && ev.Dismiss {
				p.Deliver(interaction.EventClick, interaction.SourceDismiss, ev)
			}
		}),
	}

	if p.opts.Kind == interaction.Hover {
		args = append(args,
			dom.OnMouseEnter(func(ev *dom.Event) {
				p.overContent = true
				p.Deliver(interaction.EventMouseEnter, interaction.SourceContent, ev)
			}),
			dom.OnMouseLeave(func(ev *dom.Event) {
				p.overContent = false
				p.Deliver(interaction.EventMouseLeave, interaction.SourceContent, ev)
			}),
		)
	}

	args = append(args, p.opts.Content.Clone())
	return dom.Div(args...)
}

// renderOverlay assembles the overlay props for the host.
func (p *Popover) renderOverlay() overlay.Props {
	props := overlay.Props{
		IsOpen:           p.ctrl.IsOpen(),
		Inline:           p.opts.Inline,
		HasBackdrop:      p.opts.HasBackdrop,
		Placement:        p.placement,
		InheritDarkTheme: p.opts.InheritDarkTheme,
		OnClose:          func(ev *dom.Event) { p.ctrl.RequestClose(ev) },
	}

	if props.IsOpen {
		props.Content = p.renderContent()
	}

	if p.opts.HasBackdrop {
		props.BackdropProps = dom.Props{
			"class": "popover-backdrop",
			"onmousedown": func(ev *dom.Event) {
				p.Deliver(interaction.EventMouseDown, interaction.SourceBackdrop, ev)
			},
		}
	}

	return props
}
