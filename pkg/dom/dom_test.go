package dom

import (
	"strings"
	"testing"
)

func TestElBuildsElement(t *testing.T) {
	clicked := false
	node := El("button",
		Class("trigger", "primary"),
		TabIndex(0),
		OnClick(func(*Event) { clicked = true }),
		"Open",
	)

	if node.Kind != KindElement || node.Tag != "button" {
		t.Fatalf("expected button element, got %s %q", node.Kind, node.Tag)
	}
	if got, ok := node.Attribute("class"); !ok || got != "trigger primary" {
		t.Errorf("expected class 'trigger primary', got %v", got)
	}
	if got, ok := node.Attribute("tabindex"); !ok || got != 0 {
		t.Errorf("expected tabindex 0, got %v", got)
	}
	if len(node.Children) != 1 || node.Children[0].Text != "Open" {
		t.Errorf("expected one text child, got %v", node.Children)
	}

	h := node.Handler("click")
	if h == nil {
		t.Fatal("expected click handler to be bound")
	}
	h(&Event{Type: "click"})
	if !clicked {
		t.Error("handler was not invoked")
	}
}

func TestHandlerEntriesAreNotAttributes(t *testing.T) {
	node := El("div", OnMouseEnter(func(*Event) {}))

	if _, ok := node.Attribute("onmouseenter"); ok {
		t.Error("handler entry surfaced as attribute")
	}
	if !node.IsInteractive() {
		t.Error("node with handler should be interactive")
	}
	if El("div", Class("x")).IsInteractive() {
		t.Error("node without handlers should not be interactive")
	}
}

func TestElSkipsNilChildren(t *testing.T) {
	node := Div(If(false, Span()), If(true, Span()))
	if len(node.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(node.Children))
	}
}

func TestCloneIsolatesProps(t *testing.T) {
	orig := Span(Class("a"))
	clone := orig.Clone()
	clone.Props["tabindex"] = 0

	if _, ok := orig.Attribute("tabindex"); ok {
		t.Error("mutating clone props leaked into original")
	}
}

func TestRenderToString(t *testing.T) {
	node := Div(
		Class("popover"),
		Data("side", "bottom"),
		OnClick(func(*Event) {}),
		Span("a < b"),
	)

	html := RenderToString(node)
	want := `<div class="popover" data-side="bottom"><span>a &lt; b</span></div>`
	if html != want {
		t.Errorf("expected %q, got %q", want, html)
	}
	if strings.Contains(html, "onclick") {
		t.Error("handlers must not render")
	}
}

func TestRenderFragment(t *testing.T) {
	html := RenderToString(Fragment(Span("a"), Span("b")))
	if html != "<span>a</span><span>b</span>" {
		t.Errorf("unexpected fragment render: %q", html)
	}
}

func TestDismissAttr(t *testing.T) {
	node := Button(Dismiss(), "Close")
	if got, ok := node.Attribute(DismissKey); !ok || got != "true" {
		t.Errorf("expected dismiss marker, got %v", got)
	}
}

func TestDocumentListenerLifecycle(t *testing.T) {
	doc := NewDocument()

	count := 0
	remove := doc.AddMouseDown(func(*Event) { count++ })
	if doc.MouseDownListeners() != 1 {
		t.Fatalf("expected 1 listener, got %d", doc.MouseDownListeners())
	}

	doc.DispatchMouseDown(&Event{Type: "mousedown"})
	if count != 1 {
		t.Errorf("expected 1 delivery, got %d", count)
	}

	remove()
	remove() // idempotent
	if doc.MouseDownListeners() != 0 {
		t.Errorf("expected 0 listeners after remove, got %d", doc.MouseDownListeners())
	}

	doc.DispatchMouseDown(&Event{Type: "mousedown"})
	if count != 1 {
		t.Errorf("removed listener still invoked, count=%d", count)
	}
}

func TestDocumentMultipleInstances(t *testing.T) {
	doc := NewDocument()

	var got []string
	removeA := doc.AddMouseDown(func(*Event) { got = append(got, "a") })
	doc.AddMouseDown(func(*Event) { got = append(got, "b") })

	doc.DispatchMouseDown(&Event{})
	if len(got) != 2 {
		t.Fatalf("expected both listeners invoked, got %v", got)
	}

	removeA()
	got = nil
	doc.DispatchMouseDown(&Event{})
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("expected only b after removing a, got %v", got)
	}
}
