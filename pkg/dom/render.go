package dom

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// voidTags are elements rendered without a closing tag.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true,
}

// RenderToString renders a VNode tree to an HTML string. Event
// handlers are skipped; text is escaped. Intended for SSR of demo
// pages and for test assertions.
func RenderToString(node *VNode) string {
	var sb strings.Builder
	renderNode(&sb, node)
	return sb.String()
}

func renderNode(sb *strings.Builder, node *VNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(node.Text))
	case KindFragment:
		for _, c := range node.Children {
			renderNode(sb, c)
		}
	case KindElement:
		sb.WriteByte('<')
		sb.WriteString(node.Tag)
		renderAttrs(sb, node.Props)
		sb.WriteByte('>')
		if voidTags[node.Tag] {
			return
		}
		for _, c := range node.Children {
			renderNode(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(node.Tag)
		sb.WriteByte('>')
	}
}

// renderAttrs writes attributes in sorted order for deterministic
// output. Handler entries are not attributes and are skipped.
func renderAttrs(sb *strings.Builder, props Props) {
	if len(props) == 0 {
		return
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		if _, isHandler := props[k].(func(*Event)); isHandler {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := props[k].(type) {
		case bool:
			if v {
				fmt.Fprintf(sb, ` %s="true"`, k)
			}
		case string:
			fmt.Fprintf(sb, ` %s="%s"`, k, html.EscapeString(v))
		default:
			fmt.Fprintf(sb, ` %s="%v"`, k, v)
		}
	}
}
