package capa

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Inline/semantic tags preserved when cleaning body text for problem and
// open-response components. Anything else is removed while its inner text is
// kept.
var keepTags = map[string]bool{
	"a": true, "b": true, "br": true, "em": true, "i": true, "img": true,
	"li": true, "ol": true, "pre": true, "strong": true, "sub": true,
	"sup": true, "table": true, "tbody": true, "td": true, "th": true,
	"thead": true, "tr": true, "ul": true,
}

var voidTags = map[string]bool{"br": true, "img": true}

// StripWrapperTags removes structural wrapper markup (div, span, p and any
// other tag outside the allow-list) from an HTML fragment, preserving the
// allow-listed inline and semantic tags along with all text content.
func StripWrapperTags(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		// Malformed enough that the tokenizer gave up; better to keep the
		// raw text than to lose the question body.
		return strings.TrimSpace(fragment)
	}
	var sb strings.Builder
	for _, n := range nodes {
		renderFiltered(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

func renderFiltered(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		if keepTags[n.Data] {
			sb.WriteString("<")
			sb.WriteString(n.Data)
			for _, attr := range n.Attr {
				sb.WriteString(" ")
				sb.WriteString(attr.Key)
				sb.WriteString(`="`)
				sb.WriteString(html.EscapeString(attr.Val))
				sb.WriteString(`"`)
			}
			if voidTags[n.Data] {
				sb.WriteString("/>")
				return
			}
			sb.WriteString(">")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				renderFiltered(sb, c)
			}
			sb.WriteString("</")
			sb.WriteString(n.Data)
			sb.WriteString(">")
			return
		}
		// Dropped tag: keep the children only.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderFiltered(sb, c)
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderFiltered(sb, c)
		}
	}
}

// FlattenText strips every tag, returning plain text. Used for display
// titles and ledger entries.
func FlattenText(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.TrimSpace(sb.String())
}
