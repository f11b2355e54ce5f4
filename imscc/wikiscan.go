package imscc

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// wikiPage is one parsed wiki_content document: the identifying meta tags
// plus the inner markup of its body element.
type wikiPage struct {
	Identifier string
	FrontPage  bool
	Body       string
}

func scanWikiFile(path string) (*wikiPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := html.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	page := &wikiPage{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				name, content := metaAttrs(n)
				switch name {
				case "identifier":
					page.Identifier = content
				case "front_page":
					page.FrontPage = content == "true"
				}
			case "body":
				page.Body = innerHTML(n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return page, nil
}

func metaAttrs(n *html.Node) (name, content string) {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			name = attr.Val
		case "content":
			content = attr.Val
		}
	}
	return name, content
}

func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&sb, c)
	}
	return strings.TrimSpace(sb.String())
}
