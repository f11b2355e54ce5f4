// Package assets copies the archive's web resources into the exported
// static directory and rewrites Canvas link placeholders in HTML content.
package assets

import (
	"net/url"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/kalebabebe/mitx-canvas-tools/config"
)

var Log = config.Cfg().GetLogger()

var (
	fileBaseRe = regexp2.MustCompile(`\$IMS-CC-FILEBASE\$/([^"'>\s]+)`, 0)
	// Anchors pointing at Canvas-internal targets become inert spans that
	// keep the link text.
	internalAnchorRe = regexp2.MustCompile(`<a[^>]*href="[^"]*\$(WIKI_REFERENCE|CANVAS_COURSE_REFERENCE|CANVAS_OBJECT_REFERENCE)\$[^"]*"[^>]*>([^<]*)</a>`, 0)
	internalLooseRe  = regexp2.MustCompile(`\$(WIKI_REFERENCE|CANVAS_COURSE_REFERENCE|CANVAS_OBJECT_REFERENCE)\$/[^"'>\s]+`, 0)
)

// RewriteReferences converts Canvas placeholder URLs in an HTML fragment:
// file-base references become /static/ paths (URL-decoded), and links to
// Canvas-internal pages, course tools, and objects are flattened to spans
// since their targets do not exist after conversion.
func RewriteReferences(html string) string {
	if html == "" {
		return html
	}
	html = replaceAll(fileBaseRe, html, func(m regexp2.Match) string {
		path := m.GroupByNumber(1).String()
		if decoded, err := url.PathUnescape(path); err == nil {
			path = decoded
		}
		return "/static/" + path
	})
	html = replaceAll(internalAnchorRe, html, func(m regexp2.Match) string {
		text := strings.TrimSpace(m.GroupByNumber(2).String())
		return "<span class=\"canvas-internal-link\">" + text + "</span>"
	})
	html = replaceAll(internalLooseRe, html, func(m regexp2.Match) string {
		return "#"
	})
	return html
}

func replaceAll(re *regexp2.Regexp, input string, eval func(regexp2.Match) string) string {
	out, err := re.ReplaceFunc(input, eval, -1, -1)
	if err != nil {
		Log.Warnf("Asset URL rewrite failed, keeping original content: %v", err)
		return input
	}
	return out
}
