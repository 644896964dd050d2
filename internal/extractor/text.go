package extractor

import (
	"strings"

	"golang.org/x/net/html"
)

// skipped elements never contribute text.
var skipped = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

func isSkipped(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	_, ok := skipped[n.Data]
	return ok
}

// walkText calls fn for every text node under n, in document order.
func walkText(n *html.Node, fn func(*html.Node)) {
	if isSkipped(n) {
		return
	}
	if n.Type == html.TextNode {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, fn)
	}
}

// textFragments returns the trimmed, non-empty text nodes under n.
func textFragments(n *html.Node) []string {
	var fragments []string
	walkText(n, func(t *html.Node) {
		if s := strings.TrimSpace(t.Data); s != "" {
			fragments = append(fragments, s)
		}
	})
	return fragments
}
