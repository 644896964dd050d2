package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// KeywordStrategy finds text nodes mentioning any keyword (case-insensitive)
// and takes the trimmed text of their parent element as an item.
type KeywordStrategy struct {
	keywords []string
}

// NewKeywordStrategy creates a KeywordStrategy. Blank keywords are ignored.
func NewKeywordStrategy(keywords []string) *KeywordStrategy {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &KeywordStrategy{keywords: lowered}
}

func (s *KeywordStrategy) Name() string {
	return "keyword"
}

// Extract implements Strategy.
func (s *KeywordStrategy) Extract(doc *goquery.Document) []string {
	if len(s.keywords) == 0 {
		return nil
	}

	var items []string
	for _, root := range doc.Nodes {
		walkText(root, func(n *html.Node) {
			if !s.matches(n.Data) || n.Parent == nil {
				return
			}
			text := strings.Join(textFragments(n.Parent), "")
			if text != "" {
				items = append(items, text)
			}
		})
	}
	return items
}

func (s *KeywordStrategy) matches(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range s.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
