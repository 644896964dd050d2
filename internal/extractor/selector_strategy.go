package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/andybalholm/cascadia"
)

// SelectorStrategy takes every element matching a CSS selector as one item.
// The element's text fragments are trimmed and joined with single spaces.
type SelectorStrategy struct {
	selector string
	matcher  cascadia.Selector
}

// NewSelectorStrategy compiles selector, rejecting invalid syntax up front.
func NewSelectorStrategy(selector string) (*SelectorStrategy, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, common.NewValidationError("item_selector", selector, "invalid CSS selector: "+err.Error())
	}
	return &SelectorStrategy{selector: selector, matcher: matcher}, nil
}

func (s *SelectorStrategy) Name() string {
	return "selector"
}

// Extract implements Strategy.
func (s *SelectorStrategy) Extract(doc *goquery.Document) []string {
	var items []string
	doc.FindMatcher(s.matcher).Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			text := strings.Join(textFragments(node), " ")
			if text != "" {
				items = append(items, text)
			}
		}
	})
	return items
}
