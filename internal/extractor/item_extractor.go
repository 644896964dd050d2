// Package extractor turns fetched HTML into the ordered list of slot items.
package extractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/models"
	"github.com/rs/zerolog"
)

// Strategy extracts candidate items from a parsed document.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document) []string
}

// ItemExtractor is what the monitor depends on.
type ItemExtractor interface {
	Extract(body []byte) ([]string, error)
}

// Chain runs its strategies in order and returns the items of the first one
// that finds anything. An empty result is valid and is not an error.
type Chain struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// NewChain creates a Chain over the given strategies.
func NewChain(logger zerolog.Logger, strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     logger.With().Str("component", "ItemExtractor").Logger(),
	}
}

// New builds the selector strategy followed, when enabled, by the keyword
// fallback.
func New(cfg config.ExtractorConfig, logger zerolog.Logger) (*Chain, error) {
	var strategies []Strategy

	if cfg.ItemSelector != "" {
		selector, err := NewSelectorStrategy(cfg.ItemSelector)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, selector)
	}

	if cfg.KeywordFallback {
		keywords := cfg.Keywords
		if len(keywords) == 0 {
			keywords = config.DefaultExtractorKeywords
		}
		strategies = append(strategies, NewKeywordStrategy(keywords))
	}

	if len(strategies) == 0 {
		return nil, common.NewValidationError("extractor_config", cfg.ItemSelector, "no extraction strategy configured")
	}
	return NewChain(logger, strategies...), nil
}

// Strategies returns the strategy names in evaluation order.
func (c *Chain) Strategies() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Extract parses body once and applies the strategies.
func (c *Chain) Extract(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, common.WrapError(err, "failed to parse HTML")
	}

	for _, strategy := range c.strategies {
		items := models.Dedupe(strategy.Extract(doc))
		if len(items) > 0 {
			c.logger.Debug().Str("strategy", strategy.Name()).Int("items", len(items)).Msg("Items extracted")
			return items, nil
		}
		c.logger.Debug().Str("strategy", strategy.Name()).Msg("Strategy found no items")
	}
	return []string{}, nil
}
