package config

// ExtractorConfig defines how items are extracted from a fetched page
type ExtractorConfig struct {
	ItemSelector    string   `json:"item_selector,omitempty" yaml:"item_selector,omitempty" env:"ITEM_SELECTOR"`
	KeywordFallback bool     `json:"keyword_fallback" yaml:"keyword_fallback" env:"KEYWORD_FALLBACK"`
	Keywords        []string `json:"keywords,omitempty" yaml:"keywords,omitempty" env:"ITEM_KEYWORDS" validate:"omitempty,dive,required"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		ItemSelector:    DefaultExtractorItemSelector,
		KeywordFallback: true,
		Keywords:        append([]string(nil), DefaultExtractorKeywords...),
	}
}
