package extractor

import (
	"testing"

	"github.com/aleister1102/slotwatch/internal/common"
	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectorPage = `<html><head><title>Rezervácia</title>
<script>var term = "ignored";</script></head>
<body>
  <div class="some-class">
    <div class="term-item">
      <span>12.05.2025</span>
      <span> 09:00 </span>
    </div>
    <div class="term-item">13.05.2025 <b>10:30</b></div>
    <div class="term-item">12.05.2025 09:00</div>
    <div class="term-item">   </div>
  </div>
</body></html>`

const keywordPage = `<html><body>
  <p>Voľný <b>termín</b>: 14.05.2025</p>
  <ul>
    <li>Najbližší DÁTUM návštevy: 20.05.2025</li>
    <li>Lehota na podanie: 30 dní</li>
    <li>Kontakt</li>
  </ul>
  <style>.term { color: red; }</style>
  <li>Najbližší DÁTUM návštevy: 20.05.2025</li>
</body></html>`

func TestSelectorStrategy_Extract(t *testing.T) {
	chain := NewChain(zerolog.Nop(), mustSelector(t, "div.some-class .term-item"))

	items, err := chain.Extract([]byte(selectorPage))
	require.NoError(t, err)
	assert.Equal(t, []string{"12.05.2025 09:00", "13.05.2025 10:30"}, items)
}

func TestNewSelectorStrategy_Invalid(t *testing.T) {
	_, err := NewSelectorStrategy("div[")
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}

func TestKeywordStrategy_Extract(t *testing.T) {
	chain := NewChain(zerolog.Nop(), NewKeywordStrategy(config.DefaultExtractorKeywords))

	items, err := chain.Extract([]byte(keywordPage))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"termín",
		"Najbližší DÁTUM návštevy: 20.05.2025",
		"Lehota na podanie: 30 dní",
	}, items)
}

func TestKeywordStrategy_IgnoresBlankKeywords(t *testing.T) {
	s := NewKeywordStrategy([]string{"", "  "})
	chain := NewChain(zerolog.Nop(), s)

	items, err := chain.Extract([]byte(keywordPage))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestChain_FallsBackToKeywords(t *testing.T) {
	chain := NewChain(zerolog.Nop(),
		mustSelector(t, "div.some-class .term-item"),
		NewKeywordStrategy([]string{"lehot"}),
	)

	items, err := chain.Extract([]byte(keywordPage))
	require.NoError(t, err)
	assert.Equal(t, []string{"Lehota na podanie: 30 dní"}, items)
	assert.Equal(t, []string{"selector", "keyword"}, chain.Strategies())
}

func TestChain_SelectorWinsWhenItMatches(t *testing.T) {
	chain := NewChain(zerolog.Nop(),
		mustSelector(t, ".term-item"),
		NewKeywordStrategy(config.DefaultExtractorKeywords),
	)

	items, err := chain.Extract([]byte(selectorPage))
	require.NoError(t, err)
	assert.Equal(t, []string{"12.05.2025 09:00", "13.05.2025 10:30"}, items)
}

func TestChain_EmptyResultIsNotAnError(t *testing.T) {
	chain := NewChain(zerolog.Nop(), mustSelector(t, ".term-item"), NewKeywordStrategy([]string{"slot"}))

	items, err := chain.Extract([]byte(`<html><body><p>Nothing available</p></body></html>`))
	require.NoError(t, err)
	require.NotNil(t, items)
	assert.Empty(t, items)

	items, err = chain.Extract(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		chain, err := New(config.NewDefaultExtractorConfig(), zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, []string{"selector", "keyword"}, chain.Strategies())
	})

	t.Run("keyword only with default keywords", func(t *testing.T) {
		chain, err := New(config.ExtractorConfig{KeywordFallback: true}, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, []string{"keyword"}, chain.Strategies())

		items, err := chain.Extract([]byte(keywordPage))
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := New(config.ExtractorConfig{}, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("invalid selector", func(t *testing.T) {
		_, err := New(config.ExtractorConfig{ItemSelector: "div[class="}, zerolog.Nop())
		assert.Error(t, err)
	})
}

func mustSelector(t *testing.T, selector string) *SelectorStrategy {
	t.Helper()
	s, err := NewSelectorStrategy(selector)
	require.NoError(t, err)
	return s
}
