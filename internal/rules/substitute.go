package rules

import (
	"strings"

	"hanobf/internal/hangul"
)

// JamoReplacementRule palatalizes the vowel of a syllable (ᅡ→ᅣ, ᅥ→ᅧ, ...).
// One draw per syllable decides for initial and vowel together.
type JamoReplacementRule struct {
	Probability float64
}

func (JamoReplacementRule) ID() ID { return JamoReplacement }

func (r JamoReplacementRule) Apply(text string, rng Rand) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range hangul.Scan(text) {
		if !c.Hangul {
			b.WriteString(c.Raw)
			continue
		}
		t := c.Triple
		if fires(rng, r.Probability) {
			t.Initial = hangul.Palatalize(t.Initial)
			t.Vowel = hangul.Palatalize(t.Vowel)
		}
		b.WriteRune(composeOr(t, c.Rune))
	}
	return b.String()
}

// FillerFinalRule adds a meaningless final consonant to open syllables.
type FillerFinalRule struct {
	Probability float64
}

func (FillerFinalRule) ID() ID { return FillerFinal }

func (r FillerFinalRule) Apply(text string, rng Rand) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range hangul.Scan(text) {
		if !c.Hangul {
			b.WriteString(c.Raw)
			continue
		}
		t := c.Triple
		if !t.HasFinal() && fires(rng, r.Probability) {
			t.Final = hangul.FillerFinal(rng.IntN(hangul.FillerCount()))
		}
		b.WriteRune(composeOr(t, c.Rune))
	}
	return b.String()
}

func composeOr(t hangul.Triple, fallback rune) rune {
	r, err := t.Compose()
	if err != nil {
		return fallback
	}
	return r
}
