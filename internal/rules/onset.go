package rules

import (
	"strings"

	"hanobf/internal/hangul"
)

// OnsetDuplicationRule gives an open syllable a final that echoes the next
// syllable's leading consonant, e.g. 나비 → 납비. Only the current syllable
// is rewritten; the next one is examined again on the following step.
type OnsetDuplicationRule struct {
	Probability float64
}

func (OnsetDuplicationRule) ID() ID { return OnsetDuplication }

func (r OnsetDuplicationRule) Apply(text string, rng Rand) string {
	chars := hangul.Scan(text)
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for ; i < len(chars)-1; i++ {
		cur, next := chars[i], chars[i+1]
		if !cur.Hangul || !next.Hangul {
			b.WriteString(cur.Raw)
			continue
		}

		if !cur.Triple.HasFinal() && next.Triple.Initial != hangul.NullOnset && fires(rng, r.Probability) {
			if doubled, err := hangul.Compose(cur.Triple.Initial, cur.Triple.Vowel, hangul.OnsetFinal(next.Triple.Initial)); err == nil {
				b.WriteRune(doubled)
				continue
			}
		}
		b.WriteString(cur.Raw)
	}
	if i < len(chars) {
		b.WriteString(chars[i].Raw)
	}
	return b.String()
}
