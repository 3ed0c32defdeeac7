package rules

import (
	"strings"

	"hanobf/internal/hangul"
)

// LiaisonRule moves a syllable's final consonant onto a following syllable
// that starts with the silent ᄋ, e.g. 먹어 → 머거.
type LiaisonRule struct {
	Probability float64
}

func (LiaisonRule) ID() ID { return Liaison }

func (r LiaisonRule) Apply(text string, rng Rand) string {
	chars := hangul.Scan(text)
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(chars)-1 {
		cur, next := chars[i], chars[i+1]
		if !cur.Hangul || !next.Hangul {
			b.WriteString(cur.Raw)
			i++
			continue
		}

		if cur.Triple.HasFinal() && next.Triple.Initial == hangul.NullOnset && fires(rng, r.Probability) {
			if moved, carried, ok := liaison(cur.Triple, next.Triple); ok {
				b.WriteRune(moved)
				b.WriteRune(carried)
				i += 2
				continue
			}
		}
		b.WriteString(cur.Raw)
		i++
	}
	if i < len(chars) {
		b.WriteString(chars[i].Raw)
	}
	return b.String()
}

func liaison(cur, next hangul.Triple) (rune, rune, bool) {
	moved, err := hangul.Compose(cur.Initial, cur.Vowel, hangul.NoFinal)
	if err != nil {
		return 0, 0, false
	}
	carried, err := hangul.Compose(hangul.LiaisonInitial(cur.Final), next.Vowel, next.Final)
	if err != nil {
		return 0, 0, false
	}
	return moved, carried, true
}
