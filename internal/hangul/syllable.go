package hangul

import (
	"errors"
	"fmt"
)

const (
	SyllableBase  = 0xAC00
	SyllableCount = InitialCount * VowelCount * FinalCount

	InitialBase = 0x1100
	VowelBase   = 0x1161
	FinalBase   = 0x11A7

	InitialCount = 19
	VowelCount   = 21
	FinalCount   = 28

	// NoFinal stands in for the trailing jamo of an open syllable.
	NoFinal = ' '
	// NullOnset is the silent leading consonant ᄋ.
	NullOnset = 'ᄋ'

	syllablesPerInitial = VowelCount * FinalCount
)

var (
	ErrNotHangulSyllable = errors.New("not a hangul syllable")
	ErrInvalidJamo       = errors.New("invalid jamo")
)

// Triple is a syllable split into its leading, vowel and trailing jamo.
type Triple struct {
	Initial rune
	Vowel   rune
	Final   rune
}

func (t Triple) HasFinal() bool {
	return t.Final != NoFinal
}

func (t Triple) Compose() (rune, error) {
	return Compose(t.Initial, t.Vowel, t.Final)
}

func (t Triple) String() string {
	return fmt.Sprintf("(%q, %q, %q)", t.Initial, t.Vowel, t.Final)
}

func IsSyllable(r rune) bool {
	return r >= SyllableBase && r < SyllableBase+SyllableCount
}

func IsInitial(r rune) bool {
	return r >= InitialBase && r < InitialBase+InitialCount
}

func IsVowel(r rune) bool {
	return r >= VowelBase && r < VowelBase+VowelCount
}

// IsFinal reports whether r is one of the 27 trailing consonant jamo.
func IsFinal(r rune) bool {
	return r > FinalBase && r < FinalBase+FinalCount
}

func IsFinalOrNone(r rune) bool {
	return r == NoFinal || IsFinal(r)
}

// Decompose splits a precomposed syllable into its jamo. Runes outside the
// modern syllable block yield ErrNotHangulSyllable.
func Decompose(r rune) (Triple, error) {
	if !IsSyllable(r) {
		return Triple{}, fmt.Errorf("decompose %U: %w", r, ErrNotHangulSyllable)
	}
	code := int(r - SyllableBase)
	initial := code / syllablesPerInitial
	vowel := (code % syllablesPerInitial) / FinalCount
	final := code % FinalCount

	t := Triple{
		Initial: rune(InitialBase + initial),
		Vowel:   rune(VowelBase + vowel),
		Final:   NoFinal,
	}
	if final != 0 {
		t.Final = rune(FinalBase + final)
	}
	return t, nil
}

// Compose joins three jamo into a syllable. final may be NoFinal. Jamo
// outside their ranges are rejected with ErrInvalidJamo.
func Compose(initial, vowel, final rune) (rune, error) {
	if !IsInitial(initial) {
		return 0, fmt.Errorf("compose: initial %U: %w", initial, ErrInvalidJamo)
	}
	if !IsVowel(vowel) {
		return 0, fmt.Errorf("compose: vowel %U: %w", vowel, ErrInvalidJamo)
	}
	if !IsFinalOrNone(final) {
		return 0, fmt.Errorf("compose: final %U: %w", final, ErrInvalidJamo)
	}

	fin := 0
	if final != NoFinal {
		fin = int(final - FinalBase)
	}
	ini := int(initial - InitialBase)
	vow := int(vowel - VowelBase)
	return rune(SyllableBase + ini*syllablesPerInitial + vow*FinalCount + fin), nil
}
