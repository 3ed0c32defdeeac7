package hangul

// Tables are indexed by jamo offset from their block base. A zero entry
// means "not mapped" and falls through to the lookup's default branch.
var (
	liaisonInitials = [FinalCount]rune{
		0,
		'ᄀ', // ᆨ
		'ᄁ', // ᆩ
		'ᄉ', // ᆪ
		'ᄂ', // ᆫ
		'ᄌ', // ᆬ
		'ᄂ', // ᆭ
		'ᄃ', // ᆮ
		'ᄅ', // ᆯ
		'ᄀ', // ᆰ
		'ᄆ', // ᆱ
		'ᄇ', // ᆲ
		'ᄉ', // ᆳ
		'ᄐ', // ᆴ
		'ᄑ', // ᆵ
		'ᄅ', // ᆶ
		'ᄆ', // ᆷ
		'ᄇ', // ᆸ
		'ᄉ', // ᆹ
		'ᄉ', // ᆺ
		'ᄊ', // ᆻ
		'ᄋ', // ᆼ
		'ᄌ', // ᆽ
		'ᄎ', // ᆾ
		'ᄏ', // ᆿ
		'ᄐ', // ᇀ
		'ᄑ', // ᇁ
		'ᄒ', // ᇂ
	}

	onsetFinals = [InitialCount]rune{
		'ᆨ', // ᄀ
		'ᆩ', // ᄁ
		'ᆫ', // ᄂ
		'ᆮ', // ᄃ
		'ᆯ', // ᄄ
		'ᆯ', // ᄅ
		'ᆷ', // ᄆ
		'ᆸ', // ᄇ
		'ᆹ', // ᄈ
		'ᆺ', // ᄉ
		'ᆻ', // ᄊ
		'ᆼ', // ᄋ
		'ᆽ', // ᄌ
		'ᆾ', // ᄍ
		'ᆾ', // ᄎ
		'ᆿ', // ᄏ
		'ᇀ', // ᄐ
		'ᇁ', // ᄑ
		'ᇂ', // ᄒ
	}

	palatalVowels = [VowelCount]rune{
		0:  'ᅣ', // ᅡ
		1:  'ᅤ', // ᅢ
		4:  'ᅧ', // ᅥ
		5:  'ᅨ', // ᅦ
		8:  'ᅭ', // ᅩ
		13: 'ᅲ', // ᅮ
	}

	fillerFinals = [...]rune{'ᆨ', 'ᆫ', 'ᆮ', 'ᆯ', 'ᆷ', 'ᆸ', 'ᆺ', 'ᆼ'}
)

const onsetFallback = 'ᆼ'

// LiaisonInitial returns the leading consonant a trailing consonant turns
// into when it moves onto the following syllable.
func LiaisonInitial(final rune) rune {
	if IsFinal(final) {
		if r := liaisonInitials[final-FinalBase]; r != 0 {
			return r
		}
	}
	return NullOnset
}

// OnsetFinal returns the trailing consonant used to echo a leading one.
func OnsetFinal(initial rune) rune {
	if IsInitial(initial) {
		if r := onsetFinals[initial-InitialBase]; r != 0 {
			return r
		}
	}
	return onsetFallback
}

// Palatalize maps a plain vowel to its y-glide counterpart. Every other
// rune comes back unchanged.
func Palatalize(r rune) rune {
	if IsVowel(r) {
		if v := palatalVowels[r-VowelBase]; v != 0 {
			return v
		}
	}
	return r
}

func FillerFinals() []rune {
	return append([]rune(nil), fillerFinals[:]...)
}

func FillerFinal(i int) rune {
	return fillerFinals[i]
}

func FillerCount() int {
	return len(fillerFinals)
}
