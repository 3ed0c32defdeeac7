package hangul

import "unicode/utf8"

// Char is one character of input tagged before any rule looks at it.
// Opaque characters carry only Rune and Raw; Hangul ones also carry their
// Triple. Raw holds the exact input bytes, so an invalid UTF-8 byte is kept
// as is rather than becoming U+FFFD.
type Char struct {
	Rune   rune
	Raw    string
	Hangul bool
	Triple Triple
}

func Classify(r rune) Char {
	t, err := Decompose(r)
	if err != nil {
		return Char{Rune: r, Raw: string(r)}
	}
	return Char{Rune: r, Raw: string(r), Hangul: true, Triple: t}
}

func Scan(text string) []Char {
	out := make([]Char, 0, len(text))
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		c := Classify(r)
		c.Raw = text[:size]
		out = append(out, c)
		text = text[size:]
	}
	return out
}
