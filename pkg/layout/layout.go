// Package layout repairs text that was typed with the wrong keyboard layout
// active, mapping between the Latin (QWERTY) and Hebrew (SI-1452) key positions.
//
// The automatic mode is a best-effort heuristic: it counts letters of each
// script and converts away from the majority script. It performs no linguistic
// validation, so mixed-script or punctuation-heavy input may come out wrong.
package layout

import "unicode"

// Mode selects the conversion direction.
type Mode string

const (
	ModeAuto     Mode = "AUTO"
	ModeToHebrew Mode = "ENG_TO_HEB"
	ModeToLatin  Mode = "HEB_TO_ENG"
)

// IsValid reports whether m is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeAuto, ModeToHebrew, ModeToLatin:
		return true
	}
	return false
}

// keyPairs lists Latin key -> Hebrew character in table order. The inverse
// table is derived from it, later entries winning on collisions.
var keyPairs = [...][2]rune{
	{'q', '/'}, {'w', '\''}, {'e', 'ק'}, {'r', 'ר'}, {'t', 'א'}, {'y', 'ט'}, {'u', 'ו'}, {'i', 'ן'}, {'o', 'ם'}, {'p', 'פ'},
	{'a', 'ש'}, {'s', 'ד'}, {'d', 'ג'}, {'f', 'כ'}, {'g', 'ע'}, {'h', 'י'}, {'j', 'ח'}, {'k', 'ל'}, {'l', 'ך'}, {';', 'ף'},
	{'z', 'ז'}, {'x', 'ס'}, {'c', 'ב'}, {'v', 'ה'}, {'b', 'נ'}, {'n', 'מ'}, {'m', 'צ'}, {',', 'ת'}, {'.', 'ץ'}, {'/', '.'},
}

var (
	latinToHebrew = make(map[rune]rune, len(keyPairs))
	hebrewToLatin = make(map[rune]rune, len(keyPairs))
)

func init() {
	for _, p := range keyPairs {
		latinToHebrew[p[0]] = p[1]
		hebrewToLatin[p[1]] = p[0]
	}
}

// Fix converts text away from whichever script has more letters. When Latin
// letters outnumber Hebrew letters the Latin->Hebrew table is applied,
// otherwise the Hebrew->Latin table is. Characters without a mapping are
// returned unchanged.
func Fix(text string) string {
	if text == "" {
		return ""
	}
	hebrew, latin := Count(text)
	if latin > hebrew {
		return ToHebrew(text)
	}
	return ToLatin(text)
}

// Convert applies the conversion selected by mode.
func Convert(text string, mode Mode) string {
	switch mode {
	case ModeToHebrew:
		return ToHebrew(text)
	case ModeToLatin:
		return ToLatin(text)
	default:
		return Fix(text)
	}
}

// ToHebrew maps every character through the Latin->Hebrew table. Letters are
// lower-cased before lookup; unmapped characters keep their original case.
func ToHebrew(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if h, ok := latinToHebrew[unicode.ToLower(r)]; ok {
			out = append(out, h)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// ToLatin maps every character through the Hebrew->Latin table.
func ToLatin(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if l, ok := hebrewToLatin[r]; ok {
			out = append(out, l)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Count returns the number of Hebrew letters (alef..tav) and ASCII Latin
// letters in text.
func Count(text string) (hebrew, latin int) {
	for _, r := range text {
		switch {
		case r >= 'א' && r <= 'ת':
			hebrew++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latin++
		}
	}
	return hebrew, latin
}
