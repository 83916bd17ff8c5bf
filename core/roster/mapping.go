package roster

import "strings"

// translit maps umlauts and accented letters to an ASCII spelling that is
// safe for usernames. Unlisted runes pass through unchanged.
var translit = map[rune]string{
	// German umlauts
	'Ä': "Ae", 'ä': "ae",
	'Ö': "Oe", 'ö': "oe",
	'Ü': "Ue", 'ü': "ue",
	'ß': "ss",

	// Scandinavian letters
	'Å': "A", 'å': "a",
	'Ø': "Oe", 'ø': "oe",
	'Æ': "Ae", 'æ': "ae",

	// Accented latin letters
	'À': "A", 'à': "a",
	'Á': "A", 'á': "a",
	'Â': "A", 'â': "a",
	'Ã': "A", 'ã': "a",
	'Ç': "C", 'ç': "c",
	'È': "E", 'è': "e",
	'É': "E", 'é': "e",
	'Ê': "E", 'ê': "e",
	'Ë': "E", 'ë': "e",
	'Ì': "I", 'ì': "i",
	'Í': "I", 'í': "i",
	'Î': "I", 'î': "i",
	'Ï': "I", 'ï': "i",
	'Ð': "D", 'ð': "d",
	'Ñ': "N", 'ñ': "n",
	'Ò': "O", 'ò': "o",
	'Ó': "O", 'ó': "o",
	'Ô': "O", 'ô': "o",
	'Õ': "O", 'õ': "o",
	'Œ': "Oe", 'œ': "oe",
	'Ù': "U", 'ù': "u",
	'Ú': "U", 'ú': "u",
	'Û': "U", 'û': "u",
	'Ý': "Y", 'ý': "y",
	'Ÿ': "Y", 'ÿ': "y",

	// Icelandic letters
	'Þ': "Th", 'þ': "Th",

	// Czech/Slovak characters
	'Š': "S", 'š': "s",
	'Č': "C", 'č': "c",
}

// Transliterate rewrites special characters to their ASCII spelling.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := translit[r]; ok {
			b.WriteString(repl)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
