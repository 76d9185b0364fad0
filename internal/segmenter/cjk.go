package segmenter

type runeRange struct{ lo, hi rune }

// Hiragana+Katakana, CJK Ext A, CJK Unified, CJK Compatibility, half-width Katakana.
var cjkRanges = []runeRange{
	{0x3040, 0x30FF},
	{0x3400, 0x4DBF},
	{0x4E00, 0x9FFF},
	{0xF900, 0xFAFF},
	{0xFF66, 0xFF9F},
}

// IsCJK reports whether text contains at least one CJK-script character.
func IsCJK(text string) bool {
	for _, r := range text {
		for _, rg := range cjkRanges {
			if r >= rg.lo && r <= rg.hi {
				return true
			}
		}
	}
	return false
}
