// Package kana converts romaji strings to kana.
package kana

import (
	"strings"
	"unicode"
)

const vowelsAndN = "aeioun"

// Convert transliterates a romaji string to kana. Hiragana is produced by
// default; an all-uppercase input produces katakana instead. Characters
// that match no syllable pass through untranslated.
func Convert(romaji string) string {
	toKatakana := isAllUpper(romaji)
	runes := []rune(strings.ToLower(romaji))

	var b strings.Builder
	i := 0
	for i < len(runes) {
		// Doubled consonant folds into a small tsu; the second copy
		// starts the next syllable.
		if i+1 < len(runes) && runes[i] == runes[i+1] && !strings.ContainsRune(vowelsAndN, runes[i]) {
			b.WriteRune('っ')
			i++
			continue
		}
		matched := false
		for _, key := range keys {
			if startsWith(runes, i, key) {
				b.WriteString(hiragana[key])
				i += len(key)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(runes[i])
			i++
		}
	}

	if toKatakana {
		return shiftToKatakana(b.String())
	}
	return b.String()
}

// isAllUpper reports whether the string contains at least one cased rune
// and no lowercase runes.
func isAllUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

func startsWith(runes []rune, i int, key string) bool {
	if i+len(key) > len(runes) {
		return false
	}
	for j := 0; j < len(key); j++ {
		if runes[i+j] != rune(key[j]) {
			return false
		}
	}
	return true
}

// shiftToKatakana remaps hiragana code points (U+3041..U+3093) to their
// katakana counterparts; everything else is left as is.
func shiftToKatakana(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'ぁ' && r <= 'ん' {
			r += 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}
