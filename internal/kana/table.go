package kana

import "sort"

// hiragana maps romaji syllables to hiragana. Katakana output is derived
// by code-point shift after conversion.
var hiragana = map[string]string{
	// Compound syllables (3 letters).
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ",
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	// Irregular two-letter spellings.
	"tsu": "つ",
	"shi": "し",
	"chi": "ち",
	"fu":  "ふ",
	// Vowels.
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	// K-group.
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	// S-group.
	"sa": "さ", "su": "す", "se": "せ", "so": "そ",
	// T-group ("chi" above).
	"ta": "た", "te": "て", "to": "と",
	// N-group.
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	// H-group ("fu" above).
	"ha": "は", "hi": "ひ", "he": "へ", "ho": "ほ",
	// M-group.
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	// Y-group.
	"ya": "や", "yu": "ゆ", "yo": "よ",
	// R-group.
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	// W-group and syllabic n.
	"wa": "わ", "wi": "うぃ", "we": "うぇ", "wo": "を", "n": "ん",
	// Voiced consonants.
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"za": "ざ", "ji": "じ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	// Extended sounds for loanwords.
	"fa": "ふぁ", "fi": "ふぃ", "fe": "ふぇ", "fo": "ふぉ",
}

// keys holds the romaji syllables sorted longest-first for greedy matching.
var keys = sortedKeys()

func sortedKeys() []string {
	out := make([]string, 0, len(hiragana))
	for k := range hiragana {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
