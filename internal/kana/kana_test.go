package kana

import "testing"

func TestConvert(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ka", "か"},
		{"KA", "カ"},
		{"shi", "し"},
		{"tsu", "つ"},
		{"chi", "ち"},
		{"fu", "ふ"},
		{"kya", "きゃ"},
		{"sha", "しゃ"},
		{"tta", "った"},
		{"kitte", "きって"},
		{"ra", "ら"},
		{"ri", "り"},
		{"ru", "る"},
		{"re", "れ"},
		{"ro", "ろ"},
		{"n", "ん"},
		{"nihon", "にほん"},
		{"konnichiha", "こんにちは"},
		{"sakura", "さくら"},
		{"gakkou", "がっこう"},
		{"wifi", "うぃふぃ"},
		{"TOUKYOU", "トウキョウ"},
		{"RAAMEN", "ラアメン"},
	}
	for _, tc := range cases {
		if got := Convert(tc.in); got != tc.want {
			t.Errorf("Convert(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestConvertPassThrough(t *testing.T) {
	// Neither 'k' nor '9' match a syllable, so both pass through.
	if got := Convert("k9"); got != "k9" {
		t.Errorf("Convert(%q) = %q, want %q", "k9", got, "k9")
	}
	if got := Convert("ka!"); got != "か!" {
		t.Errorf("Convert(%q) = %q, want %q", "ka!", got, "か!")
	}
	// Trailing lone consonant of malformed romaji passes through.
	if got := Convert("kab"); got != "かb" {
		t.Errorf("Convert(%q) = %q, want %q", "kab", got, "かb")
	}
}

func TestConvertLongestMatchWins(t *testing.T) {
	// "sha" must match as one compound syllable, not "s" + "ha".
	if got := Convert("shashu"); got != "しゃしゅ" {
		t.Errorf("Convert(%q) = %q, want %q", "shashu", got, "しゃしゅ")
	}
	// "n" followed by "ya" forms "nya", not "ん"+"や".
	if got := Convert("nya"); got != "にゃ" {
		t.Errorf("Convert(%q) = %q, want %q", "nya", got, "にゃ")
	}
}

func TestConvertKatakanaCaseDetection(t *testing.T) {
	// Mixed case is not all-uppercase, so the output stays hiragana.
	if got := Convert("Ka"); got != "か" {
		t.Errorf("Convert(%q) = %q, want %q", "Ka", got, "か")
	}
	// Uncased characters do not block katakana detection.
	if got := Convert("KA9"); got != "カ9" {
		t.Errorf("Convert(%q) = %q, want %q", "KA9", got, "カ9")
	}
}

func TestConvertGeminateKatakana(t *testing.T) {
	if got := Convert("KITTE"); got != "キッテ" {
		t.Errorf("Convert(%q) = %q, want %q", "KITTE", got, "キッテ")
	}
}
