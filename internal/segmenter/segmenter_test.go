package segmenter

import (
	"reflect"
	"testing"
)

func TestIsCJK(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"hiragana", "これは", true},
		{"katakana", "テスト", true},
		{"kanji", "漢字", true},
		{"half-width katakana", "ﾃｽﾄ", true},
		{"compatibility ideograph", "豈", true},
		{"english", "Hello world.", false},
		{"empty", "", false},
		{"mixed", "Meeting about 予算", true},
		{"hangul is not covered", "안녕하세요", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCJK(tt.text); got != tt.want {
				t.Errorf("IsCJK(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitCJK(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "period delimited",
			text: "これはテストです。今日は晴れです。明日は雨でしょう。",
			want: []string{"これはテストです", "今日は晴れです", "明日は雨でしょう"},
		},
		{
			name: "repeated punctuation is one delimiter",
			text: "本当ですか？！はい。。。そうです",
			want: []string{"本当ですか", "はい", "そうです"},
		},
		{
			name: "whitespace trimmed and empties dropped",
			text: "  一つ目。  。二つ目！ ",
			want: []string{"一つ目", "二つ目"},
		},
		{
			name: "full-width period",
			text: "甲．乙",
			want: []string{"甲", "乙"},
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Split(tt.text)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}
			if !got.CJK {
				t.Error("Split() CJK = false, want true")
			}
			if !reflect.DeepEqual(got.Sentences, tt.want) {
				t.Errorf("Split() = %q, want %q", got.Sentences, tt.want)
			}
		})
	}
}

func TestSplitEnglish(t *testing.T) {
	s := New()

	got, err := s.Split("The meeting started late. We discussed the budget! Who will follow up?")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if got.CJK {
		t.Error("Split() CJK = true, want false")
	}
	want := []string{"The meeting started late.", "We discussed the budget!", "Who will follow up?"}
	if !reflect.DeepEqual(got.Sentences, want) {
		t.Errorf("Split() = %q, want %q", got.Sentences, want)
	}
}

func TestSplitEmpty(t *testing.T) {
	got, err := New().Split("   ")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(got.Sentences) != 0 {
		t.Errorf("Split() = %q, want no sentences", got.Sentences)
	}
}
