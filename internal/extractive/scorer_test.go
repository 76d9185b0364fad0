package extractive

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/digest-flow/internal/segmenter"
)

func texts(ss []Sentence) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Text
	}
	return out
}

func TestSelectCount(t *testing.T) {
	tests := []struct {
		n     int
		ratio float64
		want  int
	}{
		{0, 0.3, 0},
		{1, 0.3, 1},
		{3, 0.3, 1},
		{10, 0.3, 3},
		{11, 0.3, 4},
		{30, 0.1, 3},
		{5, 1, 5},
		{7, 0.01, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d@%v", tt.n, tt.ratio), func(t *testing.T) {
			if got := SelectCount(tt.n, tt.ratio); got != tt.want {
				t.Errorf("SelectCount(%d, %v) = %d, want %d", tt.n, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestSelectScoring(t *testing.T) {
	s := New(Options{Ratio: 0.5}, nil)
	sentences := []string{"apple banana", "banana cherry", "kiwi", "banana banana"}

	got, err := s.Select(sentences, 0.5)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	want := []string{"apple banana", "banana banana"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Select() = %q, want %q", texts(got), want)
	}
	if got[0].Score != 3.75 {
		t.Errorf("first score = %v, want 3.75", got[0].Score)
	}
	if got[1].Score != 4.8 {
		t.Errorf("last score = %v, want 4.8", got[1].Score)
	}
}

func TestSelectCountAndOrder(t *testing.T) {
	s := New(Options{}, nil)
	words := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}

	for n := 1; n <= 20; n++ {
		var sentences []string
		for i := 0; i < n; i++ {
			sentences = append(sentences, fmt.Sprintf("%s %s sentence %d", words[i%len(words)], words[(i*3)%len(words)], i))
		}
		for _, ratio := range []float64{0.05, 0.3, 0.5, 0.99, 1} {
			got, err := s.Select(sentences, ratio)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if len(got) != SelectCount(n, ratio) {
				t.Errorf("n=%d ratio=%v: len = %d, want %d", n, ratio, len(got), SelectCount(n, ratio))
			}
			if len(got) < 1 || len(got) > n {
				t.Errorf("n=%d ratio=%v: len = %d out of [1,%d]", n, ratio, len(got), n)
			}
			for i := 1; i < len(got); i++ {
				if got[i-1].Index >= got[i].Index {
					t.Errorf("n=%d ratio=%v: order broken at %d", n, ratio, i)
				}
			}
		}
	}
}

func TestSelectIdempotent(t *testing.T) {
	s := New(Options{}, nil)
	sentences := []string{"one two", "two three", "three four", "four one", "five"}

	a, _ := s.Select(sentences, 0.4)
	b, _ := s.Select(sentences, 0.4)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Select() not idempotent: %v vs %v", a, b)
	}
}

func TestSelectEdgeCases(t *testing.T) {
	s := New(Options{}, nil)

	got, err := s.Select(nil, 0.3)
	if err != nil || len(got) != 0 {
		t.Errorf("Select(nil) = %v, %v, want empty", got, err)
	}

	for _, ratio := range []float64{0.01, 0.3, 1} {
		got, err := s.Select([]string{"only one"}, ratio)
		if err != nil {
			t.Fatalf("Select() error = %v", err)
		}
		if len(got) != 1 || got[0].Text != "only one" {
			t.Errorf("Select(single, %v) = %v, want the sentence", ratio, got)
		}
	}

	for _, ratio := range []float64{0, -0.5, 1.5} {
		if _, err := s.Select([]string{"a", "b"}, ratio); !errors.Is(err, ErrInvalidRatio) {
			t.Errorf("Select(ratio=%v) error = %v, want ErrInvalidRatio", ratio, err)
		}
	}
}

func TestSelectTieKeepsEarlier(t *testing.T) {
	s := New(Options{}, nil)
	// Middle sentences all score 1; no bias applies to them.
	sentences := []string{"x x x x", "a", "b", "c", "y y y y"}

	got, err := s.Select(sentences, 0.6)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	want := []string{"x x x x", "a", "y y y y"}
	if !reflect.DeepEqual(texts(got), want) {
		t.Errorf("Select() = %q, want %q", texts(got), want)
	}
}

func TestSummarizeJapanese(t *testing.T) {
	s := New(Options{MinLength: 10, MaxLength: 200, Ratio: 0.3}, segmenter.New())

	got := s.Summarize("これはテストです。今日は晴れです。明日は雨でしょう。")
	if got != "これはテストです。" {
		t.Errorf("Summarize() = %q, want %q", got, "これはテストです。")
	}
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	s := New(Options{MinLength: 50, MaxLength: 200, Ratio: 0.3}, nil)

	text := "短い文です。もう一つ。"
	if got := s.Summarize(text); got != text {
		t.Errorf("Summarize() = %q, want unchanged %q", got, text)
	}
}

func TestSummarizeEnglishJoin(t *testing.T) {
	s := New(Options{MinLength: 10, MaxLength: 1000, Ratio: 1}, segmenter.New())

	got := s.Summarize("The budget was approved. Alice will send the report. The meeting ended early.")
	want := "The budget was approved. Alice will send the report. The meeting ended early."
	if got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
}

func TestSummarizeMaxLength(t *testing.T) {
	s := New(Options{MinLength: 1, MaxLength: 5, Ratio: 1}, segmenter.New())

	got := s.Summarize("あいうえおかきくけこ。さしすせそ。")
	if got != "あいうえお..." {
		t.Errorf("Summarize() = %q, want %q", got, "あいうえお...")
	}
}

type stubSegmenter struct {
	res segmenter.Result
	err error
}

func (s stubSegmenter) Split(string) (segmenter.Result, error) { return s.res, s.err }

func TestSummarizeDegrades(t *testing.T) {
	text := strings.Repeat("word ", 20)

	t.Run("segmentation error truncates to min length", func(t *testing.T) {
		s := New(Options{MinLength: 10, MaxLength: 200, Ratio: 0.3}, stubSegmenter{err: errors.New("boom")})
		if got := s.Summarize(text); got != "word word ..." {
			t.Errorf("Summarize() = %q, want %q", got, "word word ...")
		}
	})

	t.Run("scoring error keeps first and last", func(t *testing.T) {
		seg := stubSegmenter{res: segmenter.Result{Sentences: []string{"first", "middle", "last"}}}
		s := New(Options{MinLength: 10, MaxLength: 200, Ratio: 2}, seg)
		if got := s.Summarize(text); got != "first...last" {
			t.Errorf("Summarize() = %q, want %q", got, "first...last")
		}
	})

	t.Run("no sentences", func(t *testing.T) {
		s := New(Options{MinLength: 10, MaxLength: 200, Ratio: 0.3}, stubSegmenter{})
		if got := s.Summarize(text); got != "word word ..." {
			t.Errorf("Summarize() = %q, want %q", got, "word word ...")
		}
	})
}
