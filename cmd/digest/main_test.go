package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T, dir, apiURL string) string {
	t.Helper()
	return writeFile(t, dir, "config.yaml", fmt.Sprintf(`llm:
  api_url: %s
  retry:
    attempts: 3
    delay: 1ms
logging:
  level: error
`, apiURL))
}

func twelveSegments() string {
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "第%d項について話しました。", i)
	}
	return b.String()
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}

func TestSummarizeRetryExhaustionFallsBack(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	text := twelveSegments()
	input := writeFile(t, dir, "in.json", `{"text": "`+text+`", "segments": [{"start": 61, "end": 62, "text": "第0項"}]}`)
	out := filepath.Join(dir, "out.json")

	var stderr bytes.Buffer
	code := run([]string{"summarize", input, out, "--config", testConfig(t, dir, srv.URL)}, &bytes.Buffer{}, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, stderr.String())
	}
	if hits.Load() != 3 {
		t.Errorf("endpoint hits = %d, want 3", hits.Load())
	}

	var res models.SummaryResult
	readJSON(t, out, &res)
	if res.Summary != summarizer.StrideFallback(text) {
		t.Errorf("summary = %q, want stride fallback", res.Summary)
	}
	if !strings.HasPrefix(res.Summary, "- 第0項について話しました\n") || !strings.HasSuffix(res.Summary, "- 第11項について話しました") {
		t.Errorf("fallback does not keep first and last segment: %q", res.Summary)
	}
	if res.OriginalText != text || len(res.Segments) != 1 {
		t.Errorf("pass-through fields = %q / %v", res.OriginalText, res.Segments)
	}
	if !strings.Contains(res.Markdown, "**[01:01]** 第0項") {
		t.Errorf("markdown = %q", res.Markdown)
	}
}

func TestSummarizeSuccess(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"response": "  **予算承認**  "}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	input := writeFile(t, dir, "in.json", `{"text": "`+twelveSegments()+`", "segments": []}`)
	out := filepath.Join(dir, "out.json")

	code := run([]string{"summarize", input, out,
		"--config", testConfig(t, dir, srv.URL),
		"--model", "mistral", "--temperature", "0.7", "--max-tokens", "99",
	}, &bytes.Buffer{}, &bytes.Buffer{})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	var res models.SummaryResult
	readJSON(t, out, &res)
	if res.Summary != "**予算承認**" {
		t.Errorf("summary = %q", res.Summary)
	}
	if got["model"] != "mistral" {
		t.Errorf("request model = %v, want mistral", got["model"])
	}
	opts, _ := got["options"].(map[string]any)
	if opts["temperature"] != 0.7 || opts["num_predict"] != float64(99) {
		t.Errorf("request options = %v", opts)
	}
}

func TestSummarizeZeroTemperature(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"response": "short"}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	input := writeFile(t, dir, "in.json", `{"text": "`+twelveSegments()+`"}`)

	code := run([]string{"summarize", input, filepath.Join(dir, "out.json"),
		"--config", testConfig(t, dir, srv.URL), "--temperature", "0",
	}, &bytes.Buffer{}, &bytes.Buffer{})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	opts, _ := got["options"].(map[string]any)
	temp, ok := opts["temperature"]
	if !ok || temp != float64(0) {
		t.Errorf("request temperature = %v (present %v), want 0", temp, ok)
	}
}

func TestSummarizeMalformedInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, dir, "http://127.0.0.1:1")

	tests := []struct {
		name  string
		input string
	}{
		{"missing text", writeFile(t, dir, "a.json", `{"segments": []}`)},
		{"empty text", writeFile(t, dir, "b.json", `{"text": "  "}`)},
		{"not json", writeFile(t, dir, "c.json", `hello`)},
		{"missing file", filepath.Join(dir, "nope.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".out.json")
			code := run([]string{"summarize", tt.input, out, "--config", cfg}, &bytes.Buffer{}, &bytes.Buffer{})
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}

			var res models.FailureResult
			readJSON(t, out, &res)
			if res.Status != "failed" || res.Error == "" {
				t.Errorf("failure artifact = %+v", res)
			}
		})
	}
}

func TestSummarizeRequiresArgs(t *testing.T) {
	if code := run([]string{"summarize", "only-one"}, &bytes.Buffer{}, &bytes.Buffer{}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "t.txt", "これはテストです。今日は晴れです。明日は雨でしょう。")

	var stdout bytes.Buffer
	code := run([]string{"extract", input, "--min-length", "10"}, &stdout, &bytes.Buffer{})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if got := stdout.String(); got != "これはテストです。\n" {
		t.Errorf("stdout = %q, want %q", got, "これはテストです。\n")
	}
}

func TestExtractRejectsBadRatio(t *testing.T) {
	input := writeFile(t, t.TempDir(), "t.txt", "text")
	if code := run([]string{"extract", input, "--ratio", "1.5"}, &bytes.Buffer{}, &bytes.Buffer{}); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
