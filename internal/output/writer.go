package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

const stampLayout = "20060102_150405"

func (w *implWriter) Write(ctx context.Context, source string, res models.SummaryResult) ([]string, error) {
	stem := w.reserveStem(source)
	defer w.releaseStem(stem)

	var (
		paths []string
		errs  []error
	)
	for _, format := range w.opts.Formats {
		path := stem + "." + format
		if err := w.writeRendition(path, format, res); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
			continue
		}
		w.logger.Info(ctx, "Saved %s", path)
		paths = append(paths, path)
	}

	return paths, errors.Join(errs...)
}

func (w *implWriter) writeRendition(path, format string, res models.SummaryResult) error {
	switch format {
	case FormatJSON:
		return WriteJSON(path, res)
	case FormatMarkdown:
		return WriteFileAtomic(path, []byte(res.Markdown))
	case FormatText:
		return WriteFileAtomic(path, []byte(res.Summary))
	case FormatDocx:
		return writeDocx(path, res.Markdown)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// reserveStem picks {base}_summary_{stamp}[_N] in the output directory such that no
// configured rendition exists on disk and no earlier call in this process claimed it.
func (w *implWriter) reserveStem(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	prefix := filepath.Join(w.opts.Dir, base+"_summary_"+w.now().Format(stampLayout))

	w.mu.Lock()
	defer w.mu.Unlock()

	stem := prefix
	for n := 1; w.taken(stem); n++ {
		stem = fmt.Sprintf("%s_%d", prefix, n)
	}
	w.reserved[stem] = struct{}{}
	return stem
}

// releaseStem drops the in-process claim once writing is over; from then on the files
// on disk keep the stem taken.
func (w *implWriter) releaseStem(stem string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.reserved, stem)
}

func (w *implWriter) taken(stem string) bool {
	if _, ok := w.reserved[stem]; ok {
		return true
	}
	for _, format := range w.opts.Formats {
		if _, err := os.Stat(stem + "." + format); err == nil {
			return true
		}
	}
	return false
}
