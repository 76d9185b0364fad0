package output

import (
	"fmt"
	"sync"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

// Rendition formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
	FormatText     = "txt"
	FormatDocx     = "docx"
)

// Options configures a Writer.
type Options struct {
	Dir     string
	Formats []string
}

type implWriter struct {
	opts   Options
	logger logger.Logger
	now    func() time.Time

	mu       sync.Mutex
	reserved map[string]struct{}
}

// New creates a Writer. Formats defaults to json only.
func New(opts Options, log logger.Logger) (Writer, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatJSON}
	}
	for _, f := range opts.Formats {
		switch f {
		case FormatJSON, FormatMarkdown, FormatText, FormatDocx:
		default:
			return nil, fmt.Errorf("unknown output format %q", f)
		}
	}

	return &implWriter{
		opts:     opts,
		logger:   log,
		now:      time.Now,
		reserved: make(map[string]struct{}),
	}, nil
}
