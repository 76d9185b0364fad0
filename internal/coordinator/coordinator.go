package coordinator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

func (c *implCoordinator) Submit(ctx context.Context, path string) error {
	lock := c.acquire(path)
	defer c.release(path, lock)

	ctx, attempt := logger.WithAttempt(ctx)

	info, err := os.Stat(path)
	if err != nil {
		c.forget(path)
		return fmt.Errorf("stat %s: %w", path, err)
	}

	prev, seen, err := c.record.Lookup(ctx, path)
	if err != nil {
		return err
	}
	if seen && prev.SameStat(statFingerprint(info)) {
		c.logger.Debug(ctx, "Unchanged since last run: %s", path)
		c.setState(path, Done, prev)
		return nil
	}

	c.setState(path, Pending, statFingerprint(info))
	c.logger.Info(ctx, "Detected %s (attempt %s)", path, attempt)

	info, err = c.waitStable(ctx, path)
	if err != nil {
		c.forget(path)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.forget(path)
		return fmt.Errorf("read %s: %w", path, err)
	}

	fp := statFingerprint(info)
	fp.Hash = contentHash(data)
	file := models.NewWatchedFile(path, fp)

	if seen && prev.Hash == fp.Hash {
		c.logger.Debug(ctx, "Content unchanged, only metadata moved: %s", path)
		if err := c.record.Commit(ctx, path, fp); err != nil {
			return err
		}
		c.setState(path, Done, fp)
		return nil
	}

	transcript, ok := c.validate(ctx, file, data)
	if !ok {
		c.forget(path)
		return nil
	}

	c.setState(path, Processing, fp)
	c.logger.Debug(ctx, "Processing %s (%s, %d bytes, sha256 %.12s)", file.Path, file.Extension, fp.Size, fp.Hash)
	start := time.Now()

	res, err := c.summarizer.Summarize(ctx, transcript)
	if err != nil {
		c.forget(path)
		return fmt.Errorf("summarize %s: %w", path, err)
	}

	paths, err := c.writer.Write(ctx, path, res)
	if err != nil {
		c.forget(path)
		return fmt.Errorf("write summary for %s: %w", path, err)
	}

	if err := c.record.Commit(ctx, path, fp); err != nil {
		c.forget(path)
		return err
	}
	c.setState(path, Done, fp)

	c.logger.Info(ctx, "Summarized %s -> %s in %s", path, strings.Join(paths, ", "), time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *implCoordinator) State(path string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[path].state
}

// validate turns the file content into a transcript. A false result means the file
// is skipped without error.
func (c *implCoordinator) validate(ctx context.Context, file models.WatchedFile, data []byte) (models.Transcript, bool) {
	path := file.Path
	if len(data) == 0 {
		c.logger.Info(ctx, "Skipping empty file: %s", path)
		return models.Transcript{}, false
	}

	var t models.Transcript
	if file.IsTranscriptJSON() {
		parsed, err := models.ParseTranscript(data)
		if err != nil {
			c.logger.Warn(ctx, "Skipping %s: %v", path, err)
			return models.Transcript{}, false
		}
		t = parsed
	} else {
		if !utf8.Valid(data) {
			c.logger.Warn(ctx, "Skipping %s: not valid UTF-8 text", path)
			return models.Transcript{}, false
		}
		t = models.Transcript{Text: string(data), Segments: []models.Segment{}}
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(t.Text)); n < c.opts.MinLength {
		c.logger.Info(ctx, "Skipping %s: text too short (%d < %d chars)", path, n, c.opts.MinLength)
		return models.Transcript{}, false
	}
	return t, true
}

// waitStable sleeps the stable delay, then polls size and mtime until two consecutive
// observations agree. This is best-effort: a writer that pauses longer than the poll
// interval still looks finished.
func (c *implCoordinator) waitStable(ctx context.Context, path string) (os.FileInfo, error) {
	if err := sleep(ctx, c.opts.StableDelay); err != nil {
		return nil, err
	}

	last, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	for i := 0; i < c.opts.MaxPolls; i++ {
		if err := sleep(ctx, c.opts.PollInterval); err != nil {
			return nil, err
		}
		cur, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if cur.Size() == last.Size() && cur.ModTime().Equal(last.ModTime()) {
			return cur, nil
		}
		last = cur
	}

	c.logger.Warn(ctx, "%s still changing after %d polls, reading anyway", path, c.opts.MaxPolls)
	return last, nil
}

// acquire takes the lock for path, creating it on first use.
func (c *implCoordinator) acquire(path string) *pathLock {
	c.mu.Lock()
	l, ok := c.locks[path]
	if !ok {
		l = &pathLock{}
		c.locks[path] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks path and drops its lock once no other call is holding or waiting on it.
func (c *implCoordinator) release(path string, l *pathLock) {
	l.mu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, path)
	}
}

func (c *implCoordinator) setState(path string, s State, fp models.Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = entry{state: s, fp: fp}
}

// forget puts path back to Unseen so the next trigger retries it.
func (c *implCoordinator) forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func statFingerprint(info os.FileInfo) models.Fingerprint {
	return models.Fingerprint{Size: info.Size(), ModTime: info.ModTime()}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
