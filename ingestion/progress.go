package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how many lots have been embedded.
// It is safe for concurrent use by pool workers.
type ProgressTracker struct {
	mu       sync.Mutex
	out      io.Writer
	total    int
	done     int
	every    int
	reported int
	start    time.Time
	running  bool
}

// NewProgressTracker reports to out every time at least every lots have
// completed since the last report. A nil out discards output.
func NewProgressTracker(out io.Writer, total, every int) *ProgressTracker {
	if out == nil {
		out = io.Discard
	}
	if every < 1 {
		every = 1
	}
	return &ProgressTracker{out: out, total: total, every: every}
}

// Start resets the counters and the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()
	p.running = true
	p.done = 0
	p.reported = 0
}

// Add records n more completed lots.
func (p *ProgressTracker) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.done = min(p.done+n, p.total)
	if p.done-p.reported >= p.every {
		p.print()
		p.reported = p.done
	}
}

// Done returns the number of completed lots.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish prints the final line. Counts are left as they are, so a failed
// run shows how far it got.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	p.print()
	fmt.Fprintln(p.out)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// print writes the current line. Must be called with lock held.
func (p *ProgressTracker) print() {
	pct := 100.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total) * 100.0
	}
	rate := 0.0
	if secs := time.Since(p.start).Seconds(); secs > 0 {
		rate = float64(p.done) / secs
	}
	fmt.Fprintf(p.out, "\rEmbedding lots: %d/%d (%.1f%%) - %.1f lots/s", p.done, p.total, pct, rate)
}
