package progress

import (
	"fmt"
	"io"
	"os"
	"time"
)

// LineProgress is a throttled progress indicator for long trace decodes.
// Output goes to stderr so it never interferes with report output on stdout.
type LineProgress struct {
	total       int64
	current     int64
	startTime   time.Time
	lastUpdate  time.Time
	output      io.Writer
	enabled     bool
	description string
}

// NewLineProgress creates a progress indicator over a known line count.
func NewLineProgress(total int64, description string) *LineProgress {
	return &LineProgress{
		total:       total,
		startTime:   time.Now(),
		lastUpdate:  time.Now(),
		output:      os.Stderr,
		enabled:     true,
		description: description,
	}
}

// Disable suppresses all output (used for --quiet and non-terminal runs).
func (p *LineProgress) Disable() {
	p.enabled = false
}

// Increment advances the line counter by one.
func (p *LineProgress) Increment() {
	p.current++
	p.render()
}

// Set sets the current line counter.
func (p *LineProgress) Set(n int64) {
	p.current = n
	p.render()
}

// Finish completes the indicator and terminates its output line.
func (p *LineProgress) Finish() {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.lastUpdate = time.Time{}
	p.render()
	fmt.Fprint(p.output, "\n")
}

func (p *LineProgress) render() {
	if !p.enabled {
		return
	}
	// Throttle repaints.
	now := time.Now()
	if now.Sub(p.lastUpdate) < 100*time.Millisecond && p.current < p.total {
		return
	}
	p.lastUpdate = now

	var percent float64
	if p.total > 0 {
		percent = float64(p.current) / float64(p.total) * 100
	}
	fmt.Fprintf(p.output, "\r%s %d/%d lines (%.1f%%) %s",
		p.description, p.current, p.total, percent, formatDuration(time.Since(p.startTime)))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
