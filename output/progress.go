package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const (
	barWidth   = 40
	clearLine  = "\r\033[2K"
	spinFrames = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"
)

// Progress draws a single-line progress bar on a status stream.
//
// It is also an io.Writer: log lines written through it clear the bar first
// and the bar is redrawn underneath them, so diagnostics emitted while the bar
// is active do not interleave with it.
type Progress struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	colors  bool
	now     func() time.Time

	active bool
	start  time.Time
	done   int
	total  int
	frame  int
}

// NewProgress creates an idle progress bar on w. When enabled is false Start,
// Update and Finish draw nothing and writes pass straight through.
func NewProgress(w io.Writer, enabled, colors bool) *Progress {
	return &Progress{
		w:       w,
		enabled: enabled,
		colors:  colors,
		now:     time.Now,
	}
}

// Start shows the bar at 0/total.
func (p *Progress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.start = p.now()
	p.active = p.enabled && total > 0
	p.draw()
}

// Update moves the bar to done/total. It matches collector.ProgressFunc.
func (p *Progress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = done
	p.total = total
	p.frame++
	p.draw()
}

// Finish clears the bar from the terminal.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		io.WriteString(p.w, clearLine)
	}
	p.active = false
}

// Write passes b to the underlying writer, keeping the bar below it.
func (p *Progress) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.active {
		return p.w.Write(b)
	}
	io.WriteString(p.w, clearLine)
	n, err := p.w.Write(b)
	p.draw()
	return n, err
}

func (p *Progress) draw() {
	if !p.active {
		return
	}
	io.WriteString(p.w, clearLine+p.line())
}

// line renders e.g. "⠙ [00:00:03] [################>-----------------------] 12/30".
func (p *Progress) line() string {
	filled := 0
	if p.total > 0 {
		filled = min(barWidth, barWidth*p.done/p.total)
	}

	done := strings.Repeat("#", filled)
	rest := ""
	if filled < barWidth {
		rest = ">" + strings.Repeat("-", barWidth-filled-1)
	}

	frames := []rune(spinFrames)
	spinner := string(frames[p.frame%len(frames)])
	if p.colors {
		spinner = paint(color.FgGreen, spinner)
		done = paint(color.FgCyan, done)
		rest = paint(color.FgBlue, rest)
	}

	return fmt.Sprintf("%s [%s] [%s%s] %d/%d",
		spinner, formatElapsed(p.now().Sub(p.start)), done, rest, p.done, p.total)
}

func paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// formatElapsed renders d as HH:MM:SS.
func formatElapsed(d time.Duration) string {
	s := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
