package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

var spinFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Checklist renders step snapshots as an in-place terminal checklist on
// stderr: one row per bootstrap step, pending rows muted, the running
// row animated, finished rows marked ok or failed. Repaints are
// buffered and flushed with a single write so partial rows never land
// on the terminal.
type Checklist struct {
	mu    sync.Mutex
	rows  []stepState
	drawn int
	frame int
	stop  chan struct{}
	once  sync.Once
}

// NewChecklist creates a Checklist ready to receive snapshots.
func NewChecklist() *Checklist {
	return &Checklist{stop: make(chan struct{})}
}

// OnSnapshot replaces the rows with the latest step states and repaints.
// The animation ticker starts on the first snapshot.
func (c *Checklist) OnSnapshot(snap stepSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	first := c.rows == nil
	c.rows = snap.Steps
	c.repaint()
	if first {
		go c.animate()
	}
}

// Close stops the animation ticker.
func (c *Checklist) Close() {
	c.once.Do(func() {
		close(c.stop)
	})
}

func (c *Checklist) animate() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.frame++
			c.repaint()
			c.mu.Unlock()
		}
	}
}

// repaint moves the cursor back over the previously drawn rows and
// rewrites them. Caller must hold c.mu.
func (c *Checklist) repaint() {
	if len(c.rows) == 0 && c.drawn == 0 {
		return
	}

	var sb strings.Builder
	if c.drawn > 0 {
		fmt.Fprintf(&sb, "\033[%dA", c.drawn)
	}
	for _, row := range c.rows {
		sb.WriteString("\r" + c.renderRow(row) + "\033[K\n")
	}
	for i := len(c.rows); i < c.drawn; i++ {
		sb.WriteString("\r\033[K\n")
	}
	c.drawn = len(c.rows)

	fmt.Fprint(os.Stderr, sb.String())
}

func (c *Checklist) renderRow(row stepState) string {
	var line string
	switch row.Status {
	case stepRunning:
		line = "  " + Accent(spinFrames[c.frame%len(spinFrames)]) + " " + row.Title
	case stepDone:
		line = "  " + Success(glyphOK) + " " + row.Title
	case stepFailed:
		line = "  " + ErrorStyle.Render(glyphFail+" "+row.Title)
	default:
		line = "  " + Muted(glyphPending+" "+row.Title)
	}
	if row.Message != "" {
		line += " " + Muted(row.Message)
	}
	return line
}
