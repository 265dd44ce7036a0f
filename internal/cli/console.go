package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"

	"github.com/listenupapp/tagexport/internal/export"
	"github.com/listenupapp/tagexport/internal/logger"
	"github.com/listenupapp/tagexport/internal/pipeline"
)

const barTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . }} {{ percent . }} | ETA {{ rtime . "%s" }}`

// Console renders pipeline progress on a terminal. On a TTY it draws a
// progress bar; otherwise it prints one "Processing" line per file.
type Console struct {
	out io.Writer
	tty bool

	info    *color.Color
	success *color.Color
	warning *color.Color

	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewConsole creates a console observer writing to out.
func NewConsole(out io.Writer) *Console {
	return newConsole(out, logger.IsTerminal(out))
}

func newConsole(out io.Writer, tty bool) *Console {
	c := &Console{
		out:     out,
		tty:     tty,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
	}
	if !tty {
		c.info.DisableColor()
		c.success.DisableColor()
		c.warning.DisableColor()
	}
	return c
}

// OnProgress implements pipeline.Observer.
func (c *Console) OnProgress(p pipeline.Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := filepath.Base(p.File)
	if !c.tty {
		c.info.Fprintf(c.out, "Processing %s (%d/%d)…\n", name, p.Current, p.Total)
		return
	}

	if c.bar == nil {
		c.bar = pb.New(p.Total)
		c.bar.SetWriter(c.out)
		c.bar.SetTemplateString(barTemplate)
		c.bar.Start()
	}
	c.bar.Set("prefix", fmt.Sprintf("%-32s", truncate(name, 32)))
	// Progress arrives before the file is read.
	c.bar.SetCurrent(int64(p.Current - 1))
}

// OnLog implements pipeline.Observer.
func (c *Console) OnLog(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.finishLocked()

	switch message {
	case export.LogComplete:
		c.success.Fprintln(c.out, message)
	case export.LogCanceled:
		c.warning.Fprintln(c.out, message)
	default:
		c.info.Fprintln(c.out, message)
	}
}

// Finish completes and clears any active progress bar.
func (c *Console) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finishLocked()
}

func (c *Console) finishLocked() {
	if c.bar == nil {
		return
	}
	c.bar.SetCurrent(c.bar.Total())
	c.bar.Finish()
	c.bar = nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
