// Package picker asks the user for a directory when none is configured.
package picker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Picker returns a chosen directory, or ok=false when the user cancels.
// Cancellation is a normal outcome, not an error.
type Picker interface {
	PickDirectory(ctx context.Context, purpose string) (dir string, ok bool, err error)
}

// Func adapts a function to Picker.
type Func func(ctx context.Context, purpose string) (string, bool, error)

// PickDirectory implements Picker.
func (f Func) PickDirectory(ctx context.Context, purpose string) (string, bool, error) {
	return f(ctx, purpose)
}

// Static always picks Dir. An empty Dir cancels.
type Static struct {
	Dir string
}

// PickDirectory implements Picker.
func (s Static) PickDirectory(context.Context, string) (string, bool, error) {
	return s.Dir, s.Dir != "", nil
}

// Cancel always cancels. Used where nobody can be asked, e.g. over HTTP.
type Cancel struct{}

// PickDirectory implements Picker.
func (Cancel) PickDirectory(context.Context, string) (string, bool, error) {
	return "", false, nil
}

// Prompt asks on a terminal. An empty answer or end of input cancels.
// Answers that are not existing directories are rejected and asked again.
//
// A single goroutine owns the input and lives until it ends, so a prompt
// canceled mid-question can be asked again and receives the next line.
type Prompt struct {
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan line
}

type line struct {
	text string
	err  error
}

// NewPrompt creates a prompt picker reading answers from in.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, lines: make(chan line)}
}

// PickDirectory implements Picker.
func (p *Prompt) PickDirectory(ctx context.Context, purpose string) (string, bool, error) {
	for {
		fmt.Fprintf(p.out, "Select %s directory (empty to cancel): ", purpose)

		line, err := p.readLine(ctx)
		if err != nil {
			return "", false, err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return "", false, nil
		}

		dir, err := resolve(answer)
		if err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return dir, true, nil
	}
}

// readLine returns "" at end of input so EOF reads as a cancel.
func (p *Prompt) readLine(ctx context.Context) (string, error) {
	p.once.Do(func() { go p.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", nil
		}
		return l.text, l.err
	}
}

// readLines feeds p.lines until the input ends or fails.
func (p *Prompt) readLines() {
	defer close(p.lines)
	for {
		text, err := p.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if text != "" {
				p.lines <- line{text: text}
			}
			return
		}
		p.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

func resolve(answer string) (string, error) {
	if answer == "~" || strings.HasPrefix(answer, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		answer = filepath.Join(home, strings.TrimPrefix(answer[1:], "/"))
	}
	abs, err := filepath.Abs(answer)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot use %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
