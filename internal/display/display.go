// Package display renders simulated log lines for the terminal.
//
// Each line is "[timestamp] [LEVEL] message": the timestamp is dimmed, the
// level tag takes the level's color and the message takes whatever color the
// caller asks for. Callers only see the Emitter interface, so nothing outside
// this package depends on the styling library.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const timestampLayout = "2006-01-02 15:04:05"

type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

type Color int

const (
	White Color = iota
	Green
	Yellow
	Red
)

// Emitter writes one styled line per call.
type Emitter interface {
	Emit(level Level, message string, c Color) error
}

// Console is an Emitter backed by an io.Writer.
// Color output is enabled only for a terminal stdout or stderr.
type Console struct {
	writer io.Writer
	now    func() time.Time
	mu     sync.Mutex

	colorOutput bool
	dim         *color.Color
	palette     map[Color]*color.Color
}

func NewConsole(writer io.Writer) *Console {
	c := &Console{
		writer: writer,
		now:    time.Now,
		dim:    color.New(color.Faint),
		palette: map[Color]*color.Color{
			White:  color.New(color.FgWhite),
			Green:  color.New(color.FgGreen),
			Yellow: color.New(color.FgYellow),
			Red:    color.New(color.FgRed),
		},
	}
	c.SetColor(isTerminal(writer))
	return c
}

// isTerminal reports whether w is stdout or stderr attached to a TTY.
// Each stream is checked on its own; NO_COLOR and TERM=dumb turn colors off
// the same way fatih/color does.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return ttyCheck(f.Fd())
}

var ttyCheck = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetColor forces color output on or off regardless of the writer.
func (c *Console) SetColor(enabled bool) {
	c.colorOutput = enabled
	all := []*color.Color{c.dim}
	for _, p := range c.palette {
		all = append(all, p)
	}
	for _, p := range all {
		if enabled {
			p.EnableColor()
		} else {
			p.DisableColor()
		}
	}
}

func (c *Console) Emit(level Level, message string, fg Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.format(c.now(), level, message, fg)
	if _, err := io.WriteString(c.writer, line); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	return nil
}

func (c *Console) format(ts time.Time, level Level, message string, fg Color) string {
	tag, tagColor := levelTag(level)
	return fmt.Sprintf("%s %s %s\n",
		c.dim.Sprint("["+ts.Format(timestampLayout)+"]"),
		c.colorFor(tagColor).Sprint(tag),
		c.colorFor(fg).Sprint(message))
}

func (c *Console) colorFor(fg Color) *color.Color {
	if p, ok := c.palette[fg]; ok {
		return p
	}
	return c.palette[White]
}

// Unknown levels fall back to a white [LOG] tag.
func levelTag(level Level) (string, Color) {
	switch level {
	case LevelInfo:
		return "[INFO]", Green
	case LevelWarning:
		return "[WARNING]", Yellow
	case LevelError:
		return "[ERROR]", Red
	default:
		return "[LOG]", White
	}
}
