package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Severity classifies a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier surfaces status messages to the operator.
type Notifier interface {
	Info(message string)
	Error(message string)
}

// Console prints notifications to terminal streams. Info goes to Out with a
// green check mark, errors go to Err with a red cross.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool // suppresses Info; errors are always printed
}

// NewConsole returns a Console writing to out and errOut. Nil writers fall
// back to stdout and stderr.
func NewConsole(out, errOut io.Writer, quiet bool) *Console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Console{Out: out, Err: errOut, Quiet: quiet}
}

func (c *Console) Info(message string) {
	if c.Quiet {
		return
	}
	green := color.New(color.FgGreen)
	green.Fprint(c.Out, "✓ ")
	fmt.Fprintln(c.Out, message)
}

func (c *Console) Error(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(c.Err, "✗ ")
	fmt.Fprintln(c.Err, message)
}

// Message is one recorded notification.
type Message struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Recorder keeps notifications in memory. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Info(message string)  { r.add(SeverityInfo, message) }
func (r *Recorder) Error(message string) { r.add(SeverityError, message) }

func (r *Recorder) add(s Severity, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Severity: s, Text: text})
}

// Messages returns a copy of the recorded notifications.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}
