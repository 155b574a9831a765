package outcome

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/kestrelapps/lodestar/internal/logger"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// Reporter renders display events to a writer. Rendering never consumes the
// underlying error; callers keep handling it.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

func (r *Reporter) Report(events ...Event) {
	for _, ev := range events {
		switch ev.Type {
		case EventError:
			fmt.Fprintln(r.out, errorStyle.Render("✗ "+ev.Title))
			logger.Error(ev.Title, "message", ev.Message)
		default:
			fmt.Fprintln(r.out, successStyle.Render("✓ "+ev.Title))
		}
		if ev.Message != "" {
			fmt.Fprintln(r.out, messageStyle.Render("  "+ev.Message))
		}
	}
}
