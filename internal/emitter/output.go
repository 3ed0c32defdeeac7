package emitter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"hanobf/internal/rules"
	"hanobf/pkg/obfuscate"
)

const (
	selectionHeader = "[적용 순서]"
	resultHeader    = "[난독화 결과]"
)

// Output is what the command line needs to show a run to a person. It is
// satisfied by Reporter and lets tests substitute lightweight fakes.
type Output interface {
	obfuscate.Notifier
	SendText(text string) error
	SendVariants(results []obfuscate.Result) error
}

var _ Output = (*Reporter)(nil)

type Options struct {
	// Plain disables styling regardless of the terminal.
	Plain bool
	// Quiet drops the rule selection notice and headers.
	Quiet bool
}

type Reporter struct {
	w      io.Writer
	opts   Options
	header lipgloss.Style
	bullet lipgloss.Style
	index  lipgloss.Style
	err    error
}

func NewReporter(w io.Writer, opts Options) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	return &Reporter{
		w:      w,
		opts:   opts,
		header: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		bullet: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		index:  renderer.NewStyle().Faint(true),
	}
}

func (r *Reporter) paint(style lipgloss.Style, text string) string {
	if r.opts.Plain {
		return text
	}
	return style.Render(text)
}

func (r *Reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// RulesSelected prints the selection notice. Write errors are kept and
// surfaced by the next SendText or by Err.
func (r *Reporter) RulesSelected(ids []rules.ID) {
	if r.opts.Quiet {
		return
	}
	r.printf("\n%s\n", r.paint(r.header, selectionHeader))
	for _, id := range ids {
		r.printf("%s %s\n", r.paint(r.bullet, "-"), id.Label())
	}
}

func (r *Reporter) SendText(text string) error {
	if !r.opts.Quiet {
		r.printf("\n%s\n", r.paint(r.header, resultHeader))
	}
	r.printf("%s\n", text)
	return r.err
}

func (r *Reporter) SendVariants(results []obfuscate.Result) error {
	for i, res := range results {
		if r.opts.Quiet {
			r.printf("%s\n", res.Text)
			continue
		}
		r.RulesSelected(res.Selected)
		r.printf("\n%s %s\n", r.paint(r.header, resultHeader), r.paint(r.index, fmt.Sprintf("#%d", i+1)))
		r.printf("%s\n", res.Text)
	}
	return r.err
}

func (r *Reporter) Err() error {
	return r.err
}
