package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/virtsec/sevok/internal/model"
)

// Terminal streams one status line per probe outcome, indented by tier:
//
//	[ OK ] AMD CPU
//	[ OK ]   - AMD SEV
//	[FAIL]       - /dev/sev not readable: ...
type Terminal struct {
	out     io.Writer
	colored bool
	styles  map[model.ProbeStatus]lipgloss.Style
}

// NewTerminal creates a terminal sink writing to out. With colored false
// the status tags render unstyled, which keeps output stable when
// redirected to a file or captured in tests.
func NewTerminal(out io.Writer, colored bool) *Terminal {
	t := &Terminal{out: out, colored: colored}
	if colored {
		renderer := lipgloss.NewRenderer(out)
		t.styles = map[model.ProbeStatus]lipgloss.Style{
			model.StatusPass: renderer.NewStyle().Foreground(lipgloss.Color("2")),
			model.StatusFail: renderer.NewStyle().Foreground(lipgloss.Color("1")),
			model.StatusSkip: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		}
	}
	return t
}

// Report renders one outcome line. It never mutates the result.
func (t *Terminal) Report(res model.ProbeResult) {
	tag := statusTag(res.Status)
	if t.colored {
		tag = t.styles[res.Status].Render(tag)
	}
	fmt.Fprintf(t.out, "[%s]%s%s\n", tag, indentFor(res.Tier), res.Message)
}

func statusTag(status model.ProbeStatus) string {
	switch status {
	case model.StatusPass:
		return " OK "
	case model.StatusFail:
		return "FAIL"
	case model.StatusSkip:
		return "SKIP"
	}
	return " ?? "
}

// indentFor mirrors the tier alignment of the original sevctl output.
func indentFor(tier int) string {
	switch tier {
	case 1:
		return " "
	case 2:
		return " - "
	case 3:
		return "   - "
	case 4:
		return "     - "
	default:
		return "       - "
	}
}
