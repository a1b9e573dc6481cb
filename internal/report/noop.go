package report

import (
	"github.com/virtsec/sevok/internal/model"
)

// Noop discards every result. It backs quiet mode: probes still execute
// and are still counted, nothing is rendered.
type Noop struct{}

// NewNoop returns a sink that drops all results.
func NewNoop() Noop {
	return Noop{}
}

// Report does nothing.
func (Noop) Report(model.ProbeResult) {}
