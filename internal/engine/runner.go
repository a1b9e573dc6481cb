package engine

import (
	"fmt"
	"time"

	"github.com/virtsec/sevok/internal/logger"
	"github.com/virtsec/sevok/internal/model"
)

// runState tracks the gating state machine. The runner starts in
// stateRunning and moves to stateDegraded on the first capability failure;
// it never moves back.
type runState int

const (
	stateRunning runState = iota
	stateDegraded
)

// Runner executes a catalog tier by tier. A failure in any capability group
// prevents execution of every later probe, including the remainder of the
// failing probe's own group; those probes are still reported, as skips.
type Runner struct {
	log *logger.Logger
}

// NewRunner creates a Runner that traces probe execution to the given logger.
func NewRunner(log *logger.Logger) *Runner {
	return &Runner{log: log}
}

// Run walks the catalog once and returns the aggregated outcome. Every probe
// is reported to the sink exactly once. The run never aborts early: skipped
// probes are reported rather than omitted, so the caller always sees the
// full diagnostic trace.
func (r *Runner) Run(cat Catalog, sink Sink) *model.RunSummary {
	start := time.Now()
	summary := &model.RunSummary{}
	state := stateRunning

	for _, group := range cat.Groups {
		for _, probe := range group {
			if state != stateRunning {
				r.emit(summary, sink, skipResult(probe))
				continue
			}

			res := r.execute(probe)
			if res.Status == model.StatusFail {
				state = stateDegraded
			}
			r.emit(summary, sink, res)
		}
	}

	// Hardware capability is a precondition for the system checks to be
	// meaningful, so a degraded capability phase skips the whole block.
	// Within the block the probes are independent: a failure counts
	// against the aggregate but does not gate its siblings.
	for _, probe := range cat.System {
		if state != stateRunning {
			r.emit(summary, sink, skipResult(probe))
			continue
		}
		r.emit(summary, sink, r.execute(probe))
	}

	summary.Duration = time.Since(start)
	return summary
}

func (r *Runner) execute(probe Probe) model.ProbeResult {
	started := time.Now()
	ok, msg := runCheck(probe)

	status := model.StatusPass
	if !ok {
		status = model.StatusFail
	}

	res := model.ProbeResult{
		Name:      probe.Name(),
		Status:    status,
		Message:   msg,
		Tier:      probe.Tier(),
		Duration:  time.Since(started),
		Timestamp: started,
	}

	r.log.WithFields(map[string]any{
		"probe":  res.Name,
		"tier":   res.Tier,
		"status": res.Status,
	}).Debug("probe executed")

	return res
}

func (r *Runner) emit(summary *model.RunSummary, sink Sink, res model.ProbeResult) {
	summary.Record(res)
	if sink != nil {
		sink.Report(res)
	}
}

// runCheck recovers a panicking check into a failure so a broken
// collaborator cannot take down the run.
func runCheck(probe Probe) (ok bool, msg string) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			msg = fmt.Sprintf("%s: check panicked: %v", probe.Name(), rec)
		}
	}()

	return probe.Execute()
}

func skipResult(probe Probe) model.ProbeResult {
	return model.ProbeResult{
		Name:      probe.Name(),
		Status:    model.StatusSkip,
		Message:   probe.Name(),
		Tier:      probe.Tier(),
		Timestamp: time.Now(),
	}
}
