package model

import (
	"time"
)

// RunSummary aggregates every probe outcome produced by a single run.
type RunSummary struct {
	Results  []ProbeResult
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Record appends a result and updates the counters.
func (s *RunSummary) Record(res ProbeResult) {
	s.Results = append(s.Results, res)
	s.Total++

	switch res.Status {
	case StatusPass:
		s.Passed++
	case StatusFail:
		s.Failed++
	case StatusSkip:
		s.Skipped++
	}
}

// AllPassed reports whether no probe failed. Skipped probes do not count
// against the aggregate on their own; the failure that caused them does.
func (s *RunSummary) AllPassed() bool {
	return s.Failed == 0
}

// ExitCode maps the aggregate outcome to a process exit code.
func (s *RunSummary) ExitCode() int {
	if s.AllPassed() {
		return 0
	}
	return 1
}
