package model

import (
	"time"
)

// ProbeStatus is the reported outcome of a single diagnostic probe.
type ProbeStatus string

const (
	// StatusPass indicates the probe ran and its condition held.
	StatusPass ProbeStatus = "pass"
	// StatusFail indicates the probe ran and its condition did not hold.
	StatusFail ProbeStatus = "fail"
	// StatusSkip indicates the probe was not executed because an earlier
	// probe it depends on failed.
	StatusSkip ProbeStatus = "skip"
)

// ProbeResult captures the outcome of one probe within a run.
type ProbeResult struct {
	Name      string
	Status    ProbeStatus
	Message   string
	Tier      int
	Duration  time.Duration
	Timestamp time.Time
}
