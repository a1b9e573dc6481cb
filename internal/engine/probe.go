package engine

import (
	"github.com/virtsec/sevok/internal/model"
)

// Probe is one atomic named diagnostic check.
//
// Execute is called at most once per run. It must not panic past its own
// boundary; any internal failure should be converted into (false, detail)
// with a message that explains what failed, not just that it did.
type Probe interface {
	// Name identifies the probe in reports. Unique within its tier.
	Name() string

	// Tier is the dependency level, 1 being the most fundamental. Higher
	// tiers are meaningful only when every lower tier passed.
	Tier() int

	// Execute runs the check and returns whether the probed condition
	// holds, plus a human-readable detail message.
	Execute() (bool, string)
}

// Group is an ordered sequence of probes belonging to one dependency tier.
type Group []Probe

// Catalog is the full probe set for one run: capability groups ordered by
// ascending dependency, followed by a flat list of system probes that is
// gated as a single block on the capability phase outcome.
type Catalog struct {
	Groups []Group
	System []Probe
}

// Len returns the total number of probes across both phases.
func (c Catalog) Len() int {
	total := len(c.System)
	for _, group := range c.Groups {
		total += len(group)
	}
	return total
}

// Sink consumes one result per probe, in execution order. Every probe is
// reported exactly once, as pass, fail, or skip. Implementations must not
// affect engine state.
type Sink interface {
	Report(res model.ProbeResult)
}
