// Package catalog maps a selected SEV generation to the ordered probe
// catalog the engine runs.
package catalog

import (
	"fmt"
	"strings"

	"github.com/virtsec/sevok/internal/engine"
	"github.com/virtsec/sevok/internal/hwcaps"
	"github.com/virtsec/sevok/internal/syschecks"
	sevokerrors "github.com/virtsec/sevok/pkg/errors"
)

// Variant selects the SEV feature generation the catalog targets.
type Variant string

const (
	// Sev covers plain Secure Encrypted Virtualization.
	Sev Variant = "sev"
	// Es additionally covers the Encrypted State capability. It is the
	// default when no generation is selected.
	Es Variant = "es"
)

// ParseVariant maps a command-line selector to a Variant. The empty string
// defaults to Es, the most capable generation.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Es, nil
	case string(Sev):
		return Sev, nil
	case string(Es), "sev-es":
		return Es, nil
	}
	return "", sevokerrors.NewValidationError("generation",
		fmt.Sprintf("%q is not a known SEV generation (want sev or es)", s), nil)
}

// Build maps a variant to the probe catalog. It performs no I/O: probes
// query the hardware and kernel only when executed.
//
// The capability chain is fixed: vendor (tier 1), processor model (tier 2),
// SEV/SME capability bits (tier 3), detailed capability fields (tier 4).
// The Es variant appends one more tier-4 group with the SEV-ES probe.
func Build(variant Variant, src hwcaps.Source) engine.Catalog {
	groups := []engine.Group{
		{hwcaps.NewVendorProbe(src)},
		{hwcaps.NewModelProbe(src)},
		{hwcaps.NewSEVProbe(src), hwcaps.NewSMEProbe(src)},
		{
			hwcaps.NewPageFlushProbe(src),
			hwcaps.NewPhysAddrReductionProbe(src),
			hwcaps.NewCBitProbe(src),
			hwcaps.NewEncryptedGuestsProbe(src),
			hwcaps.NewMinASIDProbe(src),
		},
	}
	if variant == Es {
		groups = append(groups, engine.Group{hwcaps.NewSEVESProbe(src)})
	}

	return engine.Catalog{
		Groups: groups,
		System: []engine.Probe{
			syschecks.NewDeviceReadableProbe(syschecks.DefaultSevDevice),
			syschecks.NewDeviceWritableProbe(syschecks.DefaultSevDevice),
			syschecks.NewKVMProbe(syschecks.DefaultKVMDevice),
			syschecks.NewSevEnabledProbe(syschecks.DefaultSevParamPath),
			syschecks.NewMemlockProbe(),
		},
	}
}
