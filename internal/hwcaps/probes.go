package hwcaps

import (
	"fmt"
	"strings"
)

// VendorProbe checks that the processor identifies as an AMD part. Every
// other capability probe depends on it.
type VendorProbe struct {
	src Source
}

// NewVendorProbe constructs the tier-1 vendor probe.
func NewVendorProbe(src Source) VendorProbe {
	return VendorProbe{src: src}
}

func (p VendorProbe) Name() string { return "AMD CPU" }
func (p VendorProbe) Tier() int    { return 1 }

func (p VendorProbe) Execute() (bool, string) {
	if !p.src.IsAMD() {
		return false, fmt.Sprintf("AMD CPU: vendor %q is not AuthenticAMD", p.src.VendorName())
	}
	return true, p.Name()
}

// ModelProbe checks that the brand string names an EPYC part; SEV ships on
// the EPYC server line only.
type ModelProbe struct {
	src Source
}

// NewModelProbe constructs the tier-2 processor model probe.
func NewModelProbe(src Source) ModelProbe {
	return ModelProbe{src: src}
}

func (p ModelProbe) Name() string { return "Microcode support" }
func (p ModelProbe) Tier() int    { return 2 }

func (p ModelProbe) Execute() (bool, string) {
	brand := p.src.BrandName()
	if !strings.Contains(strings.ToUpper(brand), "EPYC") {
		return false, fmt.Sprintf("Microcode support: CPU model %q is not an EPYC part", strings.TrimSpace(brand))
	}
	return true, p.Name()
}

// BitProbe checks a single capability bit of the memory encryption leaf.
type BitProbe struct {
	name string
	tier int
	src  Source
	bit  func(MemEncryption) bool
}

func (p BitProbe) Name() string { return p.name }
func (p BitProbe) Tier() int    { return p.tier }

func (p BitProbe) Execute() (bool, string) {
	if !p.bit(p.src.MemEncryption()) {
		return false, fmt.Sprintf("%s: capability bit not set", p.name)
	}
	return true, p.name
}

// FieldProbe reports an informational field of the memory encryption leaf.
// It always passes; the decoded value is the interesting part.
type FieldProbe struct {
	name  string
	tier  int
	src   Source
	field func(MemEncryption) uint32
}

func (p FieldProbe) Name() string { return p.name }
func (p FieldProbe) Tier() int    { return p.tier }

func (p FieldProbe) Execute() (bool, string) {
	return true, fmt.Sprintf("%s: %d", p.name, p.field(p.src.MemEncryption()))
}

// NewSEVProbe constructs the tier-3 SEV capability probe.
func NewSEVProbe(src Source) BitProbe {
	return BitProbe{name: "AMD SEV", tier: 3, src: src, bit: MemEncryption.SEVSupported}
}

// NewSMEProbe constructs the tier-3 SME capability probe.
func NewSMEProbe(src Source) BitProbe {
	return BitProbe{name: "AMD SME", tier: 3, src: src, bit: MemEncryption.SMESupported}
}

// NewPageFlushProbe constructs the tier-4 page flush MSR probe.
func NewPageFlushProbe(src Source) BitProbe {
	return BitProbe{name: "Page flush MSR", tier: 4, src: src, bit: MemEncryption.PageFlushMSR}
}

// NewSEVESProbe constructs the tier-4 SEV-ES capability probe. Only the
// Encrypted State generation includes it.
func NewSEVESProbe(src Source) BitProbe {
	return BitProbe{name: "AMD SEV-ES", tier: 4, src: src, bit: MemEncryption.SEVESSupported}
}

// NewPhysAddrReductionProbe reports the physical address bit reduction.
func NewPhysAddrReductionProbe(src Source) FieldProbe {
	return FieldProbe{name: "Physical address bit reduction", tier: 4, src: src, field: MemEncryption.PhysAddrReduction}
}

// NewCBitProbe reports the C-bit location in the page table entry.
func NewCBitProbe(src Source) FieldProbe {
	return FieldProbe{name: "C-bit location in page table entry", tier: 4, src: src, field: MemEncryption.CBitPosition}
}

// NewEncryptedGuestsProbe reports how many encrypted guests can run at once.
func NewEncryptedGuestsProbe(src Source) FieldProbe {
	return FieldProbe{name: "Number of encrypted guests supported simultaneously", tier: 4, src: src, field: MemEncryption.EncryptedGuests}
}

// NewMinASIDProbe reports the minimum ASID for SEV-enabled, SEV-ES disabled
// guests.
func NewMinASIDProbe(src Source) FieldProbe {
	return FieldProbe{name: "Minimum ASID value for SEV-enabled, SEV-ES disabled guest", tier: 4, src: src, field: MemEncryption.MinSevASID}
}
