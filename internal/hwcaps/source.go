package hwcaps

import (
	"github.com/klauspost/cpuid/v2"
)

// Source supplies the processor identity and capability registers the
// probes interpret. The host implementation queries the CPU executing the
// program; tests inject fixed values.
type Source interface {
	// VendorName returns the raw 12-byte vendor string, e.g. "AuthenticAMD".
	VendorName() string
	// IsAMD reports whether the vendor is AMD.
	IsAMD() bool
	// BrandName returns the processor brand string.
	BrandName() string
	// MemEncryption queries the memory encryption capability leaf.
	MemEncryption() MemEncryption
}

// HostSource reads from the processor executing the program. Vendor and
// brand identification go through klauspost/cpuid; the memory encryption
// leaf is queried raw because the library does not decode all of its fields.
type HostSource struct{}

// NewHostSource returns a Source backed by the local processor.
func NewHostSource() HostSource {
	return HostSource{}
}

func (HostSource) VendorName() string {
	return cpuid.CPU.VendorString
}

func (HostSource) IsAMD() bool {
	return cpuid.CPU.VendorID == cpuid.AMD
}

func (HostSource) BrandName() string {
	return cpuid.CPU.BrandName
}

func (HostSource) MemEncryption() MemEncryption {
	eax, ebx, ecx, edx := queryLeaf(memEncryptLeaf, 0)
	return NewMemEncryption(Leaf{EAX: eax, EBX: ebx, ECX: ecx, EDX: edx})
}
