package hwcaps

// Leaf holds the raw register image returned by the processor for one
// CPUID query.
type Leaf struct {
	EAX, EBX, ECX, EDX uint32
}

// memEncryptLeaf is the AMD memory encryption capability leaf.
const memEncryptLeaf = 0x8000001f

// MemEncryption decodes the memory encryption capability leaf. All register
// interpretation lives here; callers only see named accessors.
type MemEncryption struct {
	leaf Leaf
}

// NewMemEncryption wraps a raw register image. Tests construct synthetic
// leaves; production code goes through Source.MemEncryption.
func NewMemEncryption(leaf Leaf) MemEncryption {
	return MemEncryption{leaf: leaf}
}

// SMESupported reports Secure Memory Encryption support (EAX bit 0).
func (m MemEncryption) SMESupported() bool {
	return m.leaf.EAX&(1<<0) != 0
}

// SEVSupported reports Secure Encrypted Virtualization support (EAX bit 1).
func (m MemEncryption) SEVSupported() bool {
	return m.leaf.EAX&(1<<1) != 0
}

// PageFlushMSR reports availability of the page flush MSR (EAX bit 2).
func (m MemEncryption) PageFlushMSR() bool {
	return m.leaf.EAX&(1<<2) != 0
}

// SEVESSupported reports SEV Encrypted State support (EAX bit 3).
func (m MemEncryption) SEVESSupported() bool {
	return m.leaf.EAX&(1<<3) != 0
}

// PhysAddrReduction returns the number of physical address bits lost when
// memory encryption is enabled (EBX bits 11:6).
func (m MemEncryption) PhysAddrReduction() uint32 {
	return (m.leaf.EBX >> 6) & 0x3f
}

// CBitPosition returns the page table bit that marks a page as encrypted
// (EBX bits 5:0).
func (m MemEncryption) CBitPosition() uint32 {
	return m.leaf.EBX & 0x3f
}

// EncryptedGuests returns the number of encrypted guests that can run
// simultaneously (ECX).
func (m MemEncryption) EncryptedGuests() uint32 {
	return m.leaf.ECX
}

// MinSevASID returns the minimum ASID for an SEV-enabled, SEV-ES disabled
// guest (EDX).
func (m MemEncryption) MinSevASID() uint32 {
	return m.leaf.EDX
}
