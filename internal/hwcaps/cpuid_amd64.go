//go:build amd64

package hwcaps

// queryLeaf executes the CPUID instruction for the given leaf and subleaf.
// Implemented in assembly; klauspost/cpuid does not expose raw leaf
// registers.
func queryLeaf(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32)
