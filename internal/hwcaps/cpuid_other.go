//go:build !amd64

package hwcaps

// queryLeaf reports no capabilities on architectures without the CPUID
// instruction; the vendor probe fails first on such hosts.
func queryLeaf(leaf, subleaf uint32) (eax, ebx, ecx, edx uint32) {
	return 0, 0, 0, 0
}
