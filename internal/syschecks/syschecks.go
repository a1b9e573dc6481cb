// Package syschecks holds the OS-level probes: device node access, KVM
// availability, the kvm_amd SEV parameter, and the memlock resource limit.
// Each probe converts its own I/O errors into a failed result with a
// diagnostic message; none of them returns an error to the engine.
package syschecks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Default locations of the kernel interfaces the probes inspect.
const (
	DefaultSevDevice    = "/dev/sev"
	DefaultKVMDevice    = "/dev/kvm"
	DefaultSevParamPath = "/sys/module/kvm_amd/parameters/sev"
)

// SystemTier is the dependency tier shared by all system probes. They run
// after every capability tier and do not gate each other.
const SystemTier = 5

// kvmGetAPIVersion is the KVM_GET_API_VERSION ioctl request.
const kvmGetAPIVersion = 0xae00

// DeviceProbe checks that a device node can be opened with the given access
// mode. Openability is the proxy for both the node existing and the caller
// holding sufficient privileges.
type DeviceProbe struct {
	path string
	flag int
	mode string
}

// NewDeviceReadableProbe constructs a probe that opens path for reading.
func NewDeviceReadableProbe(path string) DeviceProbe {
	return DeviceProbe{path: path, flag: os.O_RDONLY, mode: "readable"}
}

// NewDeviceWritableProbe constructs a probe that opens path for writing.
func NewDeviceWritableProbe(path string) DeviceProbe {
	return DeviceProbe{path: path, flag: os.O_WRONLY, mode: "writable"}
}

func (p DeviceProbe) Name() string {
	return fmt.Sprintf("%s %s", p.path, p.mode)
}

func (p DeviceProbe) Tier() int { return SystemTier }

func (p DeviceProbe) Execute() (bool, string) {
	file, err := os.OpenFile(p.path, p.flag, 0)
	if err != nil {
		return false, fmt.Sprintf("%s not %s: %v", p.path, p.mode, err)
	}
	file.Close()
	return true, p.Name()
}

// KVMProbe checks that the KVM device node answers the API version ioctl.
type KVMProbe struct {
	path string
}

// NewKVMProbe constructs a probe against the given KVM device node.
func NewKVMProbe(path string) KVMProbe {
	return KVMProbe{path: path}
}

func (p KVMProbe) Name() string { return "KVM support" }
func (p KVMProbe) Tier() int    { return SystemTier }

func (p KVMProbe) Execute() (bool, string) {
	file, err := os.Open(p.path)
	if err != nil {
		return false, fmt.Sprintf("KVM support: unable to open %s: %v", p.path, err)
	}
	defer file.Close()

	version, err := unix.IoctlRetInt(int(file.Fd()), kvmGetAPIVersion)
	if err != nil {
		return false, fmt.Sprintf("KVM support: KVM_GET_API_VERSION ioctl on %s failed: %v", p.path, err)
	}
	return true, fmt.Sprintf("KVM support: API version %d", version)
}

// ModuleParamProbe checks that the kvm_amd module reports SEV as enabled.
type ModuleParamProbe struct {
	path string
}

// NewSevEnabledProbe constructs a probe reading the SEV enablement
// parameter at the given sysfs path.
func NewSevEnabledProbe(path string) ModuleParamProbe {
	return ModuleParamProbe{path: path}
}

func (p ModuleParamProbe) Name() string { return "SEV enablement in KVM" }
func (p ModuleParamProbe) Tier() int    { return SystemTier }

func (p ModuleParamProbe) Execute() (bool, string) {
	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Sprintf("SEV enablement in KVM: %s does not exist", p.path)
	}
	if err != nil {
		return false, fmt.Sprintf("SEV enablement in KVM: unable to read %s: %v", p.path, err)
	}

	value := strings.TrimSpace(string(raw))
	if value != "1" {
		return false, fmt.Sprintf("SEV enablement in KVM: %s reads %q, expected 1", p.path, value)
	}
	return true, p.Name()
}

// RlimitProbe reports the memlock resource limits. Locked memory backs
// encrypted guest pages, so the limits are worth surfacing even though any
// value passes.
type RlimitProbe struct{}

// NewMemlockProbe constructs the memlock resource limit probe.
func NewMemlockProbe() RlimitProbe {
	return RlimitProbe{}
}

func (RlimitProbe) Name() string { return "Memlock resource limit" }
func (RlimitProbe) Tier() int    { return SystemTier }

func (RlimitProbe) Execute() (bool, string) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_MEMLOCK, &limit); err != nil {
		return false, fmt.Sprintf("Memlock resource limit: getrlimit failed: %v", err)
	}
	return true, fmt.Sprintf("Memlock resource limit: soft %d, hard %d", limit.Cur, limit.Max)
}
