package isolation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultHelperPath is the sandbox-init binary looked up on PATH.
	DefaultHelperPath = "polyrun-sandbox-init"
	// RequestFlag names the helper flag carrying the init request path.
	RequestFlag = "request"
	// StageEnv marks the helper's second, namespaced stage.
	StageEnv = "POLYRUN_SANDBOX_STAGE"
)

// NamespaceConfig configures the namespace provisioner of one language.
type NamespaceConfig struct {
	HelperPath string `yaml:"helperPath"`
	// CgroupRoot is a delegated cgroup v2 directory. Empty disables cgroups.
	CgroupRoot string `yaml:"cgroupRoot"`
	MemoryMB   int64  `yaml:"memoryMb"`
	PidsLimit  int64  `yaml:"pidsLimit"`
	// CPUQuota is in units of 1/100000 CPU per 100ms period.
	CPUQuota   int64 `yaml:"cpuQuota"`
	CPUTimeSec int64 `yaml:"cpuTimeSec"`
	StackMB    int64 `yaml:"stackMb"`
	OutputMB   int64 `yaml:"outputMb"`
	// ShareNetwork keeps the host network namespace.
	ShareNetwork   bool   `yaml:"shareNetwork"`
	SeccompProfile string `yaml:"seccompProfile"`
}

func (c *NamespaceConfig) setDefaults() {
	if c.HelperPath == "" {
		c.HelperPath = DefaultHelperPath
	}
	if c.MemoryMB <= 0 {
		c.MemoryMB = 256
	}
	if c.PidsLimit <= 0 {
		c.PidsLimit = 64
	}
	if c.CPUQuota <= 0 {
		c.CPUQuota = 100000
	}
}

// Validate checks the parts of the config that can be checked without
// touching the host.
func (c NamespaceConfig) Validate() error {
	if c.SeccompProfile == "" {
		return nil
	}
	_, err := LoadSeccompProfile(c.SeccompProfile)
	return err
}

// InitRequest is what the provisioner hands to the sandbox-init helper.
type InitRequest struct {
	Workdir        string     `json:"workdir"`
	Cgroup         string     `json:"cgroup,omitempty"`
	SeccompProfile string     `json:"seccompProfile,omitempty"`
	NewNetwork     bool       `json:"newNetwork"`
	Limits         RlimitSpec `json:"limits"`
}

// RlimitSpec lists the per-process limits applied before exec. Zero means
// unlimited.
type RlimitSpec struct {
	CPUTimeSec int64 `json:"cpuTimeSec,omitempty"`
	StackMB    int64 `json:"stackMb,omitempty"`
	OutputMB   int64 `json:"outputMb,omitempty"`
}

// WriteInitRequest stores req at path for the helper.
func WriteInitRequest(path string, req InitRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode init request: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadInitRequest loads and checks a request written by WriteInitRequest.
func ReadInitRequest(path string) (InitRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InitRequest{}, fmt.Errorf("read init request: %w", err)
	}
	var req InitRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return InitRequest{}, fmt.Errorf("decode init request: %w", err)
	}
	if req.Workdir == "" {
		return InitRequest{}, fmt.Errorf("work dir is required")
	}
	return req, nil
}

// SeccompProfile is a syscall filter: a default action plus per-syscall
// overrides. Actions use the SCMP_ACT_* names.
type SeccompProfile struct {
	DefaultAction string           `json:"defaultAction"`
	Syscalls      []SeccompSyscall `json:"syscalls"`
}

type SeccompSyscall struct {
	Names  []string `json:"names"`
	Action string   `json:"action"`
}

var seccompActions = map[string]struct{}{
	"SCMP_ACT_ALLOW":        {},
	"SCMP_ACT_KILL":         {},
	"SCMP_ACT_KILL_PROCESS": {},
	"SCMP_ACT_ERRNO":        {},
}

// LoadSeccompProfile reads and validates a profile file.
func LoadSeccompProfile(path string) (SeccompProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeccompProfile{}, fmt.Errorf("read seccomp profile: %w", err)
	}
	var profile SeccompProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return SeccompProfile{}, fmt.Errorf("parse seccomp profile: %w", err)
	}
	profile.DefaultAction = strings.ToUpper(profile.DefaultAction)
	if _, ok := seccompActions[profile.DefaultAction]; !ok {
		return SeccompProfile{}, fmt.Errorf("unsupported seccomp action: %q", profile.DefaultAction)
	}
	for i := range profile.Syscalls {
		rule := &profile.Syscalls[i]
		rule.Action = strings.ToUpper(rule.Action)
		if _, ok := seccompActions[rule.Action]; !ok {
			return SeccompProfile{}, fmt.Errorf("unsupported seccomp action: %q", rule.Action)
		}
		if len(rule.Names) == 0 {
			return SeccompProfile{}, fmt.Errorf("seccomp rule %d names no syscalls", i)
		}
	}
	return profile, nil
}

// helperArgv builds `<helper> -request <path> -- argv...`.
func helperArgv(helper, requestPath string, argv []string) []string {
	out := make([]string, 0, len(argv)+4)
	out = append(out, helper, "-"+RequestFlag, requestPath, "--")
	return append(out, argv...)
}
