//go:build linux

package isolation

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Namespace runs each command through the sandbox-init helper, which puts
// it in fresh user, mount, pid, uts, ipc and network namespaces inside a
// per-run cgroup and applies rlimits and a seccomp filter before exec.
type Namespace struct {
	cfg       NamespaceConfig
	helper    string
	supported bool
}

// NewNamespace creates a namespace provisioner. A missing helper or
// disabled user namespaces make it unsupported rather than failing.
func NewNamespace(cfg NamespaceConfig) (*Namespace, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "invalid namespace isolation config")
	}
	helper, err := exec.LookPath(cfg.HelperPath)
	return &Namespace{cfg: cfg, helper: helper, supported: err == nil && userNamespacesEnabled()}, nil
}

func (n *Namespace) Name() string { return "namespace" }

func (n *Namespace) Supported() bool { return n.supported }

// Provision creates the run's cgroup and writes its init request.
func (n *Namespace) Provision(ctx context.Context, scratchDir string) (Context, error) {
	workdir, err := filepath.Abs(scratchDir)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "resolve scratch dir failed")
	}
	stateDir, err := os.MkdirTemp("", "polyrun-ns-")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "create state dir failed")
	}
	c := &namespaceContext{id: uuid.NewString(), workdir: workdir, helper: n.helper, stateDir: stateDir}

	if n.cfg.CgroupRoot != "" {
		c.cgroup, err = createRunCgroup(n.cfg.CgroupRoot, c.id)
		if err != nil {
			_ = c.Teardown(ctx)
			return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "create cgroup failed")
		}
		if err := applyCgroupLimits(c.cgroup, n.cfg); err != nil {
			_ = c.Teardown(ctx)
			return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "apply cgroup limits failed").
				WithDetail("cgroup", c.cgroup)
		}
	}

	c.requestPath = filepath.Join(stateDir, "request.json")
	err = WriteInitRequest(c.requestPath, InitRequest{
		Workdir:        workdir,
		Cgroup:         c.cgroup,
		SeccompProfile: n.cfg.SeccompProfile,
		NewNetwork:     !n.cfg.ShareNetwork,
		Limits: RlimitSpec{
			CPUTimeSec: n.cfg.CPUTimeSec,
			StackMB:    n.cfg.StackMB,
			OutputMB:   n.cfg.OutputMB,
		},
	})
	if err != nil {
		_ = c.Teardown(ctx)
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "write init request failed")
	}
	return c, nil
}

type namespaceContext struct {
	id          string
	workdir     string
	helper      string
	stateDir    string
	requestPath string
	cgroup      string
}

func (c *namespaceContext) ID() string { return c.id }

func (c *namespaceContext) Workdir() string { return c.workdir }

// Wrap ignores env: the helper inherits the command's environment.
func (c *namespaceContext) Wrap(argv, _ []string) []string {
	return helperArgv(c.helper, c.requestPath, argv)
}

// Teardown kills whatever is left in the cgroup and removes it.
func (c *namespaceContext) Teardown(ctx context.Context) error {
	var errs []error
	if c.cgroup != "" {
		if err := killCgroup(c.cgroup); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn(ctx, "kill cgroup failed", zap.String("cgroup", c.cgroup), zap.Error(err))
		}
		if err := removeCgroup(c.cgroup); err != nil {
			errs = append(errs, err)
		}
	}
	if err := os.RemoveAll(c.stateDir); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "tear down namespace context failed").
			WithDetail("context", c.id)
	}
	return nil
}

// NamespaceSysProcAttr returns the clone settings of the helper's namespaced
// stage. The calling user is mapped to root inside the user namespace.
func NamespaceSysProcAttr(req InitRequest) *syscall.SysProcAttr {
	flags := uintptr(syscall.CLONE_NEWUSER | syscall.CLONE_NEWNS | syscall.CLONE_NEWPID |
		syscall.CLONE_NEWUTS | syscall.CLONE_NEWIPC)
	if req.NewNetwork {
		flags |= syscall.CLONE_NEWNET
	}
	return &syscall.SysProcAttr{
		Cloneflags:                 flags,
		Pdeathsig:                  syscall.SIGKILL,
		GidMappingsEnableSetgroups: false,
		UidMappings:                []syscall.SysProcIDMap{{ContainerID: 0, HostID: os.Getuid(), Size: 1}},
		GidMappings:                []syscall.SysProcIDMap{{ContainerID: 0, HostID: os.Getgid(), Size: 1}},
	}
}

func userNamespacesEnabled() bool {
	data, err := os.ReadFile("/proc/sys/user/max_user_namespaces")
	if err != nil {
		return false
	}
	return len(data) > 0 && data[0] != '0'
}
