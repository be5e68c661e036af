//go:build linux

// Command polyrun-sandbox-init runs one command inside the namespaces,
// cgroup and seccomp filter described by an init request.
//
//	polyrun-sandbox-init -request <path> -- argv...
//
// The first stage joins the run's cgroup and re-executes itself in new
// namespaces. The second stage applies limits and execs argv.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"polyrun/internal/executor/sandbox/isolation"

	seccomp "github.com/seccomp/libseccomp-golang"
	"golang.org/x/sys/unix"
)

const (
	stageNamespaced = "namespaced"
	// exitSetupFailed is reported when the helper itself cannot start argv.
	exitSetupFailed = 125
)

func main() {
	requestPath := flag.String(isolation.RequestFlag, "", "Path to the init request")
	flag.Parse()
	argv := flag.Args()

	code, err := run(*requestPath, argv)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "sandbox-init:", err.Error())
	}
	os.Exit(code)
}

func run(requestPath string, argv []string) (int, error) {
	if requestPath == "" {
		return exitSetupFailed, fmt.Errorf("-%s is required", isolation.RequestFlag)
	}
	if len(argv) == 0 {
		return exitSetupFailed, fmt.Errorf("command is required")
	}
	req, err := isolation.ReadInitRequest(requestPath)
	if err != nil {
		return exitSetupFailed, err
	}
	if os.Getenv(isolation.StageEnv) == stageNamespaced {
		return exitSetupFailed, execNamespaced(req, argv)
	}
	return supervise(req, requestPath, argv)
}

// supervise is the host-side stage. It stays in the harness's process group
// so a group kill reaches both stages.
func supervise(req isolation.InitRequest, requestPath string, argv []string) (int, error) {
	if req.Cgroup != "" {
		if err := isolation.JoinCgroup(req.Cgroup, os.Getpid()); err != nil {
			return exitSetupFailed, fmt.Errorf("join cgroup: %w", err)
		}
	}
	self, err := os.Executable()
	if err != nil {
		return exitSetupFailed, fmt.Errorf("resolve helper path: %w", err)
	}
	args := append([]string{"-" + isolation.RequestFlag, requestPath, "--"}, argv...)
	cmd := exec.Command(self, args...)
	cmd.Env = append(os.Environ(), isolation.StageEnv+"="+stageNamespaced)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = isolation.NamespaceSysProcAttr(req)

	err = cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return exitSetupFailed, fmt.Errorf("start namespaced stage: %w", err)
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal()), nil
	}
	return exitErr.ExitCode(), nil
}

// execNamespaced only returns on failure.
func execNamespaced(req isolation.InitRequest, argv []string) error {
	if err := unix.Mount("", "/", "", unix.MS_REC|unix.MS_PRIVATE, ""); err != nil {
		return fmt.Errorf("make mount private: %w", err)
	}
	if err := unix.Sethostname([]byte("polyrun")); err != nil {
		return fmt.Errorf("set hostname: %w", err)
	}
	if err := os.Chdir(req.Workdir); err != nil {
		return fmt.Errorf("chdir workdir: %w", err)
	}
	if err := applyRlimits(req.Limits); err != nil {
		return err
	}

	env := withoutStage(os.Environ())
	cmdPath, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("resolve command: %w", err)
	}
	if req.SeccompProfile != "" {
		if err := applySeccomp(req.SeccompProfile); err != nil {
			return err
		}
	}
	return unix.Exec(cmdPath, argv, env)
}

func applyRlimits(limits isolation.RlimitSpec) error {
	if limits.CPUTimeSec > 0 {
		seconds := uint64(limits.CPUTimeSec)
		if err := unix.Setrlimit(unix.RLIMIT_CPU, &unix.Rlimit{Cur: seconds, Max: seconds}); err != nil {
			return fmt.Errorf("set rlimit cpu: %w", err)
		}
	}
	if limits.OutputMB > 0 {
		bytes := uint64(limits.OutputMB * 1024 * 1024)
		if err := unix.Setrlimit(unix.RLIMIT_FSIZE, &unix.Rlimit{Cur: bytes, Max: bytes}); err != nil {
			return fmt.Errorf("set rlimit fsize: %w", err)
		}
	}
	if limits.StackMB > 0 {
		bytes := uint64(limits.StackMB * 1024 * 1024)
		if err := unix.Setrlimit(unix.RLIMIT_STACK, &unix.Rlimit{Cur: bytes, Max: bytes}); err != nil {
			return fmt.Errorf("set rlimit stack: %w", err)
		}
	}
	return nil
}

func withoutStage(env []string) []string {
	out := env[:0:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, isolation.StageEnv+"=") {
			out = append(out, kv)
		}
	}
	return out
}

func applySeccomp(profilePath string) error {
	profile, err := isolation.LoadSeccompProfile(profilePath)
	if err != nil {
		return err
	}
	defaultAction := seccompAction(profile.DefaultAction)
	filter, err := seccomp.NewFilter(defaultAction)
	if err != nil {
		return fmt.Errorf("create seccomp filter: %w", err)
	}
	defer filter.Release()

	for _, rule := range profile.Syscalls {
		action := seccompAction(rule.Action)
		if action == defaultAction {
			continue
		}
		for _, name := range rule.Names {
			call, err := seccomp.GetSyscallFromName(name)
			if err != nil {
				// not every syscall exists on every architecture
				continue
			}
			if err := filter.AddRuleExact(call, action); err != nil {
				return fmt.Errorf("add seccomp rule %s: %w", name, err)
			}
		}
	}
	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return fmt.Errorf("set no new privs: %w", err)
	}
	if err := filter.Load(); err != nil {
		return fmt.Errorf("load seccomp filter: %w", err)
	}
	return nil
}

// seccompAction maps a validated SCMP_ACT_* name.
func seccompAction(name string) seccomp.ScmpAction {
	switch name {
	case "SCMP_ACT_ALLOW":
		return seccomp.ActAllow
	case "SCMP_ACT_ERRNO":
		return seccomp.ActErrno.SetReturnCode(int16(unix.EPERM))
	default:
		return seccomp.ActKillProcess
	}
}
