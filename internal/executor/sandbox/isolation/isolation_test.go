package isolation

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDirectContextRunsArgvAsIs(t *testing.T) {
	ctx, err := Direct{}.Provision(context.Background(), "/tmp/scratch")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !IsDirect(ctx) {
		t.Fatalf("expected a direct context")
	}
	if ctx.Workdir() != "/tmp/scratch" {
		t.Fatalf("workdir = %q", ctx.Workdir())
	}
	argv := []string{"python3", "main.py"}
	got := ctx.Wrap(argv, []string{"A=1"})
	if !reflect.DeepEqual(got, argv) {
		t.Fatalf("wrapped = %v", got)
	}
	got[0] = "changed"
	if argv[0] != "python3" {
		t.Fatalf("Wrap must not alias the input argv")
	}
	if err := ctx.Teardown(context.Background()); err != nil {
		t.Fatalf("teardown: %v", err)
	}
}

func TestDockerExecArgv(t *testing.T) {
	got := dockerExecArgv("docker", "abc123", []string{"go", "build", "-o", "/workspace/main"}, []string{"GOCACHE=/tmp/cache", "bogus"})
	want := []string{
		"docker", "exec", "-i", "-w", ContainerWorkdir,
		"-e", "GOCACHE=/tmp/cache",
		"abc123",
		"go", "build", "-o", "/workspace/main",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("argv = %v\nwant %v", got, want)
	}
}

func TestDockerConfigDefaults(t *testing.T) {
	cfg := DockerConfig{Image: "python:3.12-slim"}
	cfg.setDefaults()
	if cfg.CLIPath != "docker" || cfg.MemoryMB != 256 || cfg.PidsLimit != 64 || cfg.CPUQuota != 100000 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestHelperArgv(t *testing.T) {
	got := helperArgv("/usr/local/bin/polyrun-sandbox-init", "/tmp/ns/request.json", []string{"python3", "-u", "main.py"})
	want := []string{
		"/usr/local/bin/polyrun-sandbox-init", "-request", "/tmp/ns/request.json", "--",
		"python3", "-u", "main.py",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("argv = %v\nwant %v", got, want)
	}
}

func TestNamespaceConfigDefaults(t *testing.T) {
	cfg := NamespaceConfig{}
	cfg.setDefaults()
	if cfg.HelperPath != DefaultHelperPath || cfg.MemoryMB != 256 || cfg.PidsLimit != 64 || cfg.CPUQuota != 100000 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestInitRequestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.json")
	in := InitRequest{
		Workdir:    "/srv/polyrun/work/go-1",
		Cgroup:     "/sys/fs/cgroup/polyrun/run-1",
		NewNetwork: true,
		Limits:     RlimitSpec{CPUTimeSec: 5, OutputMB: 16},
	}
	if err := WriteInitRequest(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadInitRequest(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("request = %+v, want %+v", out, in)
	}

	if err := WriteInitRequest(path, InitRequest{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadInitRequest(path); err == nil {
		t.Fatalf("request without work dir should be rejected")
	}
}

func TestLoadSeccompProfile(t *testing.T) {
	shipped := filepath.Join("..", "..", "..", "..", "configs", "seccomp", "default.json")
	profile, err := LoadSeccompProfile(shipped)
	if err != nil {
		t.Fatalf("shipped profile: %v", err)
	}
	if profile.DefaultAction != "SCMP_ACT_ALLOW" || len(profile.Syscalls) == 0 {
		t.Fatalf("profile = %+v", profile)
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"lower case actions", `{"defaultAction":"scmp_act_errno","syscalls":[{"names":["ptrace"],"action":"scmp_act_kill"}]}`, ""},
		{"unknown default", `{"defaultAction":"SCMP_ACT_TRACE"}`, "unsupported seccomp action"},
		{"unknown rule action", `{"defaultAction":"SCMP_ACT_ALLOW","syscalls":[{"names":["ptrace"],"action":"SCMP_ACT_LOG"}]}`, "unsupported seccomp action"},
		{"empty rule", `{"defaultAction":"SCMP_ACT_ALLOW","syscalls":[{"names":[],"action":"SCMP_ACT_KILL"}]}`, "names no syscalls"},
		{"not json", `defaultAction: allow`, "parse seccomp profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile.json")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := LoadSeccompProfile(path)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestNewNamespaceRejectsBadProfile(t *testing.T) {
	if _, err := NewNamespace(NamespaceConfig{SeccompProfile: filepath.Join(t.TempDir(), "missing.json")}); err == nil {
		t.Fatalf("expected error for a missing seccomp profile")
	}
}
