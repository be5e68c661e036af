//go:build linux

package isolation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

func readValue(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestNamespaceProvisionWritesCgroupAndRequest(t *testing.T) {
	cgroupRoot := t.TempDir()
	ns, err := NewNamespace(NamespaceConfig{
		HelperPath: "sh",
		CgroupRoot: cgroupRoot,
		MemoryMB:   128,
		PidsLimit:  32,
		CPUQuota:   50000,
		CPUTimeSec: 7,
	})
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}
	scratch := t.TempDir()
	isoCtx, err := ns.Provision(context.Background(), scratch)
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	c := isoCtx.(*namespaceContext)
	if isoCtx.Workdir() != scratch || isoCtx.ID() == "" || IsDirect(isoCtx) {
		t.Fatalf("context = %+v", c)
	}
	if !strings.HasPrefix(c.cgroup, cgroupRoot) {
		t.Fatalf("cgroup %q not under %q", c.cgroup, cgroupRoot)
	}
	if got := readValue(t, c.cgroup, "memory.max"); got != "134217728" {
		t.Fatalf("memory.max = %q", got)
	}
	if got := readValue(t, c.cgroup, "pids.max"); got != "32" {
		t.Fatalf("pids.max = %q", got)
	}
	if got := readValue(t, c.cgroup, "cpu.max"); got != "50000 100000" {
		t.Fatalf("cpu.max = %q", got)
	}

	req, err := ReadInitRequest(c.requestPath)
	if err != nil {
		t.Fatalf("ReadInitRequest: %v", err)
	}
	if req.Workdir != scratch || req.Cgroup != c.cgroup || !req.NewNetwork || req.Limits.CPUTimeSec != 7 {
		t.Fatalf("request = %+v", req)
	}

	argv := isoCtx.Wrap([]string{"python3", "main.py"}, []string{"A=1"})
	if len(argv) != 6 || filepath.Base(argv[0]) != "sh" || argv[2] != c.requestPath || argv[4] != "python3" {
		t.Fatalf("argv = %v", argv)
	}

	if err := isoCtx.Teardown(context.Background()); err != nil {
		t.Fatalf("Teardown: %v", err)
	}
	for _, dir := range []string{c.cgroup, c.stateDir} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("%s left behind", dir)
		}
	}
}

func TestNamespaceWithoutCgroupRoot(t *testing.T) {
	ns, err := NewNamespace(NamespaceConfig{HelperPath: "sh", ShareNetwork: true})
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}
	isoCtx, err := ns.Provision(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	defer func() { _ = isoCtx.Teardown(context.Background()) }()

	req, err := ReadInitRequest(isoCtx.(*namespaceContext).requestPath)
	if err != nil {
		t.Fatalf("ReadInitRequest: %v", err)
	}
	if req.Cgroup != "" || req.NewNetwork {
		t.Fatalf("request = %+v", req)
	}
}

func TestNamespaceUnsupportedWithoutHelper(t *testing.T) {
	ns, err := NewNamespace(NamespaceConfig{HelperPath: "/definitely/not/polyrun-sandbox-init"})
	if err != nil {
		t.Fatalf("NewNamespace: %v", err)
	}
	if ns.Supported() {
		t.Fatalf("provisioner without a helper must not be supported")
	}
}

func TestNamespaceSysProcAttr(t *testing.T) {
	attr := NamespaceSysProcAttr(InitRequest{Workdir: "/w", NewNetwork: true})
	if attr.Cloneflags&syscall.CLONE_NEWNET == 0 {
		t.Fatalf("network namespace flag missing: %#x", attr.Cloneflags)
	}
	if len(attr.UidMappings) != 1 || attr.UidMappings[0].HostID != os.Getuid() || attr.UidMappings[0].ContainerID != 0 {
		t.Fatalf("uid mappings = %+v", attr.UidMappings)
	}
	shared := NamespaceSysProcAttr(InitRequest{Workdir: "/w"})
	if shared.Cloneflags&syscall.CLONE_NEWNET != 0 {
		t.Fatalf("network namespace flag should be absent")
	}
}
