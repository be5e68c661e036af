//go:build linux

package isolation

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

func createRunCgroup(root, runID string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("cgroup root is required")
	}
	path := filepath.Join(root, "run-"+runID)
	if err := os.MkdirAll(path, 0o750); err != nil {
		return "", fmt.Errorf("create cgroup path: %w", err)
	}
	return path, nil
}

func applyCgroupLimits(path string, cfg NamespaceConfig) error {
	pids := "max"
	if cfg.PidsLimit > 0 {
		pids = strconv.FormatInt(cfg.PidsLimit, 10)
	}
	if err := writeCgroupValue(path, "pids.max", pids); err != nil {
		return err
	}
	if cfg.MemoryMB > 0 {
		memory := strconv.FormatInt(cfg.MemoryMB*1024*1024, 10)
		if err := writeCgroupValue(path, "memory.max", memory); err != nil {
			return err
		}
		// memory.swap.max only exists when swap accounting is enabled
		if _, err := os.Stat(filepath.Join(path, "memory.swap.max")); err == nil {
			if err := writeCgroupValue(path, "memory.swap.max", "0"); err != nil {
				return err
			}
		}
	}
	quota := "max"
	if cfg.CPUQuota > 0 {
		quota = strconv.FormatInt(cfg.CPUQuota, 10)
	}
	return writeCgroupValue(path, "cpu.max", quota+" 100000")
}

// JoinCgroup moves pid into the cgroup at path. Children started afterwards
// inherit it.
func JoinCgroup(path string, pid int) error {
	if pid <= 0 {
		return fmt.Errorf("invalid pid")
	}
	return writeCgroupValue(path, "cgroup.procs", strconv.Itoa(pid))
}

func killCgroup(path string) error {
	killPath := filepath.Join(path, "cgroup.kill")
	if _, err := os.Stat(killPath); err != nil {
		return err
	}
	return os.WriteFile(killPath, []byte("1"), 0o600)
}

// removeCgroup retries while killed members are still being reaped.
func removeCgroup(path string) error {
	var err error
	for i := 0; i < 20; i++ {
		if err = os.RemoveAll(path); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return err
}

func writeCgroupValue(path, name, value string) error {
	if err := os.WriteFile(filepath.Join(path, name), []byte(value), 0o640); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
