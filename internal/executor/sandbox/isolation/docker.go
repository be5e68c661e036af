package isolation

import "strings"

// ContainerWorkdir is where the scratch directory is mounted in containers.
const ContainerWorkdir = "/workspace"

// DockerConfig configures the container provisioner of one language.
type DockerConfig struct {
	Image     string `yaml:"image"`
	CLIPath   string `yaml:"cliPath"`
	MemoryMB  int64  `yaml:"memoryMb"`
	PidsLimit int64  `yaml:"pidsLimit"`
	// CPUQuota is in units of 1/100000 CPU per 100ms period.
	CPUQuota  int64  `yaml:"cpuQuota"`
	User      string `yaml:"user"`
	PullImage bool   `yaml:"pullImage"`
}

func (c *DockerConfig) setDefaults() {
	if c.CLIPath == "" {
		c.CLIPath = "docker"
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

// dockerExecArgv builds `docker exec -i -w /workspace [-e K=V]... <id> argv...`.
func dockerExecArgv(cliPath, containerID string, argv, env []string) []string {
	out := make([]string, 0, len(argv)+len(env)*2+6)
	out = append(out, cliPath, "exec", "-i", "-w", ContainerWorkdir)
	for _, kv := range env {
		if !strings.Contains(kv, "=") {
			continue
		}
		out = append(out, "-e", kv)
	}
	out = append(out, containerID)
	return append(out, argv...)
}
