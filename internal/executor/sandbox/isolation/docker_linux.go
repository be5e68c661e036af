//go:build linux

package isolation

import (
	"context"
	"io"
	"os/exec"
	"path/filepath"

	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Docker provisions one long-lived container per run with the scratch
// directory bind-mounted at ContainerWorkdir. Commands are run through
// `docker exec` so the harness keeps reading a plain process pipe.
type Docker struct {
	cfg       DockerConfig
	cli       *client.Client
	supported bool
}

// NewDocker creates a Docker provisioner from the environment's daemon settings.
func NewDocker(cfg DockerConfig) (*Docker, error) {
	cfg.setDefaults()
	if cfg.Image == "" {
		return nil, pkgerrors.ValidationError("image", "required")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "create docker client failed")
	}
	_, lookErr := exec.LookPath(cfg.CLIPath)
	return &Docker{cfg: cfg, cli: cli, supported: lookErr == nil}, nil
}

func (d *Docker) Name() string { return "docker" }

func (d *Docker) Supported() bool { return d.supported }

// Provision creates and starts the run's container.
func (d *Docker) Provision(ctx context.Context, scratchDir string) (Context, error) {
	hostDir, err := filepath.Abs(scratchDir)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "resolve scratch dir failed")
	}

	pidsLimit := d.cfg.PidsLimit
	memory := d.cfg.MemoryMB * 1024 * 1024
	name := "polyrun-" + uuid.NewString()

	resp, err := d.cli.ContainerCreate(ctx, &container.Config{
		Image:           d.cfg.Image,
		Cmd:             []string{"sleep", "infinity"},
		WorkingDir:      ContainerWorkdir,
		NetworkDisabled: true,
		User:            d.cfg.User,
	}, &container.HostConfig{
		Binds:       []string{hostDir + ":" + ContainerWorkdir},
		NetworkMode: "none",
		Resources: container.Resources{
			Memory:     memory,
			MemorySwap: memory,
			CPUQuota:   d.cfg.CPUQuota,
			PidsLimit:  &pidsLimit,
		},
		SecurityOpt: []string{"no-new-privileges"},
		CapDrop:     []string{"ALL"},
	}, nil, nil, name)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "create container failed").
			WithDetail("image", d.cfg.Image)
	}

	if err := d.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		_ = d.cli.ContainerRemove(context.Background(), resp.ID, container.RemoveOptions{Force: true})
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "start container failed").
			WithDetail("container", name)
	}

	return &dockerContext{cli: d.cli, cliPath: d.cfg.CLIPath, id: resp.ID}, nil
}

// EnsureImage pulls the configured image when it is not present locally.
func (d *Docker) EnsureImage(ctx context.Context) error {
	if _, _, err := d.cli.ImageInspectWithRaw(ctx, d.cfg.Image); err == nil {
		return nil
	}

	logger.Info(ctx, "pulling docker image", zap.String("image", d.cfg.Image))
	reader, err := d.cli.ImagePull(ctx, d.cfg.Image, image.PullOptions{})
	if err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "pull image %s failed", d.cfg.Image)
	}
	defer reader.Close()
	// the pull only completes once the progress stream is drained
	_, _ = io.Copy(io.Discard, reader)
	return nil
}

// Close releases the docker client.
func (d *Docker) Close() error {
	return d.cli.Close()
}

type dockerContext struct {
	cli     *client.Client
	cliPath string
	id      string
}

func (c *dockerContext) ID() string { return c.id }

func (c *dockerContext) Workdir() string { return ContainerWorkdir }

func (c *dockerContext) Wrap(argv, env []string) []string {
	return dockerExecArgv(c.cliPath, c.id, argv, env)
}

func (c *dockerContext) Teardown(ctx context.Context) error {
	if err := c.cli.ContainerRemove(ctx, c.id, container.RemoveOptions{Force: true}); err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "remove container failed").
			WithDetail("container", c.id)
	}
	return nil
}
