//go:build !linux

package isolation

import (
	"context"

	pkgerrors "polyrun/pkg/errors"
)

// Docker is unavailable off Linux; runs fall back to direct execution.
type Docker struct {
	cfg DockerConfig
}

func NewDocker(cfg DockerConfig) (*Docker, error) {
	cfg.setDefaults()
	return &Docker{cfg: cfg}, nil
}

func (d *Docker) Name() string { return "docker" }

func (d *Docker) Supported() bool { return false }

func (d *Docker) Provision(ctx context.Context, scratchDir string) (Context, error) {
	return nil, pkgerrors.New(pkgerrors.IsolationProvisionFailure).
		WithMessage("docker isolation is only supported on linux")
}

func (d *Docker) EnsureImage(ctx context.Context) error {
	return nil
}

func (d *Docker) Close() error {
	return nil
}
