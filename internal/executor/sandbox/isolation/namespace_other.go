//go:build !linux

package isolation

import (
	"context"

	pkgerrors "polyrun/pkg/errors"
)

// Namespace is unavailable off Linux; runs fall back to direct execution.
type Namespace struct {
	cfg NamespaceConfig
}

func NewNamespace(cfg NamespaceConfig) (*Namespace, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.IsolationProvisionFailure, "invalid namespace isolation config")
	}
	return &Namespace{cfg: cfg}, nil
}

func (n *Namespace) Name() string { return "namespace" }

func (n *Namespace) Supported() bool { return false }

func (n *Namespace) Provision(ctx context.Context, scratchDir string) (Context, error) {
	return nil, pkgerrors.New(pkgerrors.IsolationProvisionFailure).
		WithMessage("namespace isolation is only supported on linux")
}
