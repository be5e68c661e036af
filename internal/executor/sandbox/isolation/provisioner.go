// Package isolation provides the execution contexts a harness run can be
// bound to. Direct runs on the host; Docker and Namespace isolate each run.
package isolation

import "context"

// Provisioner creates an isolated context bound to one scratch directory.
type Provisioner interface {
	Name() string
	// Supported reports whether the provisioner can work on this host.
	Supported() bool
	Provision(ctx context.Context, scratchDir string) (Context, error)
}

// Context is one provisioned execution environment. It is owned by a single
// run and must be torn down before the run returns.
type Context interface {
	ID() string
	// Workdir is the scratch directory as seen by commands.
	Workdir() string
	// Wrap turns a command into the host argv that runs it inside the context.
	// Entries of env are KEY=VALUE pairs.
	Wrap(argv, env []string) []string
	Teardown(ctx context.Context) error
}

// Direct runs commands on the host, in the scratch directory.
type Direct struct{}

func (Direct) Name() string { return "direct" }

func (Direct) Supported() bool { return true }

func (Direct) Provision(_ context.Context, scratchDir string) (Context, error) {
	return directContext{dir: scratchDir}, nil
}

type directContext struct {
	dir string
}

func (d directContext) ID() string { return "" }

func (d directContext) Workdir() string { return d.dir }

func (d directContext) Wrap(argv, _ []string) []string {
	out := make([]string, len(argv))
	copy(out, argv)
	return out
}

func (d directContext) Teardown(context.Context) error { return nil }

// IsDirect reports whether c runs commands on the host without wrapping.
func IsDirect(c Context) bool {
	_, ok := c.(directContext)
	return ok
}
