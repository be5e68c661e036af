package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	pkgerrors "polyrun/pkg/errors"
	"polyrun/pkg/utils/logger"

	"go.uber.org/zap"
)

// Detail keys attached to command errors.
const (
	DetailConsole  = "console"
	DetailExitCode = "exit_code"
	DetailCommand  = "command"
	DetailElapsed  = "elapsed_ms"
)

const readChunkSize = 32 * 1024

// CommandSpec is one external process invocation.
// Zero durations take the harness defaults.
type CommandSpec struct {
	Argv []string
	// Env entries are KEY=VALUE and are added to the service environment.
	Env []string
	// IdleTimeout aborts the process when it stays silent this long.
	IdleTimeout time.Duration
	// MaxWait is the absolute ceiling on the read loop.
	MaxWait time.Duration
	// JoinInterval bounds the wait for exit once output has ended.
	JoinInterval time.Duration
}

// ExecuteCommand runs spec in dir and returns its merged stdout and stderr.
// A non-zero exit yields RuntimeFailure; both carry the console text.
func (h *Harness) ExecuteCommand(ctx context.Context, dir string, spec CommandSpec) (string, error) {
	return h.executeStep(ctx, dir, spec, pkgerrors.RuntimeFailure)
}

func (h *Harness) withDefaults(spec CommandSpec) CommandSpec {
	if spec.IdleTimeout <= 0 {
		spec.IdleTimeout = h.cfg.IdleTimeout
	}
	if spec.JoinInterval <= 0 {
		spec.JoinInterval = h.cfg.JoinInterval
	}
	if spec.MaxWait <= 0 {
		spec.MaxWait = time.Duration(h.cfg.MaxWaitFactor) * spec.JoinInterval
	}
	return spec
}

// executeStep launches the process with stdout and stderr on one pipe and
// reads it under two deadlines: an idle deadline pushed back by every read,
// and an absolute ceiling. The process group is killed on every path where
// the process is still alive.
func (h *Harness) executeStep(ctx context.Context, dir string, spec CommandSpec, failCode pkgerrors.ErrorCode) (string, error) {
	if len(spec.Argv) == 0 {
		return "", pkgerrors.New(pkgerrors.SandboxSystemError).WithMessage("command is empty")
	}
	spec = h.withDefaults(spec)
	command := strings.Join(spec.Argv, " ")

	pr, pw, err := os.Pipe()
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "create output pipe failed")
	}
	defer pr.Close()

	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), spec.Env...)
	cmd.Stdout = pw
	cmd.Stderr = pw
	setProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		pw.Close()
		return "", pkgerrors.Wrapf(err, pkgerrors.SandboxSystemError, "launch %s failed", spec.Argv[0]).
			WithDetail(DetailCommand, command)
	}
	// the child holds its own copy; ours must go for EOF to arrive
	pw.Close()

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()
	exited := false
	defer func() {
		if exited {
			// descendants left in the group after a clean exit
			_ = killProcessTree(cmd)
			return
		}
		if err := killProcessTree(cmd); err != nil {
			logger.Warn(ctx, "kill process failed", zap.String("command", command), zap.Error(err))
		}
		<-waitCh
	}()

	chunks := make(chan []byte, 16)
	stopReading := make(chan struct{})
	defer close(stopReading)
	go func() {
		defer close(chunks)
		for {
			buf := make([]byte, readChunkSize)
			n, err := pr.Read(buf)
			if n > 0 {
				select {
				case chunks <- buf[:n]:
				case <-stopReading:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	var (
		output    bytes.Buffer
		timeout   string
		truncated bool
		waitErr   error
	)
	consume := func(chunk []byte) bool {
		if h.cfg.MaxOutputBytes > 0 && output.Len()+len(chunk) > h.cfg.MaxOutputBytes {
			output.Write(chunk[:h.cfg.MaxOutputBytes-output.Len()])
			truncated = true
			return false
		}
		output.Write(chunk)
		return true
	}
	idle := time.NewTimer(spec.IdleTimeout)
	defer idle.Stop()
	ceiling := time.NewTimer(spec.MaxWait)
	defer ceiling.Stop()

read:
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok || !consume(chunk) {
				break read
			}
			idle.Reset(spec.IdleTimeout)
		case waitErr = <-waitCh:
			exited = true
			drainAfterExit(chunks, spec.JoinInterval, consume)
			break read
		case <-idle.C:
			timeout = "no output for " + spec.IdleTimeout.String()
			break read
		case <-ceiling.C:
			timeout = "still running after " + spec.MaxWait.String()
			break read
		case <-ctx.Done():
			timeout = "canceled: " + ctx.Err().Error()
			break read
		}
	}

	failure := func(code pkgerrors.ErrorCode, cause error, format string, args ...interface{}) *pkgerrors.Error {
		var e *pkgerrors.Error
		if cause != nil {
			e = pkgerrors.Wrapf(cause, code, format, args...)
		} else {
			e = pkgerrors.Newf(code, format, args...)
		}
		return e.WithDetail(DetailConsole, DecodeConsole(output.Bytes())).
			WithDetail(DetailCommand, command).
			WithDetail(DetailElapsed, time.Since(start).Milliseconds())
	}

	if timeout != "" {
		return "", failure(pkgerrors.ExecutionTimeout, nil, "%s timed out: %s", spec.Argv[0], timeout)
	}
	if truncated {
		return "", failure(failCode, nil, "%s exceeded the output limit of %d bytes", spec.Argv[0], h.cfg.MaxOutputBytes)
	}

	if !exited {
		select {
		case waitErr = <-waitCh:
			exited = true
		case <-time.After(spec.JoinInterval):
			return "", failure(pkgerrors.ExecutionTimeout, nil, "%s did not exit within %s after closing its output", spec.Argv[0], spec.JoinInterval)
		}
	}

	console := DecodeConsole(output.Bytes())
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return "", failure(failCode, waitErr, "%s exited with code %d", spec.Argv[0], exitErr.ExitCode()).
				WithDetail(DetailExitCode, exitErr.ExitCode())
		}
		return "", failure(pkgerrors.SandboxSystemError, waitErr, "wait for %s failed", spec.Argv[0])
	}
	return console, nil
}

// drainAfterExit collects what is still buffered on the pipe once the process
// has exited. Descendants that inherited the pipe may hold it open, so the
// wait is bounded by limit.
func drainAfterExit(chunks <-chan []byte, limit time.Duration, consume func([]byte) bool) {
	deadline := time.NewTimer(limit)
	defer deadline.Stop()
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok || !consume(chunk) {
				return
			}
		case <-deadline.C:
			return
		}
	}
}
