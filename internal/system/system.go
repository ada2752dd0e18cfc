package system

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner runs an external program and collects its output.
type Runner interface {
	Run(ctx context.Context, cmd string, args ...string) (stdout, stderr string, err error)
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

type NoopRunner struct{}

func (NoopRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	return "", "", nil
}

// ExecRunner executes commands directly, resolving cmd through PATH.
// It returns stdout, stderr, and an error if the command is missing or exits non-zero.
type ExecRunner struct {
	Logger logger
}

func (r ExecRunner) Run(ctx context.Context, cmd string, args ...string) (string, string, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	var outBuf, errBuf bytes.Buffer
	c.Stdout = &outBuf
	c.Stderr = &errBuf
	if r.Logger != nil {
		r.Logger.Infof("exec", "running %s %v", cmd, args)
	}
	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%s: exit %d: %w", cmd, exitErr.ExitCode(), err)
		} else {
			err = fmt.Errorf("%s: %w", cmd, err)
		}
		if r.Logger != nil {
			r.Logger.Errorf("exec", "%v", err)
		}
		return outBuf.String(), errBuf.String(), err
	}
	return outBuf.String(), errBuf.String(), nil
}
