// Package synth runs an external CDK-synthesis command (e.g. `cdk synth`)
// as a subprocess, grounded on the teacher's adapters/terraform/adapter.go
// run() helper, generalized with the graceful-terminate-then-force-kill
// escalation spec §5/§6 requires.
package synth

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"cdk-cost-analyzer/internal/errors"
)

// Timeout is the wall-clock budget for one synthesis run (spec §5).
const Timeout = 25 * time.Second

// gracePeriod is how long the runner waits after SIGTERM before escalating
// to SIGKILL.
const gracePeriod = 3 * time.Second

// Runner executes a synthesis command in a working directory.
type Runner struct {
	WorkDir string
}

// New builds a Runner rooted at workDir.
func New(workDir string) *Runner {
	return &Runner{WorkDir: workDir}
}

// Run executes command with args under Timeout, returning its stdout as the
// template text on success. On failure it returns a *errors.Error of type
// TypeSynthesis whose message preserves a trailing slice of both streams
// for diagnostics and whose cause is the process error.
func (r *Runner) Run(ctx context.Context, command string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = r.WorkDir
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = gracePeriod // escalates to SIGKILL if SIGTERM doesn't land in time

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Synthesis(
			fmt.Sprintf("synthesis command %q failed: stderr: %s; stdout: %s",
				command, tail(stderr.String(), 4096), tail(stdout.String(), 4096)),
			err,
		)
	}

	return stdout.String(), nil
}

// tail returns at most n trailing bytes of s, for bounding diagnostic
// output on failure.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
