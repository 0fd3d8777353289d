// Package privileged runs the mount commands that need elevated rights.
//
// The exit status of every command is captured. What happens with a
// failure is decided by a FailurePolicy: PolicyWarn logs and carries on,
// PolicyFail hands the error to the caller.
package privileged

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// FailurePolicy decides what a failed privileged command does.
type FailurePolicy string

const (
	PolicyWarn FailurePolicy = "warn"
	PolicyFail FailurePolicy = "fail"
)

// DefaultSudo is the command used to elevate mount and umount.
const DefaultSudo = "sudo"

var ErrUnknownPolicy = errors.New("unknown failure policy")

// ParsePolicy accepts "warn" or "fail" in any case.
func ParsePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyWarn:
		return PolicyWarn, nil
	case PolicyFail:
		return PolicyFail, nil
	}
	return "", fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownPolicy, s, PolicyWarn, PolicyFail)
}

func (p FailurePolicy) String() string {
	return string(p)
}

// CommandError describes a privileged command that did not succeed.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Mounter mounts and unmounts tmpfs filesystems through an elevated shell.
type Mounter struct {
	runner Runner
	sudo   string
	policy FailurePolicy
	logger *log.Logger
}

// NewMounter creates a Mounter. An empty sudo runs mount/umount directly,
// an empty policy means PolicyWarn.
func NewMounter(runner Runner, sudo string, policy FailurePolicy, logger *log.Logger) *Mounter {
	if runner == nil {
		runner = ExecRunner{}
	}
	if policy == "" {
		policy = PolicyWarn
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Mounter{runner: runner, sudo: sudo, policy: policy, logger: logger}
}

// Policy returns the failure policy in effect.
func (m *Mounter) Policy() FailurePolicy {
	return m.policy
}

// MountTmpfs mounts an in-memory filesystem at path.
func (m *Mounter) MountTmpfs(ctx context.Context, path string) error {
	return m.run(ctx, "mount", "-t", "tmpfs", "none", path)
}

// Unmount unmounts whatever is mounted at path.
func (m *Mounter) Unmount(ctx context.Context, path string) error {
	return m.run(ctx, "umount", path)
}

func (m *Mounter) run(ctx context.Context, args ...string) error {
	name := args[0]
	rest := args[1:]
	if m.sudo != "" {
		name = m.sudo
		rest = args
	}
	commandLine := strings.Join(append([]string{name}, rest...), " ")

	m.logger.Debug("running privileged command", "command", commandLine)
	_, stderr, err := m.runner.Run(ctx, name, rest, "")
	if err == nil {
		return nil
	}
	// Cancellation is never downgraded to a warning.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	cmdErr := &CommandError{
		Command: commandLine,
		Stderr:  strings.TrimSpace(string(stderr)),
		Err:     err,
	}
	if m.policy == PolicyFail {
		return cmdErr
	}
	m.logger.Warn("privileged command failed", "command", commandLine, "err", err, "stderr", cmdErr.Stderr)
	return nil
}
