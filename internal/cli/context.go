package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/fsshell/internal/config"
	fserrors "github.com/michaeldyrynda/fsshell/internal/errors"
	"github.com/michaeldyrynda/fsshell/internal/logging"
	"github.com/michaeldyrynda/fsshell/internal/privileged"
	"github.com/michaeldyrynda/fsshell/internal/shell"
	"github.com/michaeldyrynda/fsshell/internal/ui"
)

// privilegedRunner executes mount and umount. Tests swap it for a fake.
var privilegedRunner privileged.Runner = privileged.ExecRunner{}

// ShellContext is what a command needs to run its verb.
type ShellContext struct {
	Config *config.Config
	Logger *log.Logger
	Shell  *shell.Shell
}

// OpenShell loads configuration, applies flag overrides and builds the
// Shell for cmd.
func OpenShell(cmd *cobra.Command) (*ShellContext, error) {
	cfg, err := config.Load(mustGetString(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fserrors.ErrConfiguration, err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fserrors.ErrConfiguration, err)
	}
	switch {
	case mustGetBool(cmd, "verbose"):
		level = log.DebugLevel
	case mustGetBool(cmd, "quiet"):
		level = log.ErrorLevel
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	policy := cfg.Privileged.OnFailure
	if flag := cmd.Flags().Lookup("on-failure"); flag != nil && flag.Changed {
		policy, err = privileged.ParsePolicy(flag.Value.String())
		if err != nil {
			return nil, fmt.Errorf("--on-failure: %w", err)
		}
	}

	delay := cfg.Msize.Delay
	if flag := cmd.Flags().Lookup("delay"); flag != nil && flag.Changed {
		delay, err = cmd.Flags().GetDuration("delay")
		if err != nil {
			return nil, fmt.Errorf("%w: --delay: %w", fserrors.ErrInvalidArguments, err)
		}
	}

	mounter := privileged.NewMounter(privilegedRunner, cfg.Privileged.Sudo, policy, logger)

	return &ShellContext{
		Config: cfg,
		Logger: logger,
		Shell: shell.New(
			shell.WithLogger(logger),
			shell.WithMounter(mounter),
			shell.WithMsizeDelay(delay),
			shell.WithTempPrefix(cfg.TempPrefix),
		),
	}, nil
}

// terminalAttached reports whether stdin and stdout are a terminal.
// Tests swap it to drive the interactive paths.
var terminalAttached = ui.IsInteractive

func isInteractive(cmd *cobra.Command) bool {
	return !mustGetBool(cmd, "no-interactive") && terminalAttached()
}

// runMaybeWithSpinner shows a spinner for slow verbs when attached to a
// terminal and runs fn plainly otherwise.
func runMaybeWithSpinner(cmd *cobra.Command, title string, fn func() error) error {
	if isInteractive(cmd) && !mustGetBool(cmd, "quiet") {
		return ui.RunWithSpinner(title, fn)
	}
	return fn()
}
