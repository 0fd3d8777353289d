// Package errors holds the sentinel errors and exit codes of the fsshell CLI.
package errors

import (
	stderrors "errors"

	"github.com/michaeldyrynda/fsshell/internal/config"
	"github.com/michaeldyrynda/fsshell/internal/privileged"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitConfigurationError
	ExitPrivilegedCommandFailed
)

var (
	ErrInvalidArguments = stderrors.New("invalid arguments")
	ErrConfiguration    = stderrors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var cmdErr *privileged.CommandError
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.Is(err, ErrInvalidArguments), stderrors.Is(err, privileged.ErrUnknownPolicy):
		return ExitInvalidArguments
	case stderrors.Is(err, ErrConfiguration), stderrors.Is(err, config.ErrConfigExists):
		return ExitConfigurationError
	case stderrors.As(err, &cmdErr):
		return ExitPrivilegedCommandFailed
	}
	return ExitGeneralError
}
