package cli

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	fserrors "github.com/michaeldyrynda/fsshell/internal/errors"
	"github.com/michaeldyrynda/fsshell/internal/shell"
)

var mkfileCmd = &cobra.Command{
	Use:   "mkfile PATH...",
	Short: "Create empty files",
	Long: `Creates each PATH as an empty file. Existing files keep their
content.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		for _, path := range args {
			if err := sc.Shell.Mkfile(path); err != nil {
				return err
			}
		}
		return nil
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [-p] PATH...",
	Short: "Create directories",
	Long: `Creates each PATH as a directory.

With --parents, missing parent directories are created too and an
existing directory is not an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		parents := mustGetBool(cmd, "parents")
		for _, path := range args {
			if err := sc.Shell.Mkdir(path, parents); err != nil {
				return err
			}
		}
		return nil
	},
}

var touchCmd = &cobra.Command{
	Use:   "touch [--atime T --mtime T] PATH...",
	Short: "Update timestamps, creating files as needed",
	Long: `Sets the access and modification times of each PATH to now, or to
--atime and --mtime when both are given. Missing paths are created as
empty files.

Times are RFC 3339 (2024-01-02T03:04:05Z) or Unix seconds (1704164645.5).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		times, err := timesFromFlags(cmd)
		if err != nil {
			return err
		}
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		for _, path := range args {
			if err := sc.Shell.Touch(path, times); err != nil {
				return err
			}
		}
		return nil
	},
}

var truncateCmd = &cobra.Command{
	Use:   "truncate PATH...",
	Short: "Empty files and reset their mtime",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		for _, path := range args {
			if err := sc.Shell.Truncate(path); err != nil {
				return err
			}
		}
		return nil
	},
}

var msizeCmd = &cobra.Command{
	Use:   "msize [--delay D] PATH",
	Short: "Change a file's size without changing its mtime",
	Long: `Empties PATH and pins its timestamps to the Unix epoch, waits for
--delay (default from config, 400ms), then writes one byte and pins the
timestamps to the epoch again. A watcher sees a size change with an
unchanged mtime.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		return runMaybeWithSpinner(cmd, fmt.Sprintf("Resizing %s...", args[0]), func() error {
			return sc.Shell.Msize(args[0])
		})
	},
}

func timesFromFlags(cmd *cobra.Command) (*shell.Times, error) {
	atimeRaw := mustGetString(cmd, "atime")
	mtimeRaw := mustGetString(cmd, "mtime")
	if atimeRaw == "" && mtimeRaw == "" {
		return nil, nil
	}
	if atimeRaw == "" || mtimeRaw == "" {
		return nil, fmt.Errorf("%w: --atime and --mtime must be given together", fserrors.ErrInvalidArguments)
	}

	atime, err := parseTime(atimeRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: --atime: %w", fserrors.ErrInvalidArguments, err)
	}
	mtime, err := parseTime(mtimeRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: --mtime: %w", fserrors.ErrInvalidArguments, err)
	}
	return &shell.Times{Atime: atime, Mtime: mtime}, nil
}

// parseTime accepts RFC 3339 or (fractional) Unix seconds.
func parseTime(s string) (time.Time, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		whole, frac := math.Modf(secs)
		return time.Unix(int64(whole), int64(math.Round(frac*1e9))), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: want RFC 3339 or Unix seconds", s)
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(mkfileCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(touchCmd)
	rootCmd.AddCommand(truncateCmd)
	rootCmd.AddCommand(msizeCmd)

	mkdirCmd.Flags().BoolP("parents", "p", false, "Create missing parents; an existing directory is not an error")
	touchCmd.Flags().String("atime", "", "Access time (RFC 3339 or Unix seconds)")
	touchCmd.Flags().String("mtime", "", "Modification time (RFC 3339 or Unix seconds)")
	msizeCmd.Flags().Duration("delay", 0, "Pause between the two writes (default from config)")
}
