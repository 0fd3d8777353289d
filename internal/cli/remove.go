package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/fsshell/internal/fs"
	"github.com/michaeldyrynda/fsshell/internal/ui"
)

// confirmRemoval is swapped in tests.
var confirmRemoval = func(path string) (bool, error) {
	return ui.Confirm("Remove directory", fmt.Sprintf("Recursively remove %s and everything in it?", path))
}

var removeCmd = &cobra.Command{
	Use:   "rm [-r] [-f] PATH...",
	Short: "Remove files or directories",
	Long: `Removes each PATH.

A directory is only removed with --recursive; without it the command fails
with "is a directory", even for an empty directory. The flag is ignored
for files.

When attached to a terminal, recursive removal of a directory asks for
confirmation unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}

		recursive := mustGetBool(cmd, "recursive")
		force := mustGetBool(cmd, "force")

		for _, path := range args {
			if recursive && !force && isInteractive(cmd) && fs.IsDir(sc.Shell.FS(), path) {
				ok, err := confirmRemoval(path)
				if err != nil {
					return fmt.Errorf("reading confirmation: %w", err)
				}
				if !ok {
					ui.PrintWarning(cmd.ErrOrStderr(), fmt.Sprintf("Skipped %s", path))
					continue
				}
			}
			if err := sc.Shell.Rm(path, recursive); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().BoolP("recursive", "r", false, "Remove directories and their contents")
	removeCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}
