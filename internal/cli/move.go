package cli

import (
	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv SRC DST",
	Short: "Rename a file or directory",
	Long: `Renames SRC to DST. If the rename fails, DST is removed and the
rename retried. That fallback is not atomic.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		return sc.Shell.Mv(args[0], args[1])
	},
}

var symlinkCmd = &cobra.Command{
	Use:   "symlink [--dir] SRC DST",
	Short: "Create a symbolic link",
	Long: `Creates DST as a symbolic link to SRC. --dir marks the target as a
directory on platforms that distinguish directory links.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		return sc.Shell.Symlink(args[0], args[1], mustGetBool(cmd, "dir"))
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(symlinkCmd)

	symlinkCmd.Flags().Bool("dir", false, "Target is a directory")
}
