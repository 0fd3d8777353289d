package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/fsshell/internal/fs"
	"github.com/michaeldyrynda/fsshell/internal/ui"
)

var pwdCmd = &cobra.Command{
	Use:   "pwd",
	Short: "Print the working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		cwd, err := sc.Shell.Pwd()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cwd)
		return nil
	},
}

var mkdtempCmd = &cobra.Command{
	Use:   "mkdtemp",
	Short: "Create a temporary directory",
	Long: `Creates a uniquely named directory under the OS temp root and prints
its path. The directory is not removed automatically.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		dir, err := sc.Shell.Mkdtemp()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls [-l] [PATH]",
	Short: "List directory entries",
	Long: `Prints the names directly inside PATH (default "."), in the order
the filesystem reports them. --long renders a table with type, size and
modification time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}

		path := "."
		if len(args) > 0 {
			path = args[0]
		}

		names, err := sc.Shell.Ls(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !mustGetBool(cmd, "long") {
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		}

		rows := make([][]string, 0, len(names))
		for _, name := range names {
			info, err := fs.Lstat(sc.Shell.FS(), filepath.Join(path, name))
			if err != nil {
				return err
			}
			rows = append(rows, []string{
				name,
				entryType(info),
				strconv.FormatInt(info.Size(), 10),
				info.ModTime().UTC().Format(time.RFC3339),
			})
		}
		fmt.Fprintln(out, ui.RenderListing(rows))
		return nil
	},
}

func entryType(info os.FileInfo) string {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return "link"
	case info.IsDir():
		return "dir"
	}
	return "file"
}

func init() {
	rootCmd.AddCommand(pwdCmd)
	rootCmd.AddCommand(mkdtempCmd)
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().BoolP("long", "l", false, "Show type, size and modification time")
}
