package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/michaeldyrynda/fsshell/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "fsshell",
	Short: "Terse filesystem verbs for watcher test fixtures",
	Long: `fsshell performs single filesystem operations (create, touch, move,
remove, resize, mount) so that test fixtures and shell scripts can drive
a filesystem watcher without verbose OS calls.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if mustGetBool(cmd, "no-color") {
			ui.DisableColor()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if mustGetBool(cmd, "no-color") || !terminalAttached() {
			return cmd.Help()
		}
		printBanner(cmd)
		return nil
	},
}

func printBanner(cmd *cobra.Command) {
	titleStyle := lipgloss.NewStyle().
		Foreground(ui.Primary).
		Bold(true)

	versionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginBottom(1)

	commandsStyle := lipgloss.NewStyle().
		Foreground(ui.Text)

	commands := `Commands:
  pwd           Print the working directory
  mkfile        Create empty files
  mkdir         Create directories
  symlink       Create a symbolic link
  rm            Remove files or directories
  touch         Update timestamps, creating files as needed
  truncate      Empty files and reset their mtime
  mv            Rename a file or directory
  mkdtemp       Create a temporary directory
  ls            List directory entries
  msize         Change a file's size without changing its mtime
  mount-tmpfs   Mount a tmpfs (privileged)
  unmount       Unmount a path (privileged)
  config        Create or show fsshell.yaml
  version       Show fsshell version

Run 'fsshell <command> --help' for more information.`

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("fsshell"))
	fmt.Fprintln(out, versionStyle.Render(fmt.Sprintf("Version %s (commit: %s, built: %s)", Version, Commit, BuildDate)))
	fmt.Fprintln(out, commandsStyle.Render(commands))
}

// Execute runs the root command. Prompt aborts are not errors; anything
// else is printed to stderr and returned for the exit code.
func Execute() error {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if ui.IsAbort(err) {
			return nil
		}
		ui.PrintError(rootCmd.ErrOrStderr(), err.Error())
		return err
	}
	return nil
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to fsshell.yaml (default: ./fsshell.yaml, then the global config dir)")
	flags.Bool("verbose", false, "Enable verbose output")
	flags.Bool("quiet", false, "Suppress all output except errors")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("no-interactive", false, "Disable interactive prompts")
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}
