package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/michaeldyrynda/fsshell/internal/config"
	fserrors "github.com/michaeldyrynda/fsshell/internal/errors"
	"github.com/michaeldyrynda/fsshell/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or show fsshell.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write a default fsshell.yaml",
	Long: `Writes fsshell.yaml with default settings into DIR (default ".").
An existing file is left alone unless --force is given; with --force,
keys fsshell does not know about are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		path, err := config.Save(dir, config.Default(), mustGetBool(cmd, "force"))
		if err != nil {
			return err
		}

		if !mustGetBool(cmd, "quiet") {
			ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Wrote %s", path))
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(mustGetString(cmd, "config"))
		if err != nil {
			return fmt.Errorf("%w: %w", fserrors.ErrConfiguration, err)
		}

		rows := [][]string{
			{"log_level", cfg.LogLevel},
			{"temp_prefix", cfg.TempPrefix},
			{"msize.delay", cfg.Msize.Delay.String()},
			{"privileged.sudo", cfg.Privileged.Sudo},
			{"privileged.on_failure", cfg.Privileged.OnFailure.String()},
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable([]string{"KEY", "VALUE"}, rows))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing fsshell.yaml")
}
