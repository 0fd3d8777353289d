package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var mountTmpfsCmd = &cobra.Command{
	Use:   "mount-tmpfs [--on-failure warn|fail] PATH",
	Short: "Mount a tmpfs at PATH (privileged)",
	Long: `Runs "sudo mount -t tmpfs none PATH".

The command's exit status is always captured. With --on-failure=warn (the
default, configurable as privileged.on_failure) a failure is logged and
fsshell exits 0; with fail it exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		return runMaybeWithSpinner(cmd, fmt.Sprintf("Mounting tmpfs at %s...", args[0]), func() error {
			return sc.Shell.MountTmpfsContext(commandContext(cmd), args[0])
		})
	},
}

var unmountCmd = &cobra.Command{
	Use:   "unmount [--on-failure warn|fail] PATH",
	Short: "Unmount PATH (privileged)",
	Long:  `Runs "sudo umount PATH" with the same failure handling as mount-tmpfs.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := OpenShell(cmd)
		if err != nil {
			return err
		}
		return runMaybeWithSpinner(cmd, fmt.Sprintf("Unmounting %s...", args[0]), func() error {
			return sc.Shell.UnmountContext(commandContext(cmd), args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(mountTmpfsCmd)
	rootCmd.AddCommand(unmountCmd)

	for _, c := range []*cobra.Command{mountTmpfsCmd, unmountCmd} {
		c.Flags().String("on-failure", "", "What a failed command does: warn or fail (default from config)")
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
