package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "farmhand",
		Short:         "farmhand: supervise a long-running farm-game bot session",
		Long:          "farmhand supervises one long-running game session: it serializes start/stop, watches the event stream for fatal conditions, keeps derived status views fresh, and hot-applies configuration changes.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(&verbose),
		newConfigCmd(&verbose),
	)

	return rootCmd
}
