package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clickloop",
		Short:         "clickloop: scheduled pointer-click automation",
		Long:          "clickloop automates repeated pointer clicks against a screen location or a specific application window, with configurable cadence, limits, randomization and automatic failure recovery.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newClickCmd(app),
		newWindowsCmd(app),
		newPresetCmd(app),
	)

	return rootCmd
}
