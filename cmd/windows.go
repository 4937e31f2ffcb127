package cmd

import (
	"fmt"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newWindowsCmd(app *app) *cobra.Command {
	var appFilter string

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List clickable windows on this desktop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var windows []domain.WindowInfo
			var labels []string
			var err error

			if appFilter != "" {
				windows, labels, err = app.resolver.FindInstances(cmd.Context(), appFilter)
			} else {
				windows, err = app.resolver.DetectWindows(cmd.Context())
				if err == nil {
					labels = domain.DisambiguationLabels(windows)
				}
			}
			if err != nil {
				return err
			}

			appStyle := lipgloss.NewStyle().Bold(true)
			dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

			for i, w := range windows {
				state := "visible"
				if !w.OnScreen {
					state = "offscreen"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					appStyle.Render(w.AppName),
					dimStyle.Render(fmt.Sprintf("pid %d · %.0fx%.0f · %s · instance %q",
						w.PID, w.Bounds.Width, w.Bounds.Height, state, labels[i])))
			}

			if len(windows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no clickable windows found")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&appFilter, "app", "", "Only list windows of the named application")

	return cmd
}
