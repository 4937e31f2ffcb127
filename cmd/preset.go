package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newPresetCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved click configurations",
	}

	cmd.AddCommand(
		newPresetSaveCmd(app),
		newPresetListCmd(app),
		newPresetShowCmd(app),
		newPresetDeleteCmd(app),
	)

	return cmd
}

func newPresetSaveCmd(app *app) *cobra.Command {
	var flags clickFlags

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given flags as a named preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}

			preset := domain.Preset{
				Name:      args[0],
				Config:    cfg,
				UpdatedAt: app.now(),
			}
			if err := preset.Validate(); err != nil {
				return err
			}

			if err := app.presets.Save(cmd.Context(), preset); err != nil {
				return fmt.Errorf("save preset %q: %w", preset.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved preset %q\n", preset.Name)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newPresetListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := app.presets.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list presets: %w", err)
			}

			if len(presets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no presets saved")
				return nil
			}

			nameStyle := lipgloss.NewStyle().Bold(true)
			dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

			for _, p := range presets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
					nameStyle.Render(p.Name),
					dimStyle.Render(summarizeConfig(p.Config)))
			}

			return nil
		},
	}
}

func newPresetShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a preset in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := app.presets.GetByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load preset %q: %w", args[0], err)
			}

			cfg := preset.Config
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:          %s\n", preset.Name)
			fmt.Fprintf(out, "kind:          %s\n", cfg.Kind)
			if cfg.TrackPointer {
				fmt.Fprintln(out, "destination:   follow pointer")
			} else {
				fmt.Fprintf(out, "destination:   %.0f,%.0f\n", cfg.Destination.X, cfg.Destination.Y)
			}
			fmt.Fprintf(out, "interval:      %s\n", cfg.Interval)
			if cfg.TargetApp != "" {
				fmt.Fprintf(out, "target app:    %s\n", cfg.TargetApp)
			}
			if cfg.MaxClicks > 0 {
				fmt.Fprintf(out, "max clicks:    %d\n", cfg.MaxClicks)
			}
			if cfg.MaxDuration > 0 {
				fmt.Fprintf(out, "max duration:  %s\n", cfg.MaxDuration)
			}
			if cfg.Randomize {
				fmt.Fprintf(out, "randomize:     ±%.1fpx\n", cfg.Variance)
			}
			fmt.Fprintf(out, "stop on error: %t\n", cfg.StopOnError)
			fmt.Fprintf(out, "updated:       %s\n", preset.UpdatedAt.Format(time.RFC3339))

			return nil
		},
	}
}

func newPresetDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.presets.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete preset %q: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted preset %q\n", args[0])
			return nil
		},
	}
}

func summarizeConfig(cfg domain.ClickConfig) string {
	dest := fmt.Sprintf("%.0f,%.0f", cfg.Destination.X, cfg.Destination.Y)
	if cfg.TrackPointer {
		dest = "pointer"
	}

	summary := fmt.Sprintf("%s @ %s every %s", cfg.Kind, dest, cfg.Interval)
	if cfg.TargetApp != "" {
		summary += " → " + cfg.TargetApp
	}

	return summary
}
