package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	statusadapter "github.com/bnema/clickloop-cli/internal/adapters/render/status"
	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var flags clickFlags
	var presetName string
	var instance string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a click automation session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := resolveRunConfig(cmd, app, &flags, presetName)
			if err != nil {
				return err
			}

			if cfg.TargetApp != "" {
				clearTarget, err := selectTarget(ctx, app, cfg.TargetApp, instance)
				if err != nil {
					return err
				}
				defer clearTarget()
			}

			healthCtx, stopHealth := context.WithCancel(ctx)
			defer stopHealth()
			go app.health.Run(healthCtx)

			notifyDone := make(chan struct{})
			go printNotifications(ctx, cmd.ErrOrStderr(), app, notifyDone)

			if err := app.scheduler.Start(cfg); err != nil {
				return err
			}

			go func() {
				<-ctx.Done()
				app.scheduler.Stop()
			}()

			if err := waitForSession(ctx, cmd.OutOrStdout(), app, quiet); err != nil {
				return err
			}

			stop()
			<-notifyDone

			report := statusadapter.Report{
				Session:  app.scheduler.Statistics(),
				Recovery: app.recovery.Statistics(),
			}
			rendered, err := app.renderReport(report, statusadapter.RenderOptions{ShowRecovery: true})
			if err != nil {
				return fmt.Errorf("render session report: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)

			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&presetName, "preset", "", "Load the named preset as the base configuration")
	cmd.Flags().StringVar(&instance, "instance", "", "Disambiguation label when multiple windows match --app")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress the live session view")

	return cmd
}

func resolveRunConfig(cmd *cobra.Command, app *app, flags *clickFlags, presetName string) (domain.ClickConfig, error) {
	if presetName == "" {
		return flags.config()
	}

	preset, err := app.presets.GetByName(cmd.Context(), presetName)
	if err != nil {
		return domain.ClickConfig{}, fmt.Errorf("load preset %q: %w", presetName, err)
	}

	cfg := flags.apply(cmd, preset.Config)
	if err := cfg.Validate(); err != nil {
		return domain.ClickConfig{}, fmt.Errorf("invalid click configuration: %w", err)
	}

	return cfg, nil
}

// selectTarget resolves --app (plus --instance when ambiguous) to a
// window and registers it with the resolver. The returned func clears
// the target again.
func selectTarget(ctx context.Context, app *app, appName, instance string) (func(), error) {
	instances, labels, err := app.resolver.FindInstances(ctx, appName)
	if err != nil {
		return nil, err
	}

	selected := instances[0]
	if len(instances) > 1 {
		if instance == "" {
			return nil, fmt.Errorf("multiple windows match %q; pick one with --instance:\n  %s",
				appName, strings.Join(labels, "\n  "))
		}
		found := false
		for i, label := range labels {
			if label == instance {
				selected = instances[i]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no window labelled %q; options:\n  %s", instance, strings.Join(labels, "\n  "))
		}
	}

	app.resolver.SetTarget(selected)

	return app.resolver.ClearTarget, nil
}

func printNotifications(ctx context.Context, out io.Writer, app *app, done chan<- struct{}) {
	defer close(done)

	styleFor := map[domain.Severity]lipgloss.Style{
		domain.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		domain.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}

	for {
		select {
		case <-ctx.Done():
			return
		case n := <-app.recovery.Notifications():
			line := fmt.Sprintf("[%s] %s: %s", n.Severity, n.Title, n.Message)
			if len(n.Options) > 0 {
				line += " (" + strings.Join(n.Options, " / ") + ")"
			}
			fmt.Fprintln(out, styleFor[n.Severity].Render(line))
		}
	}
}

func waitForSession(ctx context.Context, out io.Writer, app *app, quiet bool) error {
	if !quiet {
		return runSessionView(ctx, out, app.scheduler)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-app.scheduler.Events():
			if change.To == domain.SessionStopped {
				return nil
			}
		}
	}
}
