package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newClickCmd(app *app) *cobra.Command {
	var points []string
	var kind string
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "click",
		Short: "Perform one click, or a sequence of clicks, immediately",
		Example: `  clickloop click --at 640,400
  clickloop click --at 100,100 --at 300,100 --at 300,300 --interval 250ms --kind double`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(points) == 0 {
				return fmt.Errorf("at least one --at x,y is required")
			}

			cfgs := make([]domain.ClickConfig, 0, len(points))
			for _, raw := range points {
				p, err := parsePoint(raw)
				if err != nil {
					return err
				}
				cfgs = append(cfgs, domain.ClickConfig{
					Destination: p,
					Kind:        domain.ClickKind(kind),
					Interval:    interval,
				})
			}

			if len(cfgs) == 1 {
				result, err := app.scheduler.PerformSingleClick(cmd.Context(), cfgs[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "clicked %s at %.0f,%.0f (%s)\n",
					kind, cfgs[0].Destination.X, cfgs[0].Destination.Y, result.Latency.Round(time.Microsecond))
				return err
			}

			results, err := app.scheduler.PerformSequence(cmd.Context(), cfgs, interval)
			if err != nil {
				return fmt.Errorf("after %d of %d clicks: %w", len(results), len(cfgs), err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "performed %d clicks\n", len(results))
			return err
		},
	}

	cmd.Flags().StringArrayVar(&points, "at", nil, "Click destination as x,y (repeat for a sequence)")
	cmd.Flags().StringVar(&kind, "kind", string(domain.ClickLeft), "Click kind: left, right, center or double")
	cmd.Flags().DurationVar(&interval, "interval", 100*time.Millisecond, "Delay between sequence clicks")

	return cmd
}

func parsePoint(raw string) (domain.Point, error) {
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return domain.Point{}, fmt.Errorf("invalid point %q: expected x,y", raw)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("invalid point %q: %w", raw, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("invalid point %q: %w", raw, err)
	}

	return domain.Point{X: x, Y: y}, nil
}
