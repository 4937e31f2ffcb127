package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/spf13/cobra"
)

// clickFlags is the shared flag set used by run and preset save.
type clickFlags struct {
	x            float64
	y            float64
	follow       bool
	kind         string
	interval     time.Duration
	app          string
	maxClicks    int
	maxDuration  time.Duration
	stopOnError  bool
	randomize    bool
	variance     float64
	showFeedback bool
}

func (f *clickFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.x, "x", 0, "Destination X (top-left origin)")
	cmd.Flags().Float64Var(&f.y, "y", 0, "Destination Y (top-left origin)")
	cmd.Flags().BoolVar(&f.follow, "follow", false, "Click at the live pointer position instead of a fixed point")
	cmd.Flags().StringVar(&f.kind, "kind", string(domain.ClickLeft), "Click kind: left, right, center or double")
	cmd.Flags().DurationVar(&f.interval, "interval", 100*time.Millisecond, "Delay between clicks")
	cmd.Flags().StringVar(&f.app, "app", "", "Target application name (clicks are delivered to its process)")
	cmd.Flags().IntVar(&f.maxClicks, "clicks", 0, "Stop after this many clicks (0 = unlimited)")
	cmd.Flags().DurationVar(&f.maxDuration, "duration", 0, "Stop after this much active time (0 = unlimited)")
	cmd.Flags().BoolVar(&f.stopOnError, "stop-on-error", false, "Stop the session on the first unrecoverable error")
	cmd.Flags().BoolVar(&f.randomize, "randomize", false, "Randomize each click within ±variance pixels")
	cmd.Flags().Float64Var(&f.variance, "variance", 0, "Randomization radius in pixels")
	cmd.Flags().BoolVar(&f.showFeedback, "feedback", false, "Show visual feedback for every resolved click point")
}

func (f *clickFlags) config() (domain.ClickConfig, error) {
	cfg := domain.ClickConfig{
		Destination:  domain.Point{X: f.x, Y: f.y},
		TrackPointer: f.follow,
		Kind:         domain.ClickKind(f.kind),
		Interval:     f.interval,
		TargetApp:    f.app,
		MaxClicks:    f.maxClicks,
		MaxDuration:  f.maxDuration,
		StopOnError:  f.stopOnError,
		Randomize:    f.randomize,
		Variance:     f.variance,
		ShowFeedback: f.showFeedback,
	}

	if err := cfg.Validate(); err != nil {
		return domain.ClickConfig{}, fmt.Errorf("invalid click configuration: %w", err)
	}

	return cfg, nil
}

// apply overrides preset values with flags the user set explicitly.
func (f *clickFlags) apply(cmd *cobra.Command, cfg domain.ClickConfig) domain.ClickConfig {
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		cfg.Destination = domain.Point{X: f.x, Y: f.y}
	}
	if cmd.Flags().Changed("follow") {
		cfg.TrackPointer = f.follow
	}
	if cmd.Flags().Changed("kind") {
		cfg.Kind = domain.ClickKind(f.kind)
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = f.interval
	}
	if cmd.Flags().Changed("app") {
		cfg.TargetApp = f.app
	}
	if cmd.Flags().Changed("clicks") {
		cfg.MaxClicks = f.maxClicks
	}
	if cmd.Flags().Changed("duration") {
		cfg.MaxDuration = f.maxDuration
	}
	if cmd.Flags().Changed("stop-on-error") {
		cfg.StopOnError = f.stopOnError
	}
	if cmd.Flags().Changed("randomize") {
		cfg.Randomize = f.randomize
	}
	if cmd.Flags().Changed("variance") {
		cfg.Variance = f.variance
	}
	if cmd.Flags().Changed("feedback") {
		cfg.ShowFeedback = f.showFeedback
	}

	return cfg
}
