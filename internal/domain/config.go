package domain

import (
	"fmt"
	"math/rand"
	"time"
)

type ClickKind string

const (
	ClickLeft   ClickKind = "left"
	ClickRight  ClickKind = "right"
	ClickMiddle ClickKind = "center"
	ClickDouble ClickKind = "double"
)

func (k ClickKind) Valid() bool {
	switch k {
	case ClickLeft, ClickRight, ClickMiddle, ClickDouble:
		return true
	default:
		return false
	}
}

// ClickConfig is the immutable per-session configuration. Destination is
// given in injection space; when TrackPointer is set the static
// destination is ignored and the live pointer position is used instead.
type ClickConfig struct {
	Destination  Point
	TrackPointer bool
	Kind         ClickKind
	Interval     time.Duration
	TargetApp    string
	MaxClicks    int
	MaxDuration  time.Duration
	StopOnError  bool
	Randomize    bool
	Variance     float64
	ShowFeedback bool
}

func (c ClickConfig) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("unsupported click kind %q", c.Kind)
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must not be negative")
	}
	if c.MaxClicks < 0 {
		return fmt.Errorf("max clicks must not be negative")
	}
	if c.MaxDuration < 0 {
		return fmt.Errorf("max duration must not be negative")
	}
	if c.Randomize && c.Variance <= 0 {
		return fmt.Errorf("variance must be positive when randomization is enabled")
	}

	return nil
}

// RandomizedPoint perturbs both axes independently by a uniform offset
// within ±Variance. Without randomization the point is returned as is.
func (c ClickConfig) RandomizedPoint(p Point, rng *rand.Rand) Point {
	if !c.Randomize || c.Variance <= 0 {
		return p
	}

	return Point{
		X: p.X + (rng.Float64()*2-1)*c.Variance,
		Y: p.Y + (rng.Float64()*2-1)*c.Variance,
	}
}

// ClickResult is the outcome of one injected click.
type ClickResult struct {
	Latency time.Duration
}
