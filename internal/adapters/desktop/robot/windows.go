package robot

import (
	"context"
	"fmt"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
	"github.com/go-vgo/robotgo"
)

// Enumerator builds a window snapshot from the process list. robotgo
// exposes one main window per process, so the window id is the owning
// pid; the app-relaunch fallback in the resolver still works because a
// relaunched app changes pid and keeps its (app, title) pair.
type Enumerator struct{}

var _ ports.WindowEnumerator = Enumerator{}

func NewEnumerator() Enumerator {
	return Enumerator{}
}

func (Enumerator) Windows(ctx context.Context) ([]domain.WindowInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	processes, err := robotgo.Process()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	windows := make([]domain.WindowInfo, 0, len(processes))
	for _, proc := range processes {
		x, y, w, h := robotgo.GetBounds(proc.Pid)
		bounds := domain.Rect{
			X:      float64(x),
			Y:      float64(y),
			Width:  float64(w),
			Height: float64(h),
		}

		windows = append(windows, domain.WindowInfo{
			ID:       proc.Pid,
			PID:      proc.Pid,
			AppName:  proc.Name,
			Title:    robotgo.GetTitle(proc.Pid),
			Bounds:   bounds,
			OnScreen: !bounds.Empty(),
		})
	}

	return windows, nil
}

// Registry answers liveness queries against the running-process table.
type Registry struct{}

var _ ports.ProcessRegistry = Registry{}

func NewRegistry() Registry {
	return Registry{}
}

func (Registry) IsRunning(ctx context.Context, pid int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if pid <= 0 {
		return false, nil
	}

	running, err := robotgo.PidExists(pid)
	if err != nil {
		return false, fmt.Errorf("query pid %d: %w", pid, err)
	}

	return running, nil
}
