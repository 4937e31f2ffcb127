package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
)

const revalidateInterval = 2 * time.Second

// Resolver owns the zero-or-one active target descriptor. A background
// task revalidates the target against fresh enumeration snapshots every
// couple of seconds; the scheduler only ever reads the guarded cell.
type Resolver struct {
	enum  ports.WindowEnumerator
	procs ports.ProcessRegistry

	mu      sync.Mutex
	target  *domain.TargetDescriptor
	valid   bool
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewResolver(enum ports.WindowEnumerator, procs ports.ProcessRegistry) *Resolver {
	return &Resolver{enum: enum, procs: procs}
}

// DetectWindows returns a filtered snapshot of candidate target windows.
func (r *Resolver) DetectWindows(ctx context.Context) ([]domain.WindowInfo, error) {
	windows, err := r.enum.Windows(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}

	return domain.FilterWindows(windows), nil
}

// FindInstances returns all candidate windows sharing the given
// application name, with one disambiguation label per window.
func (r *Resolver) FindInstances(ctx context.Context, appName string) ([]domain.WindowInfo, []string, error) {
	windows, err := r.DetectWindows(ctx)
	if err != nil {
		return nil, nil, err
	}

	instances := make([]domain.WindowInfo, 0, 2)
	for _, w := range windows {
		if w.AppName == appName {
			instances = append(instances, w)
		}
	}
	if len(instances) == 0 {
		return nil, nil, fmt.Errorf("%w: no window for app %q", domain.ErrWindowNotFound, appName)
	}

	return instances, domain.DisambiguationLabels(instances), nil
}

// SetTarget replaces the active descriptor and starts the background
// revalidation task. A previous target's task is stopped first.
func (r *Resolver) SetTarget(w domain.WindowInfo) domain.TargetDescriptor {
	r.ClearTarget()

	descriptor := domain.DescriptorFor(w)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.mu.Lock()
	r.target = &descriptor
	r.valid = true
	r.lastErr = nil
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go r.revalidateLoop(ctx, done)

	return descriptor
}

// ClearTarget removes the descriptor and stops the revalidation task.
// Safe to call with no target set.
func (r *Resolver) ClearTarget() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.target = nil
	r.valid = false
	r.lastErr = nil
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Current returns a copy of the active descriptor plus its last-known
// validity. The error explains an invalid target.
func (r *Resolver) Current() (domain.TargetDescriptor, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.target == nil {
		return domain.TargetDescriptor{}, false, domain.ErrTargetNotSet
	}

	return *r.target, r.valid, r.lastErr
}

func (r *Resolver) HasTarget() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.target != nil
}

// Validate checks a descriptor against the live process registry and a
// fresh enumeration snapshot. When the window id has changed (relaunch)
// but an (app, title) match exists, the match is returned as the
// refreshed descriptor.
func (r *Resolver) Validate(ctx context.Context, d domain.TargetDescriptor) (domain.TargetDescriptor, error) {
	running, err := r.procs.IsRunning(ctx, d.PID)
	if err != nil {
		return d, fmt.Errorf("query process registry: %w", err)
	}
	if !running {
		return d, fmt.Errorf("%w: pid %d", domain.ErrProcessNotFound, d.PID)
	}

	windows, err := r.enum.Windows(ctx)
	if err != nil {
		return d, fmt.Errorf("enumerate windows: %w", err)
	}

	for _, w := range windows {
		if w.ID == d.WindowID {
			refreshed := domain.DescriptorFor(w)
			refreshed.PreferProcessAddressing = d.PreferProcessAddressing
			return refreshed, nil
		}
	}

	// Fall back to app name + title: the window id changes across an
	// application relaunch.
	for _, w := range windows {
		if w.AppName == d.AppName && w.Title == d.Title {
			refreshed := domain.DescriptorFor(w)
			refreshed.PreferProcessAddressing = d.PreferProcessAddressing
			return refreshed, nil
		}
	}

	return d, fmt.Errorf("%w: window %d (%s)", domain.ErrWindowNotFound, d.WindowID, d.AppName)
}

// ValidateCurrent revalidates the active target once and updates the
// guarded validity flag.
func (r *Resolver) ValidateCurrent(ctx context.Context) (bool, error) {
	r.mu.Lock()
	if r.target == nil {
		r.mu.Unlock()
		return false, domain.ErrTargetNotSet
	}
	descriptor := *r.target
	r.mu.Unlock()

	refreshed, err := r.Validate(ctx, descriptor)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.target == nil {
		return false, domain.ErrTargetNotSet
	}
	if err != nil {
		r.valid = false
		r.lastErr = err
		return false, err
	}

	r.target = &refreshed
	r.valid = true
	r.lastErr = nil

	return true, nil
}

func (r *Resolver) revalidateLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(revalidateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = r.ValidateCurrent(ctx)
		}
	}
}
