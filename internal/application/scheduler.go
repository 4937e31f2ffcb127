package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
)

const stateEventBuffer = 16

// StateChange is emitted on every scheduler lifecycle transition.
type StateChange struct {
	From domain.SessionState
	To   domain.SessionState
	At   time.Time
}

// Scheduler drives the click loop. One cancellable loop goroutine exists
// per session; clicks within it are strictly sequential. All session
// mutation happens under a single mutex shared with the user-facing
// calls.
type Scheduler struct {
	injector ports.ClickInjector
	pointer  ports.PointerDevice
	screen   ports.ScreenLayout
	overlay  ports.FeedbackOverlay
	resolver *Resolver
	recovery *RecoveryEngine
	clock    ports.Clock

	mu         sync.Mutex
	session    domain.Session
	cfg        *domain.ClickConfig
	cancel     context.CancelFunc
	done       chan struct{}
	paused     bool
	pausedAt   time.Time
	resume     chan struct{}
	systemWide bool
	rng        *rand.Rand

	events chan StateChange
}

func NewScheduler(
	injector ports.ClickInjector,
	pointer ports.PointerDevice,
	screen ports.ScreenLayout,
	overlay ports.FeedbackOverlay,
	resolver *Resolver,
	recovery *RecoveryEngine,
	clock ports.Clock,
) *Scheduler {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Scheduler{
		injector: injector,
		pointer:  pointer,
		screen:   screen,
		overlay:  overlay,
		resolver: resolver,
		recovery: recovery,
		clock:    clock,
		session:  domain.Session{State: domain.SessionIdle},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		events:   make(chan StateChange, stateEventBuffer),
	}
}

// Events is the state-change stream for the UI layer. Sends never block;
// a slow consumer loses events, not the loop.
func (s *Scheduler) Events() <-chan StateChange {
	return s.events
}

// Start launches the automation loop. Starting while a session is already
// running or paused is a silent no-op; the running session is untouched.
// Invalid configuration is the one case surfaced as an error.
func (s *Scheduler) Start(cfg domain.ClickConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State == domain.SessionRunning || s.session.State == domain.SessionPaused {
		return nil
	}

	from := s.session.State
	s.session = domain.Session{
		State:     domain.SessionRunning,
		StartedAt: s.clock.Now(),
	}
	s.cfg = &cfg
	s.paused = false
	s.resume = nil
	s.systemWide = false

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	if cfg.ShowFeedback && s.overlay != nil {
		s.overlay.Show(cfg.Destination)
	}

	s.emit(from, domain.SessionRunning)
	go s.run(ctx, cfg, s.done)

	return nil
}

// Stop cancels the loop and any in-flight backoff sleep immediately. It
// is idempotent and safe from any state; an in-flight injection call is
// allowed to complete but its result is discarded.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Pause suspends the loop before its next iteration without cancelling
// it. Paused wall-clock time never counts against the session duration.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State != domain.SessionRunning {
		return
	}

	s.paused = true
	s.pausedAt = s.clock.Now()
	s.resume = make(chan struct{})
	s.session.State = domain.SessionPaused
	s.emit(domain.SessionRunning, domain.SessionPaused)
}

// Resume continues a paused session from the next iteration; accumulated
// statistics and the start-time baseline are preserved.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.State != domain.SessionPaused {
		return
	}

	s.session.PausedFor += s.clock.Now().Sub(s.pausedAt)
	s.paused = false
	close(s.resume)
	s.resume = nil
	s.session.State = domain.SessionRunning
	s.emit(domain.SessionPaused, domain.SessionRunning)
}

func (s *Scheduler) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.State
}

// Statistics returns the derived session view. An in-progress pause span
// is excluded from the apparent duration.
func (s *Scheduler) Statistics() domain.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.session
	if s.paused {
		session.PausedFor += s.clock.Now().Sub(s.pausedAt)
	}

	return session.Statistics(s.clock.Now())
}

// PerformSingleClick is a stateless one-off click, independent of any
// running session. Useful for diagnostics.
func (s *Scheduler) PerformSingleClick(ctx context.Context, cfg domain.ClickConfig) (domain.ClickResult, error) {
	if err := cfg.Validate(); err != nil {
		return domain.ClickResult{}, fmt.Errorf("validate configuration: %w", err)
	}

	point, err := s.resolveDestination(ctx, cfg)
	if err != nil {
		return domain.ClickResult{}, err
	}

	started := s.clock.Now()
	result, err := s.injector.Click(ctx, cfg.Kind, point, 0)
	if err != nil {
		return domain.ClickResult{}, err
	}
	if result.Latency == 0 {
		result.Latency = s.clock.Now().Sub(started)
	}

	return result, nil
}

// PerformSequence clicks each configuration in order with a fixed delay
// in between, aborting on the first failure.
func (s *Scheduler) PerformSequence(ctx context.Context, cfgs []domain.ClickConfig, interval time.Duration) ([]domain.ClickResult, error) {
	results := make([]domain.ClickResult, 0, len(cfgs))
	for i, cfg := range cfgs {
		if i > 0 && !sleepCtx(ctx, interval) {
			return results, ctx.Err()
		}

		result, err := s.PerformSingleClick(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("click %d of %d: %w", i+1, len(cfgs), err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *Scheduler) run(ctx context.Context, cfg domain.ClickConfig, done chan struct{}) {
	defer close(done)
	defer s.finish()

	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}
		s.waitWhilePaused(ctx)
		if ctx.Err() != nil {
			return
		}
		if s.limitsReached(cfg) {
			return
		}

		point, targetPID, resolveErr := s.resolveAttempt(ctx, cfg)

		var result domain.ClickResult
		err := resolveErr
		if err == nil {
			if cfg.ShowFeedback && s.overlay != nil {
				s.overlay.Update(point)
			}

			started := s.clock.Now()
			result, err = s.injector.Click(ctx, cfg.Kind, point, targetPID)
			if ctx.Err() != nil {
				// Stop was requested while the injection call was in
				// flight; the result is discarded.
				return
			}
			if result.Latency == 0 {
				result.Latency = s.clock.Now().Sub(started)
			}
			s.recordClick(result, err == nil)
		}
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			failures++
			action := s.recovery.HandleFailure(ctx, domain.ErrorContext{
				Err:        err,
				Attempt:    failures,
				OccurredAt: s.clock.Now(),
			})

			switch action.Verdict {
			case domain.VerdictStop:
				return
			case domain.VerdictSwitchStrategy:
				if cfg.StopOnError {
					return
				}
				s.setSystemWide(true)
				if !sleepCtx(ctx, action.Backoff) {
					return
				}
				continue
			case domain.VerdictRetry:
				if !sleepCtx(ctx, action.Backoff) {
					return
				}
				continue
			}
		}
		failures = 0

		if s.limitsReached(cfg) {
			return
		}

		if cfg.Interval > 0 {
			if !sleepCtx(ctx, cfg.Interval) {
				return
			}
		} else {
			// Zero interval must not monopolize the scheduler; yield
			// once per iteration.
			runtime.Gosched()
		}
	}
}

// resolveAttempt produces the injection-space destination and the target
// pid for one iteration. Target validity is re-checked every iteration;
// an invalidated target surfaces here, never mid-click.
func (s *Scheduler) resolveAttempt(ctx context.Context, cfg domain.ClickConfig) (domain.Point, int, error) {
	targetPID := 0
	if s.resolver != nil && s.resolver.HasTarget() && !s.isSystemWide() {
		descriptor, valid, err := s.resolver.Current()
		if err != nil && !errors.Is(err, domain.ErrTargetNotSet) {
			return domain.Point{}, 0, err
		}
		if !valid && err == nil {
			return domain.Point{}, 0, domain.ErrWindowNotFound
		}
		if valid && descriptor.SupportsBackgroundClicking() {
			targetPID = descriptor.PID
		}
	}

	point, err := s.resolveDestination(ctx, cfg)
	if err != nil {
		return domain.Point{}, 0, err
	}

	s.mu.Lock()
	point = cfg.RandomizedPoint(point, s.rng)
	s.mu.Unlock()

	return point, targetPID, nil
}

func (s *Scheduler) resolveDestination(ctx context.Context, cfg domain.ClickConfig) (domain.Point, error) {
	monitors, err := s.screen.Monitors(ctx)
	if err != nil {
		return domain.Point{}, fmt.Errorf("query monitors: %w", err)
	}

	if cfg.TrackPointer {
		position, err := s.pointer.Position(ctx)
		if err != nil {
			return domain.Point{}, fmt.Errorf("query pointer position: %w", err)
		}
		return domain.ToInjectionSpace(position, monitors), nil
	}

	if !domain.OnAnyMonitor(cfg.Destination, monitors) {
		return domain.Point{}, fmt.Errorf("%w: %s", domain.ErrInvalidDestination, cfg.Destination)
	}

	return cfg.Destination, nil
}

func (s *Scheduler) recordClick(result domain.ClickResult, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.RecordClick(result, ok)
}

func (s *Scheduler) limitsReached(cfg domain.ClickConfig) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.MaxClicks > 0 && s.session.TotalClicks >= cfg.MaxClicks {
		return true
	}
	if cfg.MaxDuration > 0 {
		elapsed := s.clock.Now().Sub(s.session.StartedAt) - s.session.PausedFor
		if elapsed >= cfg.MaxDuration {
			return true
		}
	}

	return false
}

func (s *Scheduler) waitWhilePaused(ctx context.Context) {
	s.mu.Lock()
	resume := s.resume
	s.mu.Unlock()

	if resume == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-resume:
	}
}

func (s *Scheduler) setSystemWide(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.systemWide = v
}

func (s *Scheduler) isSystemWide() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.systemWide
}

func (s *Scheduler) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.session.State
	if s.paused {
		s.session.PausedFor += s.clock.Now().Sub(s.pausedAt)
		s.paused = false
		s.resume = nil
	}
	s.session.State = domain.SessionStopped
	s.cfg = nil
	s.cancel = nil

	if s.overlay != nil {
		s.overlay.Hide()
	}
	s.emit(from, domain.SessionStopped)
}

func (s *Scheduler) emit(from, to domain.SessionState) {
	select {
	case s.events <- StateChange{From: from, To: to, At: s.clock.Now()}:
	default:
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
