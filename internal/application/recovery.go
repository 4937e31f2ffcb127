package application

import (
	"context"
	"sync"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
)

const notificationBuffer = 32

// RecoveryStatistics is a read-only view of the engine's decisions so
// far.
type RecoveryStatistics struct {
	TotalFailures int
	Retries       int
	Degradations  int
	ByKind        map[domain.FailureKind]int
}

// RecoveryEngine classifies failed click attempts and decides whether the
// scheduler retries, switches strategy or stops. Every decision emits a
// severity-tagged notification on a non-blocking channel.
type RecoveryEngine struct {
	health      *HealthMonitor
	permissions ports.PermissionChecker
	clock       ports.Clock

	mu     sync.Mutex
	stats  RecoveryStatistics
	events chan domain.Notification
}

func NewRecoveryEngine(health *HealthMonitor, permissions ports.PermissionChecker, clock ports.Clock) *RecoveryEngine {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RecoveryEngine{
		health:      health,
		permissions: permissions,
		clock:       clock,
		stats:       RecoveryStatistics{ByKind: map[domain.FailureKind]int{}},
		events:      make(chan domain.Notification, notificationBuffer),
	}
}

// Notifications is the stream consumed by the UI layer. Events are
// dropped rather than blocking the loop when nobody is listening.
func (e *RecoveryEngine) Notifications() <-chan domain.Notification {
	return e.events
}

// HandleFailure runs one classification + decision cycle. Permission
// failures recheck the live permission state first: a permission that has
// been granted in the meantime downgrades to a plain retry, one still
// missing is not worth retrying at all.
func (e *RecoveryEngine) HandleFailure(ctx context.Context, errCtx domain.ErrorContext) domain.RecoveryAction {
	if errCtx.OccurredAt.IsZero() {
		errCtx.OccurredAt = e.clock.Now()
	}

	analysis := domain.Classify(errCtx, e.health.Snapshot())
	action := domain.DecideRecovery(analysis)

	if analysis.Kind == domain.FailurePermission && action.Verdict == domain.VerdictRetry {
		if !e.permissions.AccessibilityGranted(ctx) {
			action.Verdict = domain.VerdictStop
			action.Backoff = 0
		}
	}

	e.record(analysis, action)
	e.notify(domain.NotificationFor(analysis, action))

	return action
}

func (e *RecoveryEngine) record(analysis domain.ErrorAnalysis, action domain.RecoveryAction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.TotalFailures++
	e.stats.ByKind[analysis.Kind]++
	switch {
	case action.Degraded:
		e.stats.Degradations++
	case action.Verdict != domain.VerdictStop:
		e.stats.Retries++
	}
}

func (e *RecoveryEngine) notify(n domain.Notification) {
	select {
	case e.events <- n:
	default:
	}
}

func (e *RecoveryEngine) Statistics() RecoveryStatistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	byKind := make(map[domain.FailureKind]int, len(e.stats.ByKind))
	for kind, count := range e.stats.ByKind {
		byKind[kind] = count
	}

	return RecoveryStatistics{
		TotalFailures: e.stats.TotalFailures,
		Retries:       e.stats.Retries,
		Degradations:  e.stats.Degradations,
		ByKind:        byKind,
	}
}
