package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedHealthMonitor(t *testing.T, sampler *fakeSampler) *HealthMonitor {
	t.Helper()

	monitor := NewHealthMonitor(sampler, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitor.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		return !monitor.Snapshot().SampledAt.IsZero()
	}, 5*time.Second, time.Millisecond)

	return monitor
}

func TestHandleFailurePermissionStillMissingStops(t *testing.T) {
	health := NewHealthMonitor(&fakeSampler{}, nil)
	engine := NewRecoveryEngine(health, fakePermissions{granted: false}, nil)

	action := engine.HandleFailure(context.Background(), domain.ErrorContext{
		Err:     domain.ErrPermissionDenied,
		Attempt: 1,
	})

	assert.Equal(t, domain.VerdictStop, action.Verdict)
	assert.Zero(t, action.Backoff)
	assert.False(t, action.Degraded)
}

func TestHandleFailurePermissionRestoredRetries(t *testing.T) {
	health := NewHealthMonitor(&fakeSampler{}, nil)
	engine := NewRecoveryEngine(health, fakePermissions{granted: true}, nil)

	action := engine.HandleFailure(context.Background(), domain.ErrorContext{
		Err:     domain.ErrPermissionDenied,
		Attempt: 1,
	})

	assert.Equal(t, domain.VerdictRetry, action.Verdict)
	assert.Equal(t, 2*time.Second, action.Backoff)
}

func TestHandleFailureUnknownErrorUnderPressure(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.set(domain.ResourceSnapshot{MemoryUsedPercent: 95, SampledAt: time.Now()}, nil)
	health := startedHealthMonitor(t, sampler)
	engine := NewRecoveryEngine(health, fakePermissions{granted: true}, nil)

	action := engine.HandleFailure(context.Background(), domain.ErrorContext{
		Err:     errors.New("boom"),
		Attempt: 1,
	})

	assert.Equal(t, domain.FailureSystem, action.Kind)
	assert.Equal(t, domain.VerdictRetry, action.Verdict)
	assert.Equal(t, 2*time.Second, action.Backoff)
}

func TestHandleFailureEmitsNotification(t *testing.T) {
	health := NewHealthMonitor(&fakeSampler{}, nil)
	engine := NewRecoveryEngine(health, fakePermissions{granted: true}, nil)

	engine.HandleFailure(context.Background(), domain.ErrorContext{
		Err:     domain.ErrClickRejected,
		Attempt: 1,
	})

	select {
	case n := <-engine.Notifications():
		assert.Equal(t, domain.SeverityInfo, n.Severity)
		assert.Equal(t, domain.FailureClick, n.Kind)
	default:
		t.Fatal("expected a notification")
	}
}

func TestHandleFailureDroppedNotificationsDoNotBlock(t *testing.T) {
	health := NewHealthMonitor(&fakeSampler{}, nil)
	engine := NewRecoveryEngine(health, fakePermissions{granted: true}, nil)

	// Nobody consumes; fill well past the channel buffer.
	for i := 0; i < notificationBuffer*2; i++ {
		engine.HandleFailure(context.Background(), domain.ErrorContext{
			Err:     domain.ErrClickRejected,
			Attempt: 1,
		})
	}

	assert.Equal(t, notificationBuffer*2, engine.Statistics().TotalFailures)
}

func TestStatisticsTracksDecisions(t *testing.T) {
	health := NewHealthMonitor(&fakeSampler{}, nil)
	engine := NewRecoveryEngine(health, fakePermissions{granted: true}, nil)

	engine.HandleFailure(context.Background(), domain.ErrorContext{Err: domain.ErrClickRejected, Attempt: 1})
	engine.HandleFailure(context.Background(), domain.ErrorContext{Err: domain.ErrClickRejected, Attempt: 2})
	engine.HandleFailure(context.Background(), domain.ErrorContext{Err: domain.ErrClickRejected, Attempt: 4})
	engine.HandleFailure(context.Background(), domain.ErrorContext{Err: domain.ErrInvalidDestination, Attempt: 1})

	stats := engine.Statistics()
	assert.Equal(t, 4, stats.TotalFailures)
	assert.Equal(t, 2, stats.Retries)
	assert.Equal(t, 1, stats.Degradations)
	assert.Equal(t, 3, stats.ByKind[domain.FailureClick])
	assert.Equal(t, 1, stats.ByKind[domain.FailureConfiguration])
}

func TestStatisticsReturnsIndependentCopy(t *testing.T) {
	health := NewHealthMonitor(&fakeSampler{}, nil)
	engine := NewRecoveryEngine(health, fakePermissions{granted: true}, nil)

	engine.HandleFailure(context.Background(), domain.ErrorContext{Err: domain.ErrClickRejected, Attempt: 1})

	stats := engine.Statistics()
	stats.ByKind[domain.FailureClick] = 99

	assert.Equal(t, 1, engine.Statistics().ByKind[domain.FailureClick])
}
