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

func TestHealthMonitorSamplesOnRun(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.set(domain.ResourceSnapshot{MemoryUsedPercent: 42, SampledAt: time.Now()}, nil)

	monitor := startedHealthMonitor(t, sampler)

	assert.InDelta(t, 42, monitor.Snapshot().MemoryUsedPercent, 1e-9)
	assert.False(t, monitor.HasIssues())
	assert.InDelta(t, 1.0, monitor.HealthScore(), 1e-9)
}

func TestHealthMonitorZeroSnapshotBeforeFirstSample(t *testing.T) {
	monitor := NewHealthMonitor(&fakeSampler{}, nil)

	assert.Zero(t, monitor.Snapshot())
	assert.False(t, monitor.HasIssues())
}

func TestHealthMonitorKeepsPreviousSnapshotOnSampleError(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.set(domain.ResourceSnapshot{MemoryUsedPercent: 90, SampledAt: time.Now()}, nil)

	monitor := NewHealthMonitor(sampler, nil)
	monitor.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		monitor.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	require.Eventually(t, func() bool {
		return monitor.HasIssues()
	}, 5*time.Second, time.Millisecond)

	sampler.set(domain.ResourceSnapshot{}, errors.New("sampling backend down"))
	time.Sleep(30 * time.Millisecond)

	assert.True(t, monitor.HasIssues(), "a failed sample keeps the last good snapshot")
	assert.InDelta(t, 90, monitor.Snapshot().MemoryUsedPercent, 1e-9)
}

func TestHealthMonitorFillsMissingSampleTimestamp(t *testing.T) {
	sampler := &fakeSampler{}
	sampler.set(domain.ResourceSnapshot{CPUPercent: 10}, nil)

	monitor := startedHealthMonitor(t, sampler)

	assert.False(t, monitor.Snapshot().SampledAt.IsZero())
}
