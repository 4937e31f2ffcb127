package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
)

const defaultSampleInterval = 5 * time.Second

// HealthMonitor samples ambient resource pressure on a fixed interval and
// caches the last snapshot. The recovery engine reads the cache; nothing
// ever blocks on a live sample.
type HealthMonitor struct {
	sampler  ports.ResourceSampler
	clock    ports.Clock
	interval time.Duration

	mu   sync.RWMutex
	last domain.ResourceSnapshot
}

func NewHealthMonitor(sampler ports.ResourceSampler, clock ports.Clock) *HealthMonitor {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &HealthMonitor{
		sampler:  sampler,
		clock:    clock,
		interval: defaultSampleInterval,
	}
}

// Run samples until the context is cancelled. Sampling failures keep the
// previous snapshot; a monitor that cannot sample must not take the
// scheduler down with it.
func (m *HealthMonitor) Run(ctx context.Context) {
	m.sampleOnce(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sampleOnce(ctx)
		}
	}
}

func (m *HealthMonitor) sampleOnce(ctx context.Context) {
	snapshot, err := m.sampler.Sample(ctx)
	if err != nil {
		return
	}
	if snapshot.SampledAt.IsZero() {
		snapshot.SampledAt = m.clock.Now()
	}

	m.mu.Lock()
	m.last = snapshot
	m.mu.Unlock()
}

// Snapshot returns the last cached sample; the zero snapshot before the
// first sample lands.
func (m *HealthMonitor) Snapshot() domain.ResourceSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.last
}

func (m *HealthMonitor) HasIssues() bool {
	return m.Snapshot().HasIssues()
}

func (m *HealthMonitor) HealthScore() float64 {
	return m.Snapshot().HealthScore()
}
