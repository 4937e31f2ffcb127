package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceSnapshotPressureThresholds(t *testing.T) {
	assert.False(t, ResourceSnapshot{}.HasIssues(), "zero value reports healthy")

	assert.True(t, ResourceSnapshot{MemoryUsedPercent: 85}.MemoryPressure())
	assert.False(t, ResourceSnapshot{MemoryUsedPercent: 84.9}.MemoryPressure())

	assert.True(t, ResourceSnapshot{CPUPercent: 90}.CPUPressure())
	assert.False(t, ResourceSnapshot{CPUPercent: 89.9}.CPUPressure())

	assert.True(t, ResourceSnapshot{DiskUsedPercent: 95}.DiskPressure())
	assert.False(t, ResourceSnapshot{DiskUsedPercent: 94.9}.DiskPressure())
}

func TestHealthScore(t *testing.T) {
	assert.InDelta(t, 1.0, ResourceSnapshot{}.HealthScore(), 1e-9)
	assert.InDelta(t, 0.6, ResourceSnapshot{MemoryUsedPercent: 90}.HealthScore(), 1e-9)
	assert.InDelta(t, 0.7, ResourceSnapshot{CPUPercent: 95}.HealthScore(), 1e-9)
	assert.InDelta(t, 0.3, ResourceSnapshot{MemoryUsedPercent: 90, CPUPercent: 95}.HealthScore(), 1e-9)

	exhausted := ResourceSnapshot{MemoryUsedPercent: 99, CPUPercent: 99, DiskUsedPercent: 99}
	assert.Zero(t, exhausted.HealthScore())
}
