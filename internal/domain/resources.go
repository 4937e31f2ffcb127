package domain

import "time"

// Pressure thresholds, expressed as used-percentage of the resource.
const (
	memoryPressurePercent = 85.0
	cpuPressurePercent    = 90.0
	diskPressurePercent   = 95.0
)

// ResourceSnapshot is one sample of ambient system pressure. The zero
// value means "never sampled" and reports no issues.
type ResourceSnapshot struct {
	MemoryUsedPercent float64
	CPUPercent        float64
	DiskUsedPercent   float64
	SampledAt         time.Time
}

func (s ResourceSnapshot) MemoryPressure() bool {
	return s.MemoryUsedPercent >= memoryPressurePercent
}

func (s ResourceSnapshot) CPUPressure() bool {
	return s.CPUPercent >= cpuPressurePercent
}

func (s ResourceSnapshot) DiskPressure() bool {
	return s.DiskUsedPercent >= diskPressurePercent
}

func (s ResourceSnapshot) HasIssues() bool {
	return s.MemoryPressure() || s.CPUPressure() || s.DiskPressure()
}

// HealthScore is 1.0 for a healthy system, subtracting a weighted penalty
// per pressure type, floored at 0.
func (s ResourceSnapshot) HealthScore() float64 {
	score := 1.0
	if s.MemoryPressure() {
		score -= 0.4
	}
	if s.CPUPressure() {
		score -= 0.3
	}
	if s.DiskPressure() {
		score -= 0.3
	}
	if score < 0 {
		score = 0
	}

	return score
}
