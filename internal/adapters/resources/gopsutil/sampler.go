package gopsutil

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sampler reads memory, CPU and disk pressure through gopsutil.
type Sampler struct {
	diskPath string
}

var _ ports.ResourceSampler = (*Sampler)(nil)

func NewSampler() *Sampler {
	return &Sampler{diskPath: "/"}
}

func (s *Sampler) Sample(ctx context.Context) (domain.ResourceSnapshot, error) {
	snapshot := domain.ResourceSnapshot{SampledAt: time.Now()}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return domain.ResourceSnapshot{}, fmt.Errorf("sample memory: %w", err)
	}
	snapshot.MemoryUsedPercent = vm.UsedPercent

	// Interval 0 measures since the previous call, which matches the
	// monitor's fixed sampling cadence.
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return domain.ResourceSnapshot{}, fmt.Errorf("sample cpu: %w", err)
	}
	if len(percents) > 0 {
		snapshot.CPUPercent = percents[0]
	}

	usage, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		return domain.ResourceSnapshot{}, fmt.Errorf("sample disk: %w", err)
	}
	snapshot.DiskUsedPercent = usage.UsedPercent

	return snapshot, nil
}
