package status

import (
	"testing"
	"time"

	"github.com/bnema/clickloop-cli/internal/application"
	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSessionReport(t *testing.T) {
	output, err := Render(Report{
		Session: domain.Statistics{
			State:            domain.SessionStopped,
			Duration:         2*time.Minute + 30*time.Second,
			TotalClicks:      1500,
			SuccessfulClicks: 1470,
			SuccessRate:      0.98,
			ClicksPerSecond:  10.0,
			AverageLatency:   1200 * time.Microsecond,
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Click Session")
	assert.Contains(t, output, "state: stopped")
	assert.Contains(t, output, "1500 (1470 ok)")
	assert.Contains(t, output, "98%")
	assert.Contains(t, output, "2m30s")
	assert.Contains(t, output, "10.0 clicks/s")
	assert.Contains(t, output, "1.2ms avg")
	assert.Contains(t, output, "[")
	assert.Contains(t, output, "]")
	assert.NotContains(t, output, "Recovery")
}

func TestRenderIncludesRecoverySection(t *testing.T) {
	output, err := Render(Report{
		Session: domain.Statistics{
			State:       domain.SessionStopped,
			TotalClicks: 10,
		},
		Recovery: application.RecoveryStatistics{
			TotalFailures: 3,
			Retries:       2,
			Degradations:  1,
			ByKind: map[domain.FailureKind]int{
				domain.FailureClick:         2,
				domain.FailureTargetProcess: 1,
			},
		},
	}, RenderOptions{ShowRecovery: true})

	require.NoError(t, err)
	assert.Contains(t, output, "Recovery")
	assert.Contains(t, output, "failures:")
	assert.Contains(t, output, "retries:")
	assert.Contains(t, output, "degraded 1 time(s)")
	assert.Contains(t, output, "clickFailure")
	assert.Contains(t, output, "targetProcessIssue")
}

func TestRenderRecoveryEmptyState(t *testing.T) {
	output, err := Render(Report{
		Session: domain.Statistics{State: domain.SessionStopped},
	}, RenderOptions{ShowRecovery: true})

	require.NoError(t, err)
	assert.Contains(t, output, "No failures recovered.")
}

func TestRenderSubSecondDurationUsesMilliseconds(t *testing.T) {
	output, err := Render(Report{
		Session: domain.Statistics{
			State:       domain.SessionStopped,
			Duration:    750 * time.Millisecond,
			TotalClicks: 3,
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "750ms")
}

func TestSuccessBarClampsOutOfRangeValues(t *testing.T) {
	s := newStyles()

	assert.NotContains(t, renderSuccessBar(-20, 10, s), "=")
	assert.NotContains(t, renderSuccessBar(150, 10, s), "-")
	assert.Empty(t, renderSuccessBar(50, 0, s))
}
