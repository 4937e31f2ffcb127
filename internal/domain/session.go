package domain

import "time"

// SessionState is the scheduler lifecycle state. Transitions:
// idle -> running -> {paused <-> running} -> stopped -> idle.
type SessionState string

const (
	SessionIdle    SessionState = "idle"
	SessionRunning SessionState = "running"
	SessionPaused  SessionState = "paused"
	SessionStopped SessionState = "stopped"
)

// Session is the mutable record of one automation run. All mutation is
// serialized by the scheduler; everything outside reads derived
// Statistics snapshots only.
type Session struct {
	State             SessionState
	StartedAt         time.Time
	TotalClicks       int
	SuccessfulClicks  int
	CumulativeLatency time.Duration
	// PausedFor accumulates wall-clock time spent paused so the
	// session's apparent duration excludes it.
	PausedFor time.Duration
}

func (s *Session) RecordClick(result ClickResult, ok bool) {
	s.TotalClicks++
	if ok {
		s.SuccessfulClicks++
	}
	s.CumulativeLatency += result.Latency
}

// Statistics is the derived, read-only view of a session.
type Statistics struct {
	State            SessionState
	StartedAt        time.Time
	Duration         time.Duration
	TotalClicks      int
	SuccessfulClicks int
	SuccessRate      float64
	ClicksPerSecond  float64
	AverageLatency   time.Duration
}

// Statistics computes the view as of now. Duration excludes paused
// intervals.
func (s Session) Statistics(now time.Time) Statistics {
	stats := Statistics{
		State:            s.State,
		StartedAt:        s.StartedAt,
		TotalClicks:      s.TotalClicks,
		SuccessfulClicks: s.SuccessfulClicks,
	}

	if !s.StartedAt.IsZero() && now.After(s.StartedAt) {
		stats.Duration = now.Sub(s.StartedAt) - s.PausedFor
		if stats.Duration < 0 {
			stats.Duration = 0
		}
	}
	if s.TotalClicks > 0 {
		stats.SuccessRate = float64(s.SuccessfulClicks) / float64(s.TotalClicks)
		stats.AverageLatency = s.CumulativeLatency / time.Duration(s.TotalClicks)
	}
	if stats.Duration > 0 {
		stats.ClicksPerSecond = float64(s.TotalClicks) / stats.Duration.Seconds()
	}

	return stats
}
