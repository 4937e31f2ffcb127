package domain

import (
	"errors"
	"fmt"
	"time"
)

// FailureKind is the classification taxonomy for failed click attempts.
type FailureKind string

const (
	FailurePermission    FailureKind = "permissionIssue"
	FailureClick         FailureKind = "clickFailure"
	FailureTargetProcess FailureKind = "targetProcessIssue"
	FailurePerformance   FailureKind = "performanceIssue"
	FailureConfiguration FailureKind = "configurationError"
	FailureSystem        FailureKind = "systemResource"
)

// MaxRecoveryAttempts is the global cap; once a context's attempt counter
// exceeds it the engine always degrades to a terminal stop.
const MaxRecoveryAttempts = 3

// ErrorContext carries one failed attempt into classification. Attempt is
// the 1-based consecutive-failure counter for the same context.
type ErrorContext struct {
	Err        error
	Attempt    int
	OccurredAt time.Time
}

// ErrorAnalysis is the classification outcome. ResourceConcern is set
// when the failure correlates with ambient pressure, even if another
// classification also applies.
type ErrorAnalysis struct {
	Context         ErrorContext
	Kind            FailureKind
	ResourceConcern bool
	Resources       ResourceSnapshot
}

// Classify maps a failed attempt onto the taxonomy. The mapping is total:
// unrecognized low-level failures count as click failures unless the
// system is under pressure, in which case the resource classification
// takes over.
func Classify(ctx ErrorContext, resources ResourceSnapshot) ErrorAnalysis {
	analysis := ErrorAnalysis{
		Context:         ctx,
		Resources:       resources,
		ResourceConcern: resources.HasIssues(),
	}

	switch {
	case errors.Is(ctx.Err, ErrPermissionDenied):
		analysis.Kind = FailurePermission
	case errors.Is(ctx.Err, ErrProcessNotFound), errors.Is(ctx.Err, ErrWindowNotFound):
		analysis.Kind = FailureTargetProcess
	case errors.Is(ctx.Err, ErrTimingViolation):
		analysis.Kind = FailurePerformance
	case errors.Is(ctx.Err, ErrInvalidDestination):
		analysis.Kind = FailureConfiguration
	case errors.Is(ctx.Err, ErrClickRejected):
		analysis.Kind = FailureClick
	case analysis.ResourceConcern:
		analysis.Kind = FailureSystem
	default:
		analysis.Kind = FailureClick
	}

	return analysis
}

// RecoveryVerdict is the engine's instruction back to the scheduler.
type RecoveryVerdict string

const (
	// VerdictRetry: back off for the action's delay, then retry.
	VerdictRetry RecoveryVerdict = "retry"
	// VerdictSwitchStrategy: fall back to system-wide clicking.
	VerdictSwitchStrategy RecoveryVerdict = "switch_strategy"
	// VerdictStop: terminal; surface the error and stop the session.
	VerdictStop RecoveryVerdict = "stop"
)

type RecoveryAction struct {
	Verdict    RecoveryVerdict
	Kind       FailureKind
	Attempt    int
	MaxRetries int
	Backoff    time.Duration
	// Degraded marks the terminal graceful-degradation action taken
	// once the global attempt cap is exceeded.
	Degraded bool
}

type recoveryPolicy struct {
	maxRetries int
	backoff    time.Duration
	verdict    RecoveryVerdict
}

var recoveryPolicies = map[FailureKind]recoveryPolicy{
	FailurePermission:    {maxRetries: 2, backoff: 2 * time.Second, verdict: VerdictRetry},
	FailureClick:         {maxRetries: 3, backoff: 500 * time.Millisecond, verdict: VerdictRetry},
	FailureTargetProcess: {maxRetries: 1, backoff: time.Second, verdict: VerdictSwitchStrategy},
	FailurePerformance:   {maxRetries: 2, backoff: time.Second, verdict: VerdictRetry},
	FailureSystem:        {maxRetries: 2, backoff: 2 * time.Second, verdict: VerdictRetry},
	FailureConfiguration: {maxRetries: 0, verdict: VerdictStop},
}

// DecideRecovery produces the verdict for one classified failure.
// Configuration errors never retry; every kind stops once its retry cap
// or the global attempt cap is exhausted.
func DecideRecovery(analysis ErrorAnalysis) RecoveryAction {
	policy := recoveryPolicies[analysis.Kind]
	action := RecoveryAction{
		Verdict:    policy.verdict,
		Kind:       analysis.Kind,
		Attempt:    analysis.Context.Attempt,
		MaxRetries: policy.maxRetries,
		Backoff:    policy.backoff,
	}

	if analysis.Context.Attempt > MaxRecoveryAttempts {
		action.Verdict = VerdictStop
		action.Degraded = true
		action.Backoff = 0
		return action
	}

	if policy.verdict != VerdictStop && analysis.Context.Attempt > policy.maxRetries {
		action.Verdict = VerdictStop
		action.Degraded = true
		action.Backoff = 0
	}

	return action
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is the user-facing descriptor produced alongside every
// recovery decision. Options are suggested recovery buttons for the UI
// layer.
type Notification struct {
	Severity Severity
	Kind     FailureKind
	Title    string
	Message  string
	Options  []string
}

// NotificationFor builds the notification matching a decision. Terminal
// decisions always produce exactly one error-severity notification;
// transient retries notify at info severity.
func NotificationFor(analysis ErrorAnalysis, action RecoveryAction) Notification {
	n := Notification{Kind: analysis.Kind}

	switch action.Verdict {
	case VerdictRetry:
		n.Severity = SeverityInfo
		n.Title = "Retrying click"
		n.Message = retryMessage(analysis)
		n.Options = []string{"Stop"}
	case VerdictSwitchStrategy:
		n.Severity = SeverityWarning
		n.Title = "Target unavailable"
		n.Message = "The target window is gone; falling back to system-wide clicking."
		n.Options = []string{"Stop", "Pick new target"}
	case VerdictStop:
		n.Severity = SeverityError
		n.Options = stopOptions(analysis.Kind)
		if action.Degraded {
			n.Title = "Automation stopped"
			n.Message = degradedMessage(analysis)
		} else {
			n.Title = stopTitle(analysis.Kind)
			n.Message = errString(analysis.Context.Err)
		}
	}

	return n
}

func retryMessage(analysis ErrorAnalysis) string {
	switch analysis.Kind {
	case FailurePermission:
		return "Accessibility permission looks revoked; rechecking before retrying."
	case FailurePerformance:
		return "Click timing slipped; adjusting pacing and retrying."
	case FailureSystem:
		return "System is under resource pressure; cleaning up and retrying."
	default:
		return "Click delivery failed; retrying automatically."
	}
}

func stopTitle(kind FailureKind) string {
	switch kind {
	case FailurePermission:
		return "Accessibility permission required"
	case FailureConfiguration:
		return "Invalid configuration"
	case FailureTargetProcess:
		return "Target application is gone"
	default:
		return "Click automation failed"
	}
}

func stopOptions(kind FailureKind) []string {
	switch kind {
	case FailurePermission:
		return []string{"Open accessibility settings", "Retry"}
	case FailureConfiguration:
		return []string{"Edit configuration"}
	case FailureTargetProcess:
		return []string{"Pick new target", "Retry"}
	default:
		return []string{"Retry", "Stop"}
	}
}

func degradedMessage(analysis ErrorAnalysis) string {
	return fmt.Sprintf("Giving up after %d attempts: %s", analysis.Context.Attempt, errString(analysis.Context.Err))
}

func errString(err error) string {
	if err == nil {
		return "unknown failure"
	}
	return err.Error()
}
