package ports

import (
	"context"

	"github.com/bnema/clickloop-cli/internal/domain"
)

// ClickInjector performs one click through the platform event service.
// A zero targetPID means system-wide delivery; a positive pid addresses
// the owning process directly, which works for background windows.
type ClickInjector interface {
	Click(ctx context.Context, kind domain.ClickKind, p domain.Point, targetPID int) (domain.ClickResult, error)
}

// PointerDevice reports the live pointer position in pointer space.
type PointerDevice interface {
	Position(ctx context.Context) (domain.Point, error)
}

// ScreenLayout reports the connected monitors in injection space.
type ScreenLayout interface {
	Monitors(ctx context.Context) ([]domain.Monitor, error)
}

type WindowEnumerator interface {
	Windows(ctx context.Context) ([]domain.WindowInfo, error)
}

type ProcessRegistry interface {
	IsRunning(ctx context.Context, pid int) (bool, error)
}

type PermissionChecker interface {
	AccessibilityGranted(ctx context.Context) bool
}

// FeedbackOverlay is the visual-feedback collaborator. Calls are
// fire-and-forget; the engine never consumes a return value.
type FeedbackOverlay interface {
	Show(p domain.Point)
	Update(p domain.Point)
	Hide()
}
