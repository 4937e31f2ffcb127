package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
	"github.com/go-vgo/robotgo"
)

// Injector delivers clicks through robotgo. Process-addressed delivery
// activates the owning process first; robotgo has no way to post an
// event into a background window directly.
type Injector struct{}

var _ ports.ClickInjector = Injector{}

func NewInjector() Injector {
	return Injector{}
}

func (Injector) Click(ctx context.Context, kind domain.ClickKind, p domain.Point, targetPID int) (domain.ClickResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ClickResult{}, err
	}

	if targetPID > 0 {
		running, err := robotgo.PidExists(targetPID)
		if err != nil || !running {
			return domain.ClickResult{}, fmt.Errorf("%w: pid %d", domain.ErrProcessNotFound, targetPID)
		}
		if err := robotgo.ActivePid(targetPID); err != nil {
			return domain.ClickResult{}, fmt.Errorf("%w: activate pid %d: %v", domain.ErrClickRejected, targetPID, err)
		}
	}

	button, double := buttonFor(kind)

	started := time.Now()
	robotgo.Move(int(p.X), int(p.Y))
	robotgo.Click(button, double)

	return domain.ClickResult{Latency: time.Since(started)}, nil
}

func buttonFor(kind domain.ClickKind) (string, bool) {
	switch kind {
	case domain.ClickRight:
		return "right", false
	case domain.ClickMiddle:
		return "center", false
	case domain.ClickDouble:
		return "left", true
	default:
		return "left", false
	}
}
