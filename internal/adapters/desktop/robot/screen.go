package robot

import (
	"context"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
	"github.com/go-vgo/robotgo"
)

// Screen reports the connected displays. Display 0 is the primary one in
// robotgo's ordering.
type Screen struct{}

var _ ports.ScreenLayout = Screen{}

func NewScreen() Screen {
	return Screen{}
}

func (Screen) Monitors(ctx context.Context) ([]domain.Monitor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := robotgo.DisplaysNum()
	monitors := make([]domain.Monitor, 0, count)
	for i := 0; i < count; i++ {
		x, y, w, h := robotgo.GetDisplayBounds(i)
		monitors = append(monitors, domain.Monitor{
			Frame: domain.Rect{
				X:      float64(x),
				Y:      float64(y),
				Width:  float64(w),
				Height: float64(h),
			},
			Primary: i == 0,
		})
	}

	return monitors, nil
}

// Pointer reports the live cursor position.
type Pointer struct{}

var _ ports.PointerDevice = Pointer{}

func NewPointer() Pointer {
	return Pointer{}
}

func (Pointer) Position(ctx context.Context) (domain.Point, error) {
	if err := ctx.Err(); err != nil {
		return domain.Point{}, err
	}

	x, y := robotgo.Location()

	return domain.Point{X: float64(x), Y: float64(y)}, nil
}
