package term

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/clickloop-cli/internal/domain"
	"github.com/bnema/clickloop-cli/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

// Overlay is a terminal stand-in for the platform feedback overlay: it
// prints the resolved click point. Calls are fire-and-forget and write
// errors are swallowed, matching the overlay contract.
type Overlay struct {
	mu     sync.Mutex
	out    io.Writer
	marker lipgloss.Style
	faint  lipgloss.Style
}

var _ ports.FeedbackOverlay = (*Overlay)(nil)

func NewOverlay(out io.Writer) *Overlay {
	return &Overlay{
		out:    out,
		marker: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		faint:  lipgloss.NewStyle().Faint(true),
	}
}

func (o *Overlay) Show(p domain.Point) {
	o.write(o.marker.Render("◎") + " " + o.faint.Render("clicking at "+p.String()))
}

func (o *Overlay) Update(p domain.Point) {
	o.write(o.faint.Render("· " + p.String()))
}

func (o *Overlay) Hide() {
	o.write(o.faint.Render("overlay hidden"))
}

func (o *Overlay) write(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, _ = fmt.Fprintln(o.out, line)
}

// Noop discards all feedback. Used when visual feedback is disabled.
type Noop struct{}

var _ ports.FeedbackOverlay = Noop{}

func (Noop) Show(domain.Point)   {}
func (Noop) Update(domain.Point) {}
func (Noop) Hide()               {}
