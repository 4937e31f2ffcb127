package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/clickloop-cli/internal/domain"
)

type clickCall struct {
	kind domain.ClickKind
	p    domain.Point
	pid  int
}

// fakeInjector records every click and replays scripted errors in order;
// once the script runs out every click succeeds.
type fakeInjector struct {
	mu     sync.Mutex
	calls  []clickCall
	script []error
}

func (f *fakeInjector) Click(_ context.Context, kind domain.ClickKind, p domain.Point, pid int) (domain.ClickResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, clickCall{kind: kind, p: p, pid: pid})

	if len(f.script) > 0 {
		err := f.script[0]
		f.script = f.script[1:]
		if err != nil {
			return domain.ClickResult{}, err
		}
	}

	return domain.ClickResult{Latency: time.Millisecond}, nil
}

func (f *fakeInjector) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func (f *fakeInjector) lastCall() clickCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[len(f.calls)-1]
}

type fakePointer struct {
	p   domain.Point
	err error
}

func (f fakePointer) Position(context.Context) (domain.Point, error) {
	return f.p, f.err
}

type fakeScreen struct {
	monitors []domain.Monitor
	err      error
}

func (f fakeScreen) Monitors(context.Context) ([]domain.Monitor, error) {
	return f.monitors, f.err
}

type fakeEnumerator struct {
	mu      sync.Mutex
	windows []domain.WindowInfo
	err     error
}

func (f *fakeEnumerator) Windows(context.Context) ([]domain.WindowInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.WindowInfo(nil), f.windows...), f.err
}

func (f *fakeEnumerator) setWindows(windows []domain.WindowInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.windows = windows
}

type fakeRegistry struct {
	mu      sync.Mutex
	running map[int]bool
	err     error
}

func (f *fakeRegistry) IsRunning(_ context.Context, pid int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.running[pid], f.err
}

func (f *fakeRegistry) setRunning(pid int, running bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running == nil {
		f.running = map[int]bool{}
	}
	f.running[pid] = running
}

type fakePermissions struct {
	granted bool
}

func (f fakePermissions) AccessibilityGranted(context.Context) bool {
	return f.granted
}

type fakeSampler struct {
	mu       sync.Mutex
	snapshot domain.ResourceSnapshot
	err      error
}

func (f *fakeSampler) Sample(context.Context) (domain.ResourceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snapshot, f.err
}

func (f *fakeSampler) set(snapshot domain.ResourceSnapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.snapshot = snapshot
	f.err = err
}

type fakeOverlay struct {
	mu      sync.Mutex
	shows   int
	updates int
	hides   int
}

func (f *fakeOverlay) Show(domain.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
}

func (f *fakeOverlay) Update(domain.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
}

func (f *fakeOverlay) Hide() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hides++
}

func (f *fakeOverlay) counts() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.shows, f.updates, f.hides
}

func testMonitors() []domain.Monitor {
	return []domain.Monitor{
		{Frame: domain.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
	}
}
