package domain

import (
	"fmt"
	"strings"
)

// WindowInfo is one entry of a window-enumeration snapshot.
type WindowInfo struct {
	ID       int
	PID      int
	AppName  string
	Title    string
	Bounds   Rect
	OnScreen bool
}

// TargetDescriptor identifies the selected click destination window. It
// is owned by the resolver; everyone else works with copies.
type TargetDescriptor struct {
	WindowID int
	PID      int
	AppName  string
	Title    string
	Bounds   Rect
	// PreferProcessAddressing selects pid-based event delivery over
	// window-handle delivery. Required for clicking into minimized or
	// background windows without raising focus.
	PreferProcessAddressing bool
}

func DescriptorFor(w WindowInfo) TargetDescriptor {
	return TargetDescriptor{
		WindowID:                w.ID,
		PID:                     w.PID,
		AppName:                 w.AppName,
		Title:                   w.Title,
		Bounds:                  w.Bounds,
		PreferProcessAddressing: w.PID > 0,
	}
}

func (d TargetDescriptor) SupportsBackgroundClicking() bool {
	return d.PreferProcessAddressing && d.PID > 0
}

// systemChromeApps are desktop-infrastructure processes that never make
// sense as click targets.
var systemChromeApps = map[string]struct{}{
	"window server":        {},
	"dock":                 {},
	"control center":       {},
	"notification center":  {},
	"spotlight":            {},
	"wallpaper":            {},
	"screencaptureui":      {},
	"universalaccessd":     {},
	"dwm.exe":              {},
	"explorer.exe":         {},
	"textinputhost.exe":    {},
	"applicationframehost": {},
}

func isSystemChrome(appName string) bool {
	_, ok := systemChromeApps[strings.ToLower(strings.TrimSpace(appName))]
	return ok
}

// FilterWindows drops zero-sized windows and known system-chrome
// processes from an enumeration snapshot.
func FilterWindows(windows []WindowInfo) []WindowInfo {
	result := make([]WindowInfo, 0, len(windows))
	for _, w := range windows {
		if w.Bounds.Empty() {
			continue
		}
		if isSystemChrome(w.AppName) {
			continue
		}
		result = append(result, w)
	}

	return result
}

// DisambiguationLabels generates one human-distinguishing label per
// window for a set of windows sharing an application name. The first
// property that is unique across the set wins: title, then origin, then
// size, then visibility, finally the raw window id, which is unique by
// construction.
func DisambiguationLabels(windows []WindowInfo) []string {
	labels := make([]string, len(windows))
	for i, w := range windows {
		labels[i] = disambiguationLabel(w, windows)
	}

	return labels
}

func disambiguationLabel(w WindowInfo, siblings []WindowInfo) string {
	if w.Title != "" && uniqueAmong(siblings, w, func(a, b WindowInfo) bool {
		return a.Title == b.Title
	}) {
		return fmt.Sprintf("%s: %s", w.AppName, w.Title)
	}

	if uniqueAmong(siblings, w, func(a, b WindowInfo) bool {
		return a.Bounds.X == b.Bounds.X && a.Bounds.Y == b.Bounds.Y
	}) {
		return fmt.Sprintf("%s at (%.0f, %.0f)", w.AppName, w.Bounds.X, w.Bounds.Y)
	}

	if uniqueAmong(siblings, w, func(a, b WindowInfo) bool {
		return a.Bounds.Width == b.Bounds.Width && a.Bounds.Height == b.Bounds.Height
	}) {
		return fmt.Sprintf("%s %.0fx%.0f", w.AppName, w.Bounds.Width, w.Bounds.Height)
	}

	if uniqueAmong(siblings, w, func(a, b WindowInfo) bool {
		return a.OnScreen == b.OnScreen
	}) {
		visibility := "hidden"
		if w.OnScreen {
			visibility = "visible"
		}
		return fmt.Sprintf("%s (%s)", w.AppName, visibility)
	}

	return fmt.Sprintf("%s [window %d]", w.AppName, w.ID)
}

func uniqueAmong(siblings []WindowInfo, w WindowInfo, same func(a, b WindowInfo) bool) bool {
	for _, other := range siblings {
		if other.ID == w.ID {
			continue
		}
		if same(other, w) {
			return false
		}
	}

	return true
}
