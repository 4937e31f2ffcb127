package robot

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bnema/clickloop-cli/internal/ports"
)

// Permissions answers the accessibility-permission query. On darwin the
// check probes System Events, which fails without the accessibility
// grant; other platforms have no equivalent gate.
type Permissions struct{}

var _ ports.PermissionChecker = Permissions{}

func NewPermissions() Permissions {
	return Permissions{}
}

func (Permissions) AccessibilityGranted(ctx context.Context) bool {
	if runtime.GOOS != "darwin" {
		return true
	}

	cmd := exec.CommandContext(ctx, "osascript", "-e",
		`tell application "System Events" to count processes`)
	output, err := cmd.Output()
	if err != nil {
		return false
	}

	return strings.TrimSpace(string(output)) != ""
}
