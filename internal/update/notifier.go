package update

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ExecDesktopNotifier shells out to notify-send on Linux and osascript on
// macOS. Other platforms are silently skipped.
type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Notify(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}
