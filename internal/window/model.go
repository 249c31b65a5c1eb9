// Package window describes top-level windows offered as injection targets.
package window

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// ID is a native window handle (X11 window id or Win32 HWND).
type ID uint64

// Window describes a visible top-level window.
type Window struct {
	ID      ID
	Title   string
	PID     int
	Process string
}

// Label returns the title with the owning process when known.
func (w Window) Label() string {
	if w.Process == "" {
		return w.Title
	}
	return fmt.Sprintf("%s (%s)", w.Title, w.Process)
}

// GetByIndex returns the window matching the 1-based menu index.
func GetByIndex(list []Window, idx int) (Window, bool) {
	if idx < 1 || idx > len(list) {
		return Window{}, false
	}
	return list[idx-1], true
}

// ProcessName resolves a PID to its executable name. Unknown PIDs return "".
func ProcessName(pid int) string {
	if pid <= 0 {
		return ""
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return ""
	}
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}
