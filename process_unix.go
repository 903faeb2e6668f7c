//go:build !windows

package mdpress

import "syscall"

// killProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID). Errors are ignored; the browser
// launcher's own cleanup is the fallback.
func killProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
