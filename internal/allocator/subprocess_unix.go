//go:build unix

package allocator

import "golang.org/x/sys/unix"

// GracefulSignal sends SIGTERM via the raw kill(2) syscall, grounded on
// golang.org/x/sys/unix rather than the stdlib syscall package's
// platform-specific signal set, matching how the rest of this module's
// platform code reaches for golang.org/x/sys for direct syscalls.
func (h *ExecHandle) GracefulSignal() error {
	return unix.Kill(h.Pid(), unix.SIGTERM)
}

// Probe performs a non-blocking wait4(WNOHANG) to check whether the
// process has already exited without reaping it through exec.Cmd.Wait,
// which is what the final-wait step will do for processes that are
// still tracked.
func (h *ExecHandle) Probe() bool {
	pid := h.Pid()
	if pid <= 0 {
		return false
	}

	var status unix.WaitStatus

	got, err := unix.Wait4(pid, &status, unix.WNOHANG, nil)
	if err != nil {
		return false
	}

	return got == pid && (status.Exited() || status.Signaled())
}
