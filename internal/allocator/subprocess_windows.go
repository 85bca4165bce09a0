//go:build windows

package allocator

// GracefulSignal has no portable equivalent to SIGTERM on Windows —
// console control events only reach processes sharing the parent's
// console. We fall back to the hard kill immediately, which collapses
// KillAfterTimeout into KillAlways on this platform: the grace interval
// still elapses (the caller sleeps it once per batch regardless), but
// there is nothing left alive to escalate against.
func (h *ExecHandle) GracefulSignal() error {
	return h.Kill()
}

// Probe is unsupported on windows through this minimal handle; the
// process is simply reaped normally by the final-wait step instead of
// being reclassified early.
func (h *ExecHandle) Probe() bool {
	return false
}
