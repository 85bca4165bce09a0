package allocator

import (
	"os/exec"
	"time"

	errs "github.com/kestrelrt/region/internal/errors"
	"golang.org/x/sync/errgroup"
)

// TerminationPolicy governs how a registered subprocess is treated when
// its owning pool is cleared.
type TerminationPolicy int

const (
	// KillNever leaves the process alone entirely.
	KillNever TerminationPolicy = iota
	// KillAlways sends the hard-kill signal immediately, no grace period.
	KillAlways
	// KillAfterTimeout sends a graceful signal first, then escalates to a
	// hard kill if the process survives the batched grace interval.
	KillAfterTimeout
	// KillOnlyOnce sends a graceful signal and never escalates.
	KillOnlyOnce
)

// SubprocessHandle is the process-lifecycle surface the subprocess
// registry needs. *ExecHandle implements it for os/exec's *exec.Cmd;
// tests substitute a mock (see subprocess_mock_test.go).
type SubprocessHandle interface {
	Pid() int
	GracefulSignal() error
	Kill() error
	Wait() error
	// Probe performs a non-blocking liveness check where the platform
	// supports one reliably, reporting whether the process has already
	// exited. Implementations that cannot probe non-blockingly return
	// false unconditionally — the process is simply reaped normally in
	// the final-wait step instead.
	Probe() bool
}

// ExecHandle adapts an *exec.Cmd (already Start'd by the caller) to
// SubprocessHandle.
type ExecHandle struct {
	Cmd *exec.Cmd
}

// Pid returns the OS process id.
func (h *ExecHandle) Pid() int {
	if h.Cmd.Process == nil {
		return -1
	}

	return h.Cmd.Process.Pid
}

// Kill sends the hard-kill signal. Portable across platforms via
// os.Process.Kill (SIGKILL on unix, TerminateProcess on windows).
func (h *ExecHandle) Kill() error {
	if h.Cmd.Process == nil {
		return nil
	}

	return h.Cmd.Process.Kill()
}

// Wait blocks until the process has been reaped.
func (h *ExecHandle) Wait() error {
	return h.Cmd.Wait()
}

type subprocessRecord struct {
	handle SubprocessHandle
	policy TerminationPolicy
}

// NoteSubprocess tracks handle under the given policy until the pool is
// next cleared or destroyed. A nil handle is a caller error — reaping
// would otherwise panic on the first Probe/Wait call — and is reported
// rather than silently accepted.
func (p *Pool) NoteSubprocess(handle SubprocessHandle, policy TerminationPolicy) error {
	if handle == nil {
		return errs.InvalidArgument("NoteSubprocess", "handle must not be nil")
	}

	p.subprocs = append(p.subprocs, &subprocessRecord{handle: handle, policy: policy})

	return nil
}

// reapSubprocesses implements the five-step termination protocol: reap
// already-exited processes first, signal everyone else, sleep once for
// the whole batch if any graceful signal went out, escalate the
// after-timeout survivors, then block until every non-never process has
// been reaped. The final wait fans out concurrently with errgroup so the
// wall-clock cost of reaping N children is the slowest child, not their
// sum — the batched grace sleep itself stays a single, un-parallelized
// step, since it is timing the signal, not the child.
func (p *Pool) reapSubprocesses() {
	if len(p.subprocs) == 0 {
		return
	}

	recs := p.subprocs
	p.subprocs = nil

	for _, r := range recs {
		if r.policy != KillNever && r.handle.Probe() {
			r.policy = KillNever
		}
	}

	needGrace := false

	for _, r := range recs {
		switch r.policy {
		case KillAfterTimeout, KillOnlyOnce:
			if err := r.handle.GracefulSignal(); err == nil {
				needGrace = true
			}
		case KillAlways:
			if err := r.handle.Kill(); err != nil {
				p.logf("region: subprocess %d hard kill failed: %v", r.handle.Pid(), err)
			}
		case KillNever:
		}
	}

	if needGrace {
		time.Sleep(SubprocessGraceInterval)
	}

	for _, r := range recs {
		if r.policy == KillAfterTimeout {
			if err := r.handle.Kill(); err != nil {
				p.logf("region: subprocess %d escalation kill failed: %v", r.handle.Pid(), err)
			}
		}
	}

	var g errgroup.Group

	for _, r := range recs {
		r := r

		if r.policy == KillNever {
			continue
		}

		g.Go(func() error {
			if err := r.handle.Wait(); err != nil {
				p.logf("region: subprocess %d reap error: %v", r.handle.Pid(), err)
			}

			return nil
		})
	}

	_ = g.Wait()
}
