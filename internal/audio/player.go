package audio

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"
)

var _ Player = (*ExecPlayer)(nil)

// ExecPlayer plays a music file by shelling out to an external player
// binary. Mute is implemented by suspending/resuming the process, which
// keeps the playback position, matching the negotiation contract of
// unmuting without restarting. The exit watcher runs on its own
// goroutine, so the process handle is mutex-guarded.
type ExecPlayer struct {
	binary string
	track  string

	mu    sync.Mutex
	cmd   *exec.Cmd
	muted bool
}

// NewExecPlayer builds a player for track using binary (for example
// "mpv"). The binary is resolved lazily on first Start.
func NewExecPlayer(binary, track string) *ExecPlayer {
	return &ExecPlayer{binary: binary, track: track}
}

// Start launches playback. Returns an error when the binary is missing
// or cannot be spawned, which the Negotiator treats as an autoplay
// refusal.
func (p *ExecPlayer) Start(muted bool) error {
	if p.track == "" {
		return fmt.Errorf("no track configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd != nil {
		// Already running: just adjust mute state.
		return p.setMutedLocked(muted)
	}

	path, err := exec.LookPath(p.binary)
	if err != nil {
		return fmt.Errorf("locate player %q: %w", p.binary, err)
	}

	cmd := exec.Command(path, "--no-video", "--really-quiet", "--loop", p.track)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	p.cmd = cmd
	p.muted = false

	go func() {
		if err := cmd.Wait(); err != nil {
			log.WithError(err).Debug("music player exited")
		}
		p.mu.Lock()
		if p.cmd == cmd {
			// Died on its own; the next Start spawns a fresh process.
			p.cmd = nil
			p.muted = false
		}
		p.mu.Unlock()
	}()

	if muted {
		return p.setMutedLocked(true)
	}
	return nil
}

// Pause stops playback by terminating the player process.
func (p *ExecPlayer) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}
	err := p.cmd.Process.Signal(syscall.SIGTERM)
	p.cmd = nil
	p.muted = false
	if err != nil {
		return fmt.Errorf("stop player: %w", err)
	}
	return nil
}

// SetMuted suspends or resumes the player process.
func (p *ExecPlayer) SetMuted(muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setMutedLocked(muted)
}

func (p *ExecPlayer) setMutedLocked(muted bool) error {
	if p.cmd == nil || p.cmd.Process == nil {
		return fmt.Errorf("player not running")
	}
	sig := syscall.SIGCONT
	if muted {
		sig = syscall.SIGSTOP
	}
	if err := p.cmd.Process.Signal(sig); err != nil {
		return fmt.Errorf("signal player: %w", err)
	}
	p.muted = muted
	return nil
}

// Playing reports whether a player process is active.
func (p *ExecPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}
