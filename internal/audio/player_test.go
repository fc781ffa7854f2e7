package audio

import (
	"testing"
	"time"
)

func TestExecPlayer_StartRequiresTrack(t *testing.T) {
	p := NewExecPlayer("mpv", "")
	if err := p.Start(false); err == nil {
		t.Fatal("Start without a track succeeded")
	}
}

func TestExecPlayer_MissingBinaryIsRefusal(t *testing.T) {
	p := NewExecPlayer("definitely-not-a-player-binary", "track.mp3")
	if err := p.Start(false); err == nil {
		t.Fatal("Start with missing binary succeeded")
	}
	if p.Playing() {
		t.Fatal("Playing after failed start")
	}
}

func TestExecPlayer_ClearsHandleWhenProcessExits(t *testing.T) {
	// "true" ignores the player flags and exits immediately, standing in
	// for a player that died on its own.
	p := NewExecPlayer("true", "track.mp3")
	if err := p.Start(false); err != nil {
		t.Skipf("cannot spawn true: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for p.Playing() {
		if time.Now().After(deadline) {
			t.Fatal("Playing still true after the player process exited")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// A pause after the self-exit is a no-op, not a signal to a dead pid.
	if err := p.Pause(); err != nil {
		t.Fatalf("Pause after exit: %v", err)
	}
}
