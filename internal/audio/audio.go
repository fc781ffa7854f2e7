// Package audio handles background-music playback for the invitation,
// including the start-up negotiation: try unmuted, fall back to muted,
// and as a last resort wait for the first user interaction.
package audio

import "sync"

// Player is the playback backend. Start may fail (for example when the
// environment refuses audio output); the negotiator works around that.
type Player interface {
	Start(muted bool) error
	Pause() error
	SetMuted(muted bool) error
	Playing() bool
}

// Negotiator wraps a Player with the autoplay fallback chain. The
// negotiation runs on a background command while key handling happens
// on the event loop, so all state is mutex-guarded.
type Negotiator struct {
	mu              sync.Mutex
	player          Player
	muted           bool
	awaitingGesture bool
}

// NewNegotiator wraps p. It does not start playback.
func NewNegotiator(p Player) *Negotiator {
	return &Negotiator{player: p}
}

// Negotiate attempts to start playback: first unmuted, then muted, and
// if both are refused it arms a one-shot trigger for the next user
// gesture. The returned error is the muted attempt's failure, kept for
// logging; the negotiator itself has already fallen back.
func (n *Negotiator) Negotiate() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.player.Start(false); err == nil {
		n.muted = false
		n.awaitingGesture = false
		return nil
	}
	if err := n.player.Start(true); err != nil {
		n.awaitingGesture = true
		return err
	}
	n.muted = true
	n.awaitingGesture = false
	return nil
}

// OnGesture consumes the pending gesture trigger, if any. When playback
// never started it starts unmuted now; when it is running muted it
// unmutes without restarting. Subsequent gestures are no-ops until the
// trigger is re-armed by another failed negotiation.
func (n *Negotiator) OnGesture() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.player.Playing() && n.muted {
		if err := n.player.SetMuted(false); err == nil {
			n.muted = false
		}
		return
	}
	if !n.awaitingGesture {
		return
	}
	n.awaitingGesture = false
	if err := n.player.Start(false); err == nil {
		n.muted = false
	}
}

// Toggle flips play/pause from the manual control. An explicit resume
// always requests unmuted playback.
func (n *Negotiator) Toggle() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.player.Playing() {
		return n.player.Pause()
	}
	n.awaitingGesture = false
	if err := n.player.Start(false); err != nil {
		return err
	}
	n.muted = false
	return nil
}

// Playing reports whether audio is currently playing.
func (n *Negotiator) Playing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.player.Playing()
}

// Muted reports whether playback, if any, is muted.
func (n *Negotiator) Muted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.muted
}

// AwaitingGesture reports whether a deferred start is pending.
func (n *Negotiator) AwaitingGesture() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.awaitingGesture
}

// Close releases the trigger and stops playback.
func (n *Negotiator) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.awaitingGesture = false
	if n.player.Playing() {
		return n.player.Pause()
	}
	return nil
}
