// Package carousel drives the staggered photo-tile rotation on the
// invitation page. The scheduler is a pure function of elapsed time, so
// the UI samples it on its own tick and tests can sample it with a
// controlled clock.
package carousel

import "time"

const (
	defaultTransition = 3 * time.Second
	defaultDisplay    = 3 * time.Second
)

// Config describes one rotation grid.
type Config struct {
	Images     []string
	Tiles      int
	Transition time.Duration // fade in/out duration
	Display    time.Duration // hold at full opacity
}

// Tile is the sampled state of one photo slot.
type Tile struct {
	Index   int     // index into Config.Images
	Opacity float64 // in [0,1]
}

// Image returns the image reference the tile currently shows.
func (t Tile) Image(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[t.Index%len(images)]
}

// Scheduler computes per-tile (index, opacity) pairs for a grid of
// independently cycling tiles. Tile i starts on image i and begins its
// first cycle after a stagger of i × (cycle / tiles), so tiles never
// transition in lock-step.
type Scheduler struct {
	cfg   Config
	start time.Time
}

// New builds a Scheduler anchored at start. Zero durations fall back to
// the defaults; a non-positive tile count becomes 1.
func New(cfg Config, start time.Time) *Scheduler {
	if cfg.Transition <= 0 {
		cfg.Transition = defaultTransition
	}
	if cfg.Display <= 0 {
		cfg.Display = defaultDisplay
	}
	if cfg.Tiles < 1 {
		cfg.Tiles = 1
	}
	return &Scheduler{cfg: cfg, start: start}
}

// CycleLength is the period of one full tile cycle: hold, fade out,
// fade in.
func (s *Scheduler) CycleLength() time.Duration {
	return s.cfg.Display + 2*s.cfg.Transition
}

// Images returns the configured image list.
func (s *Scheduler) Images() []string {
	return s.cfg.Images
}

// At samples every tile at the given instant.
func (s *Scheduler) At(now time.Time) []Tile {
	tiles := make([]Tile, s.cfg.Tiles)
	for i := range tiles {
		tiles[i] = s.tileAt(i, now)
	}
	return tiles
}

func (s *Scheduler) tileAt(i int, now time.Time) Tile {
	n := len(s.cfg.Images)
	if n == 0 {
		return Tile{Opacity: 1}
	}

	cycle := s.CycleLength()
	stagger := time.Duration(i) * cycle / time.Duration(s.cfg.Tiles)
	elapsed := now.Sub(s.start) - stagger
	if elapsed < 0 {
		return Tile{Index: i % n, Opacity: 1}
	}

	completed := int(elapsed / cycle)
	phase := elapsed % cycle

	index := (i + completed*s.cfg.Tiles) % n
	switch {
	case phase < s.cfg.Display:
		return Tile{Index: index, Opacity: 1}
	case phase < s.cfg.Display+s.cfg.Transition:
		// Fading out the current image.
		progress := float64(phase-s.cfg.Display) / float64(s.cfg.Transition)
		return Tile{Index: index, Opacity: 1 - progress}
	default:
		// Image advanced, fading back in.
		next := (index + s.cfg.Tiles) % n
		progress := float64(phase-s.cfg.Display-s.cfg.Transition) / float64(s.cfg.Transition)
		return Tile{Index: next, Opacity: progress}
	}
}
