package carousel

import (
	"testing"
	"time"
)

func testScheduler(start time.Time) *Scheduler {
	return New(Config{
		Images:     []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		Tiles:      4,
		Transition: time.Second,
		Display:    2 * time.Second,
	}, start)
}

func TestScheduler_InitialStateDistinctImagesFullOpacity(t *testing.T) {
	start := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	s := testScheduler(start)

	tiles := s.At(start)
	if len(tiles) != 4 {
		t.Fatalf("got %d tiles, want 4", len(tiles))
	}
	seen := map[int]bool{}
	for i, tile := range tiles {
		if tile.Index != i {
			t.Fatalf("tile %d starts on image %d, want %d", i, tile.Index, i)
		}
		if tile.Opacity != 1 {
			t.Fatalf("tile %d opacity = %v, want 1", i, tile.Opacity)
		}
		if seen[tile.Index] {
			t.Fatalf("duplicate starting image %d", tile.Index)
		}
		seen[tile.Index] = true
	}
}

func TestScheduler_TileCycle(t *testing.T) {
	start := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	s := testScheduler(start)

	if s.CycleLength() != 4*time.Second {
		t.Fatalf("CycleLength = %v, want 4s", s.CycleLength())
	}

	cases := []struct {
		at      time.Duration
		index   int
		opacity float64
	}{
		{0, 0, 1},                         // holding
		{1500 * time.Millisecond, 0, 1},   // still holding
		{2500 * time.Millisecond, 0, 0.5}, // halfway through fade out
		{3 * time.Second, 4, 0},           // advanced by tile count, fade in begins
		{3500 * time.Millisecond, 4, 0.5}, // halfway through fade in
		{4500 * time.Millisecond, 4, 1},   // next cycle, holding new image
		{8500 * time.Millisecond, 0, 1},   // wrapped around the image list
		{11 * time.Second, 4, 0},          // third fade completes the wrap again
	}
	for _, tc := range cases {
		tile := s.At(start.Add(tc.at))[0]
		if tile.Index != tc.index {
			t.Fatalf("at %v: index = %d, want %d", tc.at, tile.Index, tc.index)
		}
		if diff := tile.Opacity - tc.opacity; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("at %v: opacity = %v, want %v", tc.at, tile.Opacity, tc.opacity)
		}
	}
}

func TestScheduler_StaggerKeepsTilesOutOfLockStep(t *testing.T) {
	start := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	s := testScheduler(start)

	// Sample densely across two full cycles: no instant may have every
	// tile mid-transition simultaneously.
	for at := time.Duration(0); at < 2*s.CycleLength(); at += 250 * time.Millisecond {
		tiles := s.At(start.Add(at))
		transitioning := 0
		for _, tile := range tiles {
			if tile.Opacity > 0 && tile.Opacity < 1 {
				transitioning++
			}
			if tile.Opacity < 0 || tile.Opacity > 1 {
				t.Fatalf("at %v: opacity %v out of [0,1]", at, tile.Opacity)
			}
		}
		if transitioning == len(tiles) {
			t.Fatalf("at %v: all tiles transitioning at once", at)
		}
	}
}

func TestScheduler_BeforeStaggerTileHoldsInitialImage(t *testing.T) {
	start := time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
	s := testScheduler(start)

	// Tile 3 staggers by 3 × (cycle/4) = 3s; until then it must sit on
	// its initial image at full opacity.
	for at := time.Duration(0); at < 3*time.Second; at += 500 * time.Millisecond {
		tile := s.At(start.Add(at))[3]
		if tile.Index != 3 || tile.Opacity != 1 {
			t.Fatalf("at %v: tile 3 = %+v, want index 3 opacity 1", at, tile)
		}
	}
}

func TestScheduler_EmptyImageListIsSafe(t *testing.T) {
	start := time.Now()
	s := New(Config{Tiles: 2}, start)
	tiles := s.At(start.Add(time.Minute))
	for i, tile := range tiles {
		if tile.Opacity != 1 || tile.Index != 0 {
			t.Fatalf("tile %d = %+v, want index 0 opacity 1", i, tile)
		}
		if got := tile.Image(nil); got != "" {
			t.Fatalf("Image on empty list = %q, want empty", got)
		}
	}
}
