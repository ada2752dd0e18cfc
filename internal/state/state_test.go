package state

import (
	"sync"
	"testing"
	"time"
)

func TestStore(t *testing.T) {
	store := NewStore()
	if got := store.Snapshot().Phase; got != BOOTING {
		t.Fatalf("initial phase = %v, want BOOTING", got)
	}

	store.SetPhase(READY)
	store.SetGameCount(12)
	store.UpdateFrame(FrameInfo{RenderTime: 3 * time.Millisecond, FPS: 60, Width: 640, Height: 480, Cols: 80})
	store.RecordLaunch(LaunchInfo{SystemIndex: 0, GameIndex: 1, System: "ARCADE", Game: "Galaga"})
	store.RecordLaunch(LaunchInfo{SystemIndex: 1, GameIndex: 0, System: "SNES", Game: "F-Zero"})

	snap := store.Snapshot()
	if snap.Phase != READY || snap.Phase.String() != "READY" {
		t.Errorf("phase = %v", snap.Phase)
	}
	if snap.Games != 12 {
		t.Errorf("games = %d", snap.Games)
	}
	if snap.Frame.FPS != 60 || snap.Frame.Cols != 80 {
		t.Errorf("frame = %+v", snap.Frame)
	}
	if snap.Launch.Game != "F-Zero" || snap.Launch.Count != 2 {
		t.Errorf("launch = %+v", snap.Launch)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.RecordLaunch(LaunchInfo{GameIndex: j})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = store.Snapshot()
			}
		}()
	}
	wg.Wait()
	if got := store.Snapshot().Launch.Count; got != 800 {
		t.Errorf("launch count = %d, want 800", got)
	}
}
