package state

import (
	"sync"
	"time"
)

type Phase int

const (
	BOOTING Phase = iota
	READY
	STOPPING
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "BOOTING"
	case READY:
		return "READY"
	case STOPPING:
		return "STOPPING"
	}
	return "UNKNOWN"
}

// FrameInfo describes the last presented frame.
type FrameInfo struct {
	RenderTime time.Duration
	FPS        int
	Width      int
	Height     int
	Cols       int
}

// LaunchInfo is the most recent launch request raised by the widget tree.
type LaunchInfo struct {
	SystemIndex int
	GameIndex   int
	System      string
	Game        string
	Path        string
	Count       int
	At          time.Time
}

type State struct {
	Phase  Phase
	Games  int
	Frame  FrameInfo
	Launch LaunchInfo
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) SetGameCount(n int) {
	store.mu.Lock()
	store.state.Games = n
	store.mu.Unlock()
}

func (store *Store) UpdateFrame(frame FrameInfo) {
	store.mu.Lock()
	store.state.Frame = frame
	store.mu.Unlock()
}

// RecordLaunch stores a launch request and bumps the request counter.
func (store *Store) RecordLaunch(launch LaunchInfo) {
	store.mu.Lock()
	launch.Count = store.state.Launch.Count + 1
	store.state.Launch = launch
	store.mu.Unlock()
}
