package service

import (
	"sync"
	"time"

	"github.com/wricardo/shoko-rocket/game/app"
)

// Session represents an active game session. The embedded mutex
// serializes access to the machine between the HTTP handlers and the
// realtime run loop.
type Session struct {
	sync.Mutex

	ID        string
	Machine   *app.Machine
	LevelName string
	// MapData is the packed level the session was created from, kept
	// for resets
	MapData        []byte
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// SessionInfo is the API view of a session
type SessionInfo struct {
	ID             string    `json:"id"`
	Level          string    `json:"level"`
	Author         string    `json:"author"`
	State          string    `json:"state"`
	RunState       string    `json:"run_state"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
}

// WalkerInfo is the API view of a single walker
type WalkerInfo struct {
	Type      string `json:"type"`
	Direction string `json:"direction"`
	// Grid coordinates of the square the walker occupies
	GridX int `json:"grid_x"`
	GridY int `json:"grid_y"`
	// Pixel coordinates on the reference 160x120 screen
	PixelX int16 `json:"pixel_x"`
	PixelY int16 `json:"pixel_y"`
}

// TileInfo is a non-empty tile
type TileInfo struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

// WallInfo reports the top/left walls of a square. Only squares with
// at least one wall are listed
type WallInfo struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Top  bool `json:"top"`
	Left bool `json:"left"`
}

// WorldSnapshot is a complete view of a session's world
type WorldSnapshot struct {
	Level    string           `json:"level"`
	Author   string           `json:"author"`
	State    string           `json:"state"`
	RunState string           `json:"run_state"`
	Mice     []WalkerInfo     `json:"mice"`
	Cats     []WalkerInfo     `json:"cats"`
	Tiles    []TileInfo       `json:"tiles"`
	Walls    []WallInfo       `json:"walls"`
	Stock    map[string]uint8 `json:"stock"`
}

// StepResult is the outcome of advancing a session
type StepResult struct {
	Ticks    int            `json:"ticks"`
	Outcome  string         `json:"outcome"`
	Snapshot *WorldSnapshot `json:"snapshot"`
}

// ArrowPlacement describes an arrow placed by the player
type ArrowPlacement struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}
