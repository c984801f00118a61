package service

import (
	"context"

	"github.com/wricardo/shoko-rocket/game/mapfile"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, levelName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	PlaceArrow(ctx context.Context, sessionID string, placement ArrowPlacement) (*WorldSnapshot, error)
	RemoveArrow(ctx context.Context, sessionID string, x, y int) (*WorldSnapshot, error)
	SetRunState(ctx context.Context, sessionID, state string) (*WorldSnapshot, error)
	Step(ctx context.Context, sessionID string, ticks int) (*StepResult, error)
	Reset(ctx context.Context, sessionID string) (*WorldSnapshot, error)

	// Game State
	GetState(ctx context.Context, sessionID string) (*WorldSnapshot, error)

	// Levels
	ListLevels(ctx context.Context) ([]mapfile.LevelInfo, error)
	GetLevel(ctx context.Context, name string) ([]byte, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, session *Session) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Count() int
}

// LevelLibrary provides the playable levels
type LevelLibrary interface {
	List() []mapfile.LevelInfo
	Load(name string) ([]byte, error)
	Count() int
}
