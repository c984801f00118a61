package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wricardo/shoko-rocket/game/app"
	"github.com/wricardo/shoko-rocket/game/engine"
	"github.com/wricardo/shoko-rocket/game/input"
	"github.com/wricardo/shoko-rocket/game/mapfile"
)

var (
	ErrNotInGame          = errors.New("session is not in a game")
	ErrGameFinished       = errors.New("game already finished")
	ErrSquareOccupied     = errors.New("square is not empty")
	ErrNoArrowStock       = errors.New("no arrows of that direction left")
	ErrNoArrowThere       = errors.New("no arrow at that square")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidRunState    = errors.New("invalid run state")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)

// Each session starts with the same arrow allowance. The map format
// has no stock field, so this is a service policy rather than level
// data.
const defaultArrowsPerDirection = 3

// maxStepTicks bounds a single step request to one minute of game time
const maxStepTicks = 3600

// gameServiceImpl implements GameService over a session manager and a
// level library
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelLibrary
}

// NewGameService creates a new game service
func NewGameService(sessions SessionManager, levels LevelLibrary) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

// CreateSession loads a level and starts a session ready to play.
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelName string) (*SessionInfo, error) {
	mapData, err := s.levels.Load(levelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	world, err := engine.LoadWorld(mapData)
	if err != nil {
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	machine := app.NewMachine(world, s.levels.Count())
	startGame(machine, world)

	sess := &Session{
		Machine:   machine,
		LevelName: levelName,
		MapData:   mapData,
	}
	created, err := s.sessions.Create("", sess)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(created), nil
}

// startGame drives a machine straight into the game state, running the
// intro skip and the transition grace period.
func startGame(machine *app.Machine, world *engine.World) {
	stock := engine.NewArrowStock(
		defaultArrowsPerDirection,
		defaultArrowsPerDirection,
		defaultArrowsPerDirection,
		defaultArrowsPerDirection,
	)
	machine.StartGame(world, stock)
	for machine.Kind() != app.KindGame {
		machine.Tick(input.State{})
	}
}

func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// PlaceArrow consumes an arrow from the session's stock and places it
// on an empty square.
func (s *gameServiceImpl) PlaceArrow(ctx context.Context, sessionID string, placement ArrowPlacement) (*WorldSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	direction, ok := engine.ParseDirection(placement.Direction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, placement.Direction)
	}
	if placement.X < 0 || placement.X >= engine.WorldWidth ||
		placement.Y < 0 || placement.Y >= engine.WorldHeight {
		return nil, fmt.Errorf("%w: %d,%d", ErrInvalidCoordinates, placement.X, placement.Y)
	}

	sess.Lock()
	defer sess.Unlock()

	machine := sess.Machine
	if machine.Kind() != app.KindGame {
		return nil, ErrNotInGame
	}
	if finished(machine) {
		return nil, ErrGameFinished
	}
	if machine.World().Tile(placement.X, placement.Y) != engine.TileEmpty {
		return nil, ErrSquareOccupied
	}
	if !machine.Stock().Take(direction) {
		return nil, ErrNoArrowStock
	}
	machine.World().SetArrow(placement.X, placement.Y, engine.ArrowTile(direction))

	s.sessions.UpdateLastAccessed(sessionID)
	return Snapshot(machine), nil
}

// RemoveArrow picks an arrow back up, returning it to stock. Half
// arrows return a full arrow; the diminishing is a cat problem, not a
// stock problem.
func (s *gameServiceImpl) RemoveArrow(ctx context.Context, sessionID string, x, y int) (*WorldSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if x < 0 || x >= engine.WorldWidth || y < 0 || y >= engine.WorldHeight {
		return nil, fmt.Errorf("%w: %d,%d", ErrInvalidCoordinates, x, y)
	}

	sess.Lock()
	defer sess.Unlock()

	machine := sess.Machine
	if machine.Kind() != app.KindGame {
		return nil, ErrNotInGame
	}
	if finished(machine) {
		return nil, ErrGameFinished
	}
	tile := machine.World().Tile(x, y)
	direction, ok := tile.Direction()
	if !ok {
		return nil, ErrNoArrowThere
	}
	machine.World().SetTile(x, y, engine.TileEmpty)
	machine.Stock().Return(direction)

	s.sessions.UpdateLastAccessed(sessionID)
	return Snapshot(machine), nil
}

func (s *gameServiceImpl) SetRunState(ctx context.Context, sessionID, state string) (*WorldSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	runState, ok := engine.ParseWorldState(state)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRunState, state)
	}

	sess.Lock()
	defer sess.Unlock()

	machine := sess.Machine
	if machine.Kind() != app.KindGame {
		return nil, ErrNotInGame
	}
	if !machine.SetRunState(runState) {
		return nil, ErrGameFinished
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return Snapshot(machine), nil
}

// Step advances the session by up to ticks simulation steps, stopping
// early when the game ends.
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string, ticks int) (*StepResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if ticks < 1 || ticks > maxStepTicks {
		return nil, fmt.Errorf("ticks must be between 1 and %d, got %d", maxStepTicks, ticks)
	}

	sess.Lock()
	defer sess.Unlock()

	machine := sess.Machine
	if machine.Kind() != app.KindGame {
		return nil, ErrNotInGame
	}
	if finished(machine) {
		return nil, ErrGameFinished
	}

	// Stepping is explicit; it runs the world regardless of the
	// machine's own run state
	wasStopped := machine.RunState() == engine.WorldStopped
	if wasStopped {
		machine.SetRunState(engine.WorldRunning)
	}

	outcome := engine.NoChange
	ran := 0
	for i := 0; i < ticks; i++ {
		outcome = machine.Tick(input.State{})
		ran++
		if outcome != engine.NoChange {
			break
		}
	}

	if wasStopped && !finished(machine) {
		machine.SetRunState(engine.WorldStopped)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return &StepResult{
		Ticks:    ran,
		Outcome:  outcome.String(),
		Snapshot: Snapshot(machine),
	}, nil
}

// Reset rebuilds the session's world from the packed level it was
// created from.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*WorldSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	world, err := engine.LoadWorld(sess.MapData)
	if err != nil {
		return nil, fmt.Errorf("failed to reload world: %w", err)
	}

	machine := app.NewMachine(world, s.levels.Count())
	startGame(machine, world)
	sess.Machine = machine

	s.sessions.UpdateLastAccessed(sessionID)
	return Snapshot(machine), nil
}

func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*WorldSnapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return Snapshot(sess.Machine), nil
}

func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]mapfile.LevelInfo, error) {
	return s.levels.List(), nil
}

func (s *gameServiceImpl) GetLevel(ctx context.Context, name string) ([]byte, error) {
	return s.levels.Load(name)
}

func finished(machine *app.Machine) bool {
	state := machine.RunState()
	return state == engine.WorldSuccess || state == engine.WorldDefeat
}

func sessionInfo(sess *Session) *SessionInfo {
	sess.Lock()
	defer sess.Unlock()

	world := sess.Machine.World()
	return &SessionInfo{
		ID:             sess.ID,
		Level:          world.Name(),
		Author:         world.Author(),
		State:          sess.Machine.Kind().String(),
		RunState:       sess.Machine.RunState().String(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
	}
}

// Snapshot builds the API view of a machine. Callers hold the session
// lock.
func Snapshot(machine *app.Machine) *WorldSnapshot {
	world := machine.World()

	snap := &WorldSnapshot{
		Level:    world.Name(),
		Author:   world.Author(),
		State:    machine.Kind().String(),
		RunState: machine.RunState().String(),
		Mice:     walkerInfos(world.Mice()),
		Cats:     walkerInfos(world.Cats()),
		Tiles:    []TileInfo{},
		Walls:    []WallInfo{},
		Stock:    stockMap(machine.Stock()),
	}

	for y := 0; y < engine.WorldHeight; y++ {
		for x := 0; x < engine.WorldWidth; x++ {
			if tile := world.Tile(x, y); tile != engine.TileEmpty {
				snap.Tiles = append(snap.Tiles, TileInfo{X: x, Y: y, Type: tile.String()})
			}
			top := world.Wall(x, y, engine.DirUp)
			left := world.Wall(x, y, engine.DirLeft)
			if top || left {
				snap.Walls = append(snap.Walls, WallInfo{X: x, Y: y, Top: top, Left: left})
			}
		}
	}

	return snap
}

// Pixel coordinates map the 12x9 grid onto the reference 160x120
// screen.
var (
	gridXMin = engine.NewFixedPoint(0, 0)
	gridXMax = engine.NewFixedPoint(engine.WorldWidth, 0)
	gridYMin = engine.NewFixedPoint(0, 0)
	gridYMax = engine.NewFixedPoint(engine.WorldHeight, 0)
)

func walkerInfos(walkers []engine.Walker) []WalkerInfo {
	out := make([]WalkerInfo, 0, len(walkers))
	for i := range walkers {
		walker := &walkers[i]
		out = append(out, WalkerInfo{
			Type:      walker.Type().String(),
			Direction: walker.Direction().String(),
			GridX:     int(walker.X().IntegerPart()),
			GridY:     int(walker.Y().IntegerPart()),
			PixelX:    walker.X().MapToRange(gridXMin, gridXMax, 0, 160),
			PixelY:    walker.Y().MapToRange(gridYMin, gridYMax, 0, 120),
		})
	}
	return out
}

func stockMap(stock *engine.ArrowStock) map[string]uint8 {
	return map[string]uint8{
		engine.DirUp.String():    stock.Count(engine.DirUp),
		engine.DirDown.String():  stock.Count(engine.DirDown),
		engine.DirLeft.String():  stock.Count(engine.DirLeft),
		engine.DirRight.String(): stock.Count(engine.DirRight),
	}
}
