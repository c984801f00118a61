// Package app implements the top level application state machine:
// intro screen, map menu and the running game, with timed transitions
// between them.
package app

import (
	"github.com/wricardo/shoko-rocket/game/engine"
	"github.com/wricardo/shoko-rocket/game/input"
)

// StateKind identifies the top level states the application can be in.
type StateKind uint8

const (
	KindIntro StateKind = iota
	KindMenu
	KindGame
)

func (k StateKind) String() string {
	switch k {
	case KindIntro:
		return "intro"
	case KindMenu:
		return "menu"
	default:
		return "game"
	}
}

// IntroFrames is the number of frames the intro plays before it
// advances to the menu on its own.
const IntroFrames = 120

// TransitionFrames is the grace period between two states.
const TransitionFrames = 45

// FastTicksPerFrame is how many simulation steps a fast-forwarded game
// runs per frame.
const FastTicksPerFrame = 3

// IntroState is the payload of the intro screen.
type IntroState struct {
	Frame uint32
	// latched once a transition has been requested, so further button
	// presses or the frame timeout cannot request another
	transitionStarted bool
}

// MenuState is the payload of the map selection menu.
type MenuState struct {
	MapIndex int
	MapCount int
}

// GameState is the payload of a running game.
type GameState struct {
	RunState engine.WorldState
	Stock    engine.ArrowStock
}

// Machine is the top level state machine. The world is stored outside
// the per-state payloads as it follows the machine across states.
type Machine struct {
	kind  StateKind
	intro IntroState
	menu  MenuState
	game  GameState

	world *engine.World

	targetKind StateKind
	targetMenu MenuState
	targetGame GameState

	transitionTimer uint16
}

// NewMachine creates a machine showing the intro, with the given world
// loaded and mapCount maps available in the menu.
func NewMachine(world *engine.World, mapCount int) *Machine {
	return &Machine{
		kind:       KindIntro,
		menu:       MenuState{MapCount: mapCount},
		world:      world,
		targetKind: KindIntro,
	}
}

// Kind returns the current state.
func (m *Machine) Kind() StateKind {
	return m.kind
}

// World returns the currently loaded world.
func (m *Machine) World() *engine.World {
	return m.world
}

// Intro returns the intro payload.
func (m *Machine) Intro() IntroState {
	return m.intro
}

// Menu returns the menu payload.
func (m *Machine) Menu() MenuState {
	return m.menu
}

// Game returns the game payload.
func (m *Machine) Game() GameState {
	return m.game
}

// Stock gives access to the arrow stock of the running game.
func (m *Machine) Stock() *engine.ArrowStock {
	return &m.game.Stock
}

// RunState returns the run state of the game.
func (m *Machine) RunState() engine.WorldState {
	return m.game.RunState
}

// SetRunState changes the run state of the game. A finished game
// cannot be restarted this way; reload the world instead.
func (m *Machine) SetRunState(state engine.WorldState) bool {
	if m.game.RunState == engine.WorldSuccess || m.game.RunState == engine.WorldDefeat {
		return false
	}
	m.game.RunState = state
	return true
}

// StartGame requests a transition into the game state with the given
// world and arrow stock. The transition completes after the usual
// grace period.
func (m *Machine) StartGame(world *engine.World, stock engine.ArrowStock) {
	m.world = world
	m.targetKind = KindGame
	m.targetGame = GameState{RunState: engine.WorldStopped, Stock: stock}
	m.transitionTimer = TransitionFrames
}

// RequestMenu requests a transition back to the menu.
func (m *Machine) RequestMenu() {
	m.targetKind = KindMenu
	m.targetMenu = m.menu
	m.transitionTimer = TransitionFrames
}

// Tick advances the machine one frame. The returned state change is
// only meaningful while in the game state; it reports the outcome of
// this frame's simulation steps.
func (m *Machine) Tick(in input.State) engine.WorldStateChange {
	// Handle the transition between states
	if m.kind != m.targetKind {
		if m.transitionTimer > 0 {
			m.transitionTimer--
		} else {
			m.snapToTarget()
		}
	}

	switch m.kind {
	case KindIntro:
		m.tickIntro(in)
		return engine.NoChange
	case KindMenu:
		m.tickMenu(in)
		return engine.NoChange
	default:
		return m.tickGame(in)
	}
}

func (m *Machine) snapToTarget() {
	m.kind = m.targetKind
	switch m.kind {
	case KindMenu:
		m.menu = m.targetMenu
	case KindGame:
		m.game = m.targetGame
	}
}

// tickIntro advances the intro. Any action button skips it, and it
// times out on its own after IntroFrames.
func (m *Machine) tickIntro(in input.State) {
	m.intro.Frame++

	if m.intro.transitionStarted {
		return
	}
	if in.BtnStart.Pressed || in.BtnA.Pressed || in.BtnB.Pressed || m.intro.Frame == IntroFrames {
		m.intro.transitionStarted = true
		m.targetKind = KindMenu
		m.targetMenu = MenuState{MapIndex: 0, MapCount: m.menu.MapCount}
		m.transitionTimer = TransitionFrames
	}
}

// tickMenu moves the map selection, wrapping at both ends.
func (m *Machine) tickMenu(in input.State) {
	if m.menu.MapCount == 0 {
		return
	}

	if in.JoyUp.Pressed {
		m.menu.MapIndex--
		if m.menu.MapIndex < 0 {
			m.menu.MapIndex = m.menu.MapCount - 1
		}
	}
	if in.JoyDown.Pressed {
		m.menu.MapIndex = (m.menu.MapIndex + 1) % m.menu.MapCount
	}
}

// tickGame steps the world according to the run state and records the
// outcome.
func (m *Machine) tickGame(input.State) engine.WorldStateChange {
	steps := 0
	switch m.game.RunState {
	case engine.WorldRunning:
		steps = 1
	case engine.WorldRunningFast:
		steps = FastTicksPerFrame
	}

	change := engine.NoChange
	for i := 0; i < steps; i++ {
		change = m.world.Tick()
		if change == engine.Win {
			m.game.RunState = engine.WorldSuccess
			break
		}
		if change == engine.Lose {
			m.game.RunState = engine.WorldDefeat
			break
		}
	}
	return change
}
