package engine

// WorldState represents the run state of a world.
type WorldState uint8

const (
	WorldStopped WorldState = iota
	WorldRunning
	WorldRunningFast
	WorldSuccess
	WorldDefeat
)

func (s WorldState) String() string {
	switch s {
	case WorldStopped:
		return "stopped"
	case WorldRunning:
		return "running"
	case WorldRunningFast:
		return "running-fast"
	case WorldSuccess:
		return "success"
	default:
		return "defeat"
	}
}

// ParseWorldState converts a run state name to a WorldState. Only the
// externally requestable states parse.
func ParseWorldState(s string) (WorldState, bool) {
	switch s {
	case "stopped":
		return WorldStopped, true
	case "running":
		return WorldRunning, true
	case "running-fast":
		return WorldRunningFast, true
	default:
		return WorldStopped, false
	}
}

// WorldStateChange represents ways ticking the world can change its
// state.
type WorldStateChange uint8

const (
	NoChange WorldStateChange = iota
	Win
	Lose
)

func (c WorldStateChange) String() string {
	switch c {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "no-change"
	}
}
