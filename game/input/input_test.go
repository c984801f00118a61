package input

import "testing"

func TestFlickStartsBeyondThreshold(t *testing.T) {
	var prev State

	current := State{JoyY: FlickThreshold + 1}
	out := DeriveFlicks(prev, current)

	if !out.JoyUp.Down || !out.JoyUp.Pressed {
		t.Errorf("Expected up flick to start, got %+v", out.JoyUp)
	}
	if out.JoyUp.Released {
		t.Error("Expected no release on flick start")
	}
	if out.JoyDown.Down || out.JoyLeft.Down || out.JoyRight.Down {
		t.Error("Expected no other flicks")
	}
}

func TestFlickDoesNotStartInsideThreshold(t *testing.T) {
	var prev State

	out := DeriveFlicks(prev, State{JoyY: FlickThreshold})
	if out.JoyUp.Down {
		t.Error("Expected no flick at exactly the threshold")
	}

	out = DeriveFlicks(prev, State{JoyY: 1000, JoyX: -1000})
	if out.JoyUp.Down || out.JoyLeft.Down {
		t.Error("Expected no flick below the threshold")
	}
}

func TestFlickHeldUntilDeadZone(t *testing.T) {
	var prev State

	// Flick up, then hold the stick just above the dead zone
	state := DeriveFlicks(prev, State{JoyY: 2000})
	state = DeriveFlicks(state, State{JoyY: 600})

	if !state.JoyUp.Down {
		t.Errorf("Expected up flick to be held, got %+v", state.JoyUp)
	}
	if state.JoyUp.Pressed {
		t.Error("Expected no repeated press while held")
	}

	// Return towards center
	state = DeriveFlicks(state, State{JoyY: 100})

	if state.JoyUp.Down {
		t.Error("Expected flick to end in the dead zone")
	}
	if !state.JoyUp.Released {
		t.Error("Expected a release when the flick ends")
	}
	if state.JoyUp.Pressed {
		t.Error("Expected no press when the flick ends")
	}
}

func TestFlickAllDirections(t *testing.T) {
	var prev State

	cases := []struct {
		name    string
		current State
		flicked func(State) ButtonState
	}{
		{"up", State{JoyY: 2000}, func(s State) ButtonState { return s.JoyUp }},
		{"down", State{JoyY: -2000}, func(s State) ButtonState { return s.JoyDown }},
		{"right", State{JoyX: 2000}, func(s State) ButtonState { return s.JoyRight }},
		{"left", State{JoyX: -2000}, func(s State) ButtonState { return s.JoyLeft }},
	}
	for _, c := range cases {
		out := DeriveFlicks(prev, c.current)
		button := c.flicked(out)
		if !button.Down || !button.Pressed || button.Released {
			t.Errorf("Expected %s flick to start cleanly, got %+v", c.name, button)
		}
	}
}

func TestDownFlickEndsCleanly(t *testing.T) {
	var prev State

	state := DeriveFlicks(prev, State{JoyY: -2000})
	state = DeriveFlicks(state, State{JoyY: 0})

	if state.JoyDown.Down {
		t.Error("Expected down flick to end in the dead zone")
	}
	if state.JoyDown.Pressed {
		t.Error("Expected no press when the down flick ends")
	}
	if !state.JoyDown.Released {
		t.Error("Expected a release when the down flick ends")
	}
}

func TestButtonsPassThrough(t *testing.T) {
	var prev State

	current := State{BtnStart: ButtonDown(), BtnA: ButtonUp()}
	out := DeriveFlicks(prev, current)

	if !out.BtnStart.Down || !out.BtnStart.Pressed {
		t.Errorf("Expected start button state to pass through, got %+v", out.BtnStart)
	}
	if !out.BtnA.Released {
		t.Errorf("Expected a button state to pass through, got %+v", out.BtnA)
	}
}
