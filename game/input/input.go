// Package input models the controller state fed into the application
// state machine each tick: buttons plus a joystick with derived
// directional "flicks".
package input

// ButtonState is the state of a single button.
type ButtonState struct {
	// Down is true while the button is held
	Down bool
	// Pressed is true on the tick the button went down
	Pressed bool
	// Released is true on the tick the button went up
	Released bool
}

// ButtonDown returns the state of a button on the tick it goes down.
func ButtonDown() ButtonState {
	return ButtonState{Down: true, Pressed: true}
}

// ButtonUp returns the state of a button on the tick it goes up.
func ButtonUp() ButtonState {
	return ButtonState{Released: true}
}

// Joystick axis thresholds. A flick starts when the axis moves beyond
// 75% of its range and ends when it returns within 25% of center on
// that side.
const (
	DeadZone       = 512
	FlickThreshold = 1536
)

// State is the state of all input devices for one tick. Joystick axes
// are centered readings in the range [-2048, 2047].
type State struct {
	JoyX int16
	JoyY int16

	// Joystick flicks
	JoyUp    ButtonState
	JoyDown  ButtonState
	JoyLeft  ButtonState
	JoyRight ButtonState

	// Buttons
	BtnA      ButtonState
	BtnB      ButtonState
	BtnStart  ButtonState
	BtnSelect ButtonState
}

// DeriveFlicks computes the joystick flick buttons of the current
// state from its axis readings and the previous state. The axis and
// button fields of current are passed through unchanged.
func DeriveFlicks(prev, current State) State {
	out := current

	// Carry held flicks forward
	out.JoyUp.Down = prev.JoyUp.Down
	out.JoyDown.Down = prev.JoyDown.Down
	out.JoyLeft.Down = prev.JoyLeft.Down
	out.JoyRight.Down = prev.JoyRight.Down
	out.JoyUp.Pressed, out.JoyUp.Released = false, false
	out.JoyDown.Pressed, out.JoyDown.Released = false, false
	out.JoyLeft.Pressed, out.JoyLeft.Released = false, false
	out.JoyRight.Pressed, out.JoyRight.Released = false, false

	// End flicks on re-entering the dead zone
	if current.JoyY < DeadZone && prev.JoyUp.Down {
		out.JoyUp = ButtonUp()
	}
	if current.JoyY > -DeadZone && prev.JoyDown.Down {
		out.JoyDown = ButtonUp()
	}
	if current.JoyX < DeadZone && prev.JoyRight.Down {
		out.JoyRight = ButtonUp()
	}
	if current.JoyX > -DeadZone && prev.JoyLeft.Down {
		out.JoyLeft = ButtonUp()
	}

	// Start flicks on entering the flick zone
	if current.JoyY > FlickThreshold && !prev.JoyUp.Down {
		out.JoyUp = ButtonDown()
	}
	if current.JoyY < -FlickThreshold && !prev.JoyDown.Down {
		out.JoyDown = ButtonDown()
	}
	if current.JoyX > FlickThreshold && !prev.JoyRight.Down {
		out.JoyRight = ButtonDown()
	}
	if current.JoyX < -FlickThreshold && !prev.JoyLeft.Down {
		out.JoyLeft = ButtonDown()
	}

	return out
}
