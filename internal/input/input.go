package input

import "github.com/go-gl/mathgl/mgl32"

// Action is a logical command decoded from a platform key.
type Action int

const (
	MoveForward Action = iota
	MoveBack
	StrafeLeft
	StrafeRight
	ResetScene
	IncreaseBounces
	DecreaseBounces
	Quit
)

var actionNames = [...]string{
	MoveForward:     "move-forward",
	MoveBack:        "move-back",
	StrafeLeft:      "strafe-left",
	StrafeRight:     "strafe-right",
	ResetScene:      "reset-scene",
	IncreaseBounces: "increase-bounces",
	DecreaseBounces: "decrease-bounces",
	Quit:            "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Repeats reports whether holding the key keeps firing the action. Only movement does.
func (a Action) Repeats() bool {
	switch a {
	case MoveForward, MoveBack, StrafeLeft, StrafeRight:
		return true
	}
	return false
}

// Event is one decoded key event. Repeat is set for auto-repeat while the key is held.
type Event struct {
	Action Action
	Repeat bool
}

// Batch is everything that happened since the previous tick.
// Look is the cursor movement in screen pixels (y grows downwards).
type Batch struct {
	Events []Event
	Look   mgl32.Vec2
}

// Bindings maps platform key codes to actions. raylib and GLFW share key code values.
type Bindings map[int32]Action

// Decode turns a key press (or repeat) into an event. Unbound keys and repeats of
// non-repeating actions are dropped.
func (b Bindings) Decode(key int32, repeat bool) (Event, bool) {
	a, ok := b[key]
	if !ok {
		return Event{}, false
	}
	if repeat && !a.Repeats() {
		return Event{}, false
	}
	return Event{Action: a, Repeat: repeat}, true
}
