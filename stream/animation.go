package stream

// An Animation produces the frame to stream for the current tick.
type Animation interface {
	CalculateFrame() *Frame
}

// A Dispatcher handles commands addressed to named animations.
type Dispatcher interface {
	Dispatch(cmd Command)
}

// Command asks the animation called Animation to run the command Name.
type Command struct {
	Animation string `json:"animation"`
	Name      string `json:"command"`
}
