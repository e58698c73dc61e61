package timeline

// Command names understood by HandleCommand.
const (
	CommandPlay    = "Play"
	CommandPause   = "Pause"
	CommandRestart = "Restart"
	CommandStop    = "Stop"
)

// IsCommand reports whether name is a timeline command.
func IsCommand(name string) bool {
	switch name {
	case CommandPlay, CommandPause, CommandRestart, CommandStop:
		return true
	}
	return false
}
