package player

// State is what a Speaker is doing with the audio device. Stopped means
// nothing is on the device; a stopped speaker with a buffered source plays
// again from where it stopped. Loading a new source or reaching the end of
// the stream always returns to Stopped.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var stateNames = [...]string{Stopped: "Stopped", Playing: "Playing", Paused: "Paused"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// IsActive reports whether a source is on the device, playing or paused.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause reports whether Pause has anything to do.
func (s State) CanPause() bool {
	return s == Playing
}
