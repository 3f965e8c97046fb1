package player

import "time"

const eventBufferSize = 16

// Event is a notification from the media engine.
type Event interface {
	isEvent()
}

// TimeUpdate reports the playback position. Updates are coalesced when the
// consumer lags behind.
type TimeUpdate struct {
	Position time.Duration
	Duration time.Duration
}

// Ended reports that the locator played to its end.
type Ended struct {
	Source string
}

// Failed reports a decode or network failure for a locator.
type Failed struct {
	Source string
	Reason error
}

func (TimeUpdate) isEvent() {}
func (Ended) isEvent()      {}
func (Failed) isEvent()     {}
