package player

import "math"

// silentVolume is the exponent used for a zero level. The volume effect is
// also marked silent then, so the exact value only matters while ramping.
const silentVolume = -10

// levelToVolume maps a linear level in [0, 1] to the base-2 exponent beep's
// volume effect takes: each halving of the level is one step down.
func levelToVolume(level float64) float64 {
	switch {
	case level <= 0:
		return silentVolume
	case level >= 1:
		return 0
	}
	return math.Log2(level)
}
