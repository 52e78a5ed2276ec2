package spectral

import (
	"math"
)

// Power squares an amplitude spectrum into out, which may be amp.
func Power(amp, out []float64) int {
	for i, a := range amp {
		out[i] = a * a
	}
	return len(amp)
}

// LogPower converts an amplitude spectrum into power in dB. Powers below
// floorDB are clamped to it. out may be amp.
func LogPower(amp, out []float64, floorDB float64) int {
	floor := math.Pow(10, floorDB/10.0)
	for i, a := range amp {
		power := a * a
		if power < floor {
			power = floor
		}
		out[i] = 10 * math.Log10(power)
	}
	return len(amp)
}
