package common

// Calibration maps a physical coordinate onto the channels of a sample
// array. Channel i covers [Low + i*w, Low + (i+1)*w) with w = (High-Low)/n,
// so channel centres sit at half-integer positions of the physical range.
type Calibration struct {
	Low  float64 `json:"low_edge"`
	High float64 `json:"high_edge"`
}

// Channels returns the identity calibration for n channels, [0, n).
func Channels(n int) Calibration {
	return Calibration{Low: 0, High: float64(n)}
}

// Span returns High-Low.
func (c Calibration) Span() float64 {
	return c.High - c.Low
}

// Degenerate reports whether the calibration has no extent.
func (c Calibration) Degenerate() bool {
	return c.High == c.Low
}

// Index converts a physical value x to a fractional channel index of an
// n channel array. Channel centres map to integers.
func (c Calibration) Index(n int, x float64) float64 {
	res := float64(n) / (c.High - c.Low)
	return (x-c.Low)*res - 0.5
}

// Value converts a fractional channel index back to a physical value.
func (c Calibration) Value(n int, i float64) float64 {
	res := (c.High - c.Low) / float64(n)
	return (i+0.5)*res + c.Low
}

// ChannelWidth returns the physical width of one of n channels.
func (c Calibration) ChannelWidth(n int) float64 {
	return (c.High - c.Low) / float64(n)
}
