package deposit

import (
	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/logging"
)

// Increment converts the physical position x into a channel of hist using
// cal and deposits value there, spread over width (in physical units).
// Width 0 fills the single nearest channel.
//
// A degenerate calibration (Low == High) forces the deposit to cover the
// whole array: the range becomes [x-width/2, x+width/2] with width
// defaulting to 1.
func Increment(s *common.Session, hist []float64, cal common.Calibration, x, value, width float64) {
	if cal.Degenerate() {
		if width == 0 {
			width = 1
		}
		cal = common.Calibration{Low: x - 0.5*width, High: x + 0.5*width}
	}
	n := len(hist)
	res := float64(n) / cal.Span()
	xi := (x-cal.Low)*res - 0.5
	width *= res

	if width == 0 {
		Fill1(hist, xi, value)
	} else {
		Fill(hist, xi, value, width)
	}

	if l := s.Logger(); l.Enabled(logging.DebugLevel) {
		l.Debug("IncrementSamples", logging.Fields{"n": n, "xi": xi, "value": value, "width": width})
	}
}

// Increment2D is Increment for a grid. Each degenerate axis calibration is
// spread over that whole axis.
func Increment2D(s *common.Session, hist *common.Grid, ycal, xcal common.Calibration, y, x, value, ywidth, xwidth float64) {
	if xcal.Degenerate() {
		if xwidth == 0 {
			xwidth = 1
		}
		xcal = common.Calibration{Low: x - 0.5*xwidth, High: x + 0.5*xwidth}
	}
	if ycal.Degenerate() {
		if ywidth == 0 {
			ywidth = 1
		}
		ycal = common.Calibration{Low: y - 0.5*ywidth, High: y + 0.5*ywidth}
	}

	xres := float64(hist.Cols) / xcal.Span()
	yres := float64(hist.Rows) / ycal.Span()
	xi := (x-xcal.Low)*xres - 0.5
	yi := (y-ycal.Low)*yres - 0.5
	xwidth *= xres
	ywidth *= yres

	if xwidth == 0 && ywidth == 0 {
		Fill2D1(hist, yi, xi, value)
	} else {
		Fill2D(hist, yi, xi, value, ywidth, xwidth)
	}

	if l := s.Logger(); l.Enabled(logging.DebugLevel) {
		l.Debug("Increment2DSamples", logging.Fields{
			"ny": hist.Rows, "nx": hist.Cols, "yi": yi, "xi": xi,
			"value": value, "ywidth": ywidth, "xwidth": xwidth,
		})
	}
}

// Histogram adds value to the channel of hist that contains x. Unlike
// Increment the channel is found by truncation, not rounding. It reports
// false when x lies outside the calibrated range or the range is empty.
func Histogram(hist []float64, cal common.Calibration, x, value float64) bool {
	if cal.Degenerate() {
		return false
	}
	xi := (x - cal.Low) * float64(len(hist)) / cal.Span()
	if xi < 0 || xi >= float64(len(hist)) {
		return false
	}
	hist[int(xi)] += value
	return true
}

// Histogram2D is Histogram for a grid.
func Histogram2D(hist *common.Grid, ycal, xcal common.Calibration, y, x, value float64) bool {
	if xcal.Degenerate() || ycal.Degenerate() {
		return false
	}
	xi := (x - xcal.Low) * float64(hist.Cols) / xcal.Span()
	if xi < 0 || xi >= float64(hist.Cols) {
		return false
	}
	yi := (y - ycal.Low) * float64(hist.Rows) / ycal.Span()
	if yi < 0 || yi >= float64(hist.Rows) {
		return false
	}
	hist.Add(int(yi), int(xi), value)
	return true
}
