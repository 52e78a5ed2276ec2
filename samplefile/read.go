package samplefile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/deposit"
	"github.com/RyanBlaney/sonido-samples/logging"
)

// integerTolerance decides whether a source grid lines up with the target
// grid closely enough to fill channels directly.
const integerTolerance = 1e-7

// ReadHeader reads the header of the samples file name. The storage mode
// is remembered in the session.
//
// On "-" a first byte other than '#' is left unread and ErrBadHeader is
// returned, so the line stays available for the next read.
func ReadHeader(s *common.Session, name string) (Header, error) {
	src, err := openSource(s, name)
	if err != nil {
		return Header{}, err
	}
	defer src.Close()

	if src.stdin {
		b, err := src.Peek(1)
		if err != nil {
			return Header{}, fmt.Errorf("reading header of %s: %w", name, err)
		}
		if b[0] != '#' {
			return Header{}, ErrBadHeader
		}
	}

	line, err := src.ReadString('\n')
	if line == "" && err != nil {
		if errors.Is(err, io.EOF) {
			return Header{}, ErrBadHeader
		}
		return Header{}, fmt.Errorf("reading header of %s: %w", name, err)
	}
	h, err := ParseHeader(line)
	if err != nil {
		s.Log("ReadSamplesHeader").Error(err, "not a proper header", logging.Fields{"file": name})
		return Header{}, err
	}
	s.SetLastMode(rune(h.Mode))

	if l := s.Log("ReadSamplesHeader"); l.Enabled(logging.DebugLevel) {
		l.Debug("header read", logging.Fields{
			"file": name, "mode": h.Mode.String(), "ny": h.Ny, "nx": h.Nx, "description": h.Description,
		})
	}
	return h, nil
}

// reader adds the body of a samples stream to a target grid.
type reader struct {
	s      *common.Session
	g      *common.Grid
	ycal   common.Calibration
	xcal   common.Calibration
	multi  float64
	column bool

	// source layout, defaulting to the target layout
	nx, ny           int
	xle, yle         float64
	xtwidth, ytwidth float64

	// deposition widths, zero when source and target channels line up
	xwidth, ywidth float64

	// matrix counters
	i, j int
}

func newReader(s *common.Session, g *common.Grid, ycal, xcal common.Calibration, multi float64) *reader {
	return &reader{
		s: s, g: g, ycal: ycal, xcal: xcal, multi: multi,
		column:  g.Cols == 1 && g.Rows > 1,
		nx:      g.Cols,
		ny:      g.Rows,
		xle:     xcal.Low,
		yle:     ycal.Low,
		xtwidth: xcal.ChannelWidth(g.Cols),
		ytwidth: ycal.ChannelWidth(g.Rows),
	}
}

// depositWidth returns 0 when the source channels of width twidth starting
// at tle fall onto whole target channels of width width starting at le,
// and twidth otherwise.
func depositWidth(tle, le, width, twidth float64) float64 {
	l1 := (tle - le) / width
	l2 := width / twidth
	if l1 < 0 {
		l1 = -l1
	}
	if l2 < 0 {
		l2 = -l2
	}
	if common.NearlyInteger(l1, integerTolerance) && common.NearlyInteger(l2, integerTolerance) {
		return 0
	}
	return twidth
}

func (r *reader) useHeader(h Header) {
	r.i, r.j = 0, 0
	r.nx, r.ny = h.Nx, h.Ny
	r.xle, r.yle = h.Xle, h.Yle
	r.xtwidth = h.XCal().ChannelWidth(h.Nx)
	r.ytwidth = h.YCal().ChannelWidth(h.Ny)

	r.xwidth = depositWidth(h.Xle, r.xcal.Low, r.xcal.ChannelWidth(r.g.Cols), r.xtwidth)
	r.ywidth = depositWidth(h.Yle, r.ycal.Low, r.ycal.ChannelWidth(r.g.Rows), r.ytwidth)

	if l := r.s.Log("ReadAddSamples"); l.Enabled(logging.DebugLevel) {
		l.Debug("deposition widths", logging.Fields{"ywidth": r.ywidth, "xwidth": r.xwidth})
	}
}

func (r *reader) add(y, x, z float64) {
	if z == 0 {
		return
	}
	if l := r.s.Logger(); l.Enabled(logging.TraceLevel) {
		l.Trace("ReadAddSamples", logging.Fields{"y": y, "x": x, "z": z * r.multi})
	}
	deposit.Increment2D(r.s, r.g, r.ycal, r.xcal, y, x, z*r.multi, r.ywidth, r.xwidth)
}

// scatterLine reads "x y z", "x z" or "y z" lines of the Scatter and
// Gnuplot bodies. Blank and malformed lines are skipped.
func (r *reader) scatterLine(line string) {
	f := strings.Fields(line)
	if len(f) < 2 {
		return
	}
	x, err1 := strconv.ParseFloat(f[0], 64)
	y, err2 := strconv.ParseFloat(f[1], 64)
	if err1 != nil || err2 != nil {
		return
	}
	if len(f) >= 3 {
		if z, err := strconv.ParseFloat(f[2], 64); err == nil {
			r.add(y, x, z)
			return
		}
	}
	z := y
	if r.column {
		y = x
		x = r.xtwidth*0.5 + r.xle
	} else {
		y = r.ytwidth*0.5 + r.yle
	}
	r.add(y, x, z)
}

// matrixLine reads the values of a line of a Matrix body. The position
// continues from the previous line and wraps after nx values.
func (r *reader) matrixLine(line string) {
	for _, tok := range strings.Fields(line) {
		z, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return
		}
		x := (float64(r.i)+0.5)*r.xtwidth + r.xle
		y := (float64(r.j)+0.5)*r.ytwidth + r.yle
		r.add(y, x, z)
		r.i++
		if r.i >= r.nx {
			r.j++
			r.i = 0
		}
		if r.j >= r.ny {
			r.j = 0
			return
		}
	}
}

// binaryBody reads ny rows of nx float32 values. A short stream ends the
// body early.
func (r *reader) binaryBody(in io.Reader) {
	if r.nx <= 0 {
		return
	}
	tmp := make([]float32, r.nx)
	for j := 0; j < r.ny; j++ {
		if err := binary.Read(in, binary.LittleEndian, tmp); err != nil {
			return
		}
		for i, z := range tmp {
			x := (float64(i)+0.5)*r.xtwidth + r.xle
			y := (float64(j)+0.5)*r.ytwidth + r.yle
			r.add(y, x, float64(z))
		}
	}
}

// ReadAdd2D reads the samples file name, multiplies every value by multi
// and adds it to g, which spans ycal and xcal. "-" reads the session stdin.
//
// Source values are deposited at their physical position, so the file is
// rebinned onto g and only the overlapping range is filled. When the
// source channels line up with whole target channels the values go
// straight into the channel containing them; otherwise they are spread
// over the width of a source channel. A degenerate target calibration
// (Low == High) stretches a 1D source over that whole axis, or projects
// a 2D source onto it. Several concatenated samples in one file are all
// added.
//
// On "-" a mode remembered by a preceding ReadHeader applies to the data
// that follows it, using the layout of g. The remembered mode is cleared
// on return.
func ReadAdd2D(s *common.Session, name string, g *common.Grid, ycal, xcal common.Calibration, multi float64) (Mode, error) {
	if g == nil {
		return 0, ErrNilData
	}
	src, err := openSource(s, name)
	if err != nil {
		s.Log("ReadAddSamples").Error(err, "can not open input")
		return 0, err
	}
	defer src.Close()
	defer s.SetLastMode(0)

	r := newReader(s, g, ycal, xcal, multi)
	var mode Mode
	if src.stdin {
		mode = Mode(s.LastMode())
		if mode == Binary {
			r.binaryBody(src)
		}
	}

	for {
		line, err := src.ReadString('\n')
		if line == "" && err != nil {
			if !errors.Is(err, io.EOF) {
				return mode, fmt.Errorf("reading %s: %w", name, err)
			}
			break
		}

		if strings.HasPrefix(line, "#") {
			h, perr := ParseHeader(line)
			if perr != nil {
				continue
			}
			if mode != 0 {
				s.Log("ReadAddSamples").Warn("reading a second sample, norm information will be lost", logging.Fields{"file": name})
			}
			if r.column {
				h = h.Swapped()
			}
			mode = h.Mode
			s.SetLastMode(rune(mode))
			r.useHeader(h)
			if mode == Binary {
				r.binaryBody(src)
			}
			continue
		}

		switch mode {
		case Scatter, Gnuplot:
			r.scatterLine(line)
		case Matrix:
			r.matrixLine(line)
		}
	}

	if mode == 0 {
		return 0, fmt.Errorf("%s: %w", name, ErrBadHeader)
	}
	s.Log("ReadAddSamples").Info("samples read", logging.Fields{"file": name, "mode": mode.String()})
	return mode, nil
}

// ReadAdd is ReadAdd2D for the 1D array data spanning cal. A 2D source is
// projected onto it.
func ReadAdd(s *common.Session, name string, data []float64, cal common.Calibration, multi float64) (Mode, error) {
	if data == nil {
		return 0, ErrNilData
	}
	return ReadAdd2D(s, name, common.RowGrid(data), common.Calibration{}, cal, multi)
}

// Read loads the samples file name as a 1D array with the range given in
// its header. A 2D file is projected onto its x axis.
func Read(s *common.Session, name string) ([]float64, Header, error) {
	h, err := ReadHeader(s, name)
	if err != nil {
		return nil, Header{}, err
	}
	if h.Nx <= 0 {
		return nil, Header{}, fmt.Errorf("%w: size %d", ErrBadHeader, h.Nx)
	}
	data := make([]float64, h.Nx)
	if _, err := ReadAdd(s, name, data, h.XCal(), 1); err != nil {
		return nil, Header{}, err
	}
	return data, h, nil
}

// Read2D loads the samples file name as a grid with the layout given in
// its header.
func Read2D(s *common.Session, name string) (*common.Grid, Header, error) {
	h, err := ReadHeader(s, name)
	if err != nil {
		return nil, Header{}, err
	}
	if h.Nx <= 0 || h.Ny <= 0 {
		return nil, Header{}, fmt.Errorf("%w: size %dx%d", ErrBadHeader, h.Ny, h.Nx)
	}
	g := common.NewGrid(h.Ny, h.Nx)
	if _, err := ReadAdd2D(s, name, g, h.YCal(), h.XCal(), 1); err != nil {
		return nil, Header{}, err
	}
	return g, h, nil
}
