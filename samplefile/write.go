package samplefile

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/logging"
)

// DefaultPrecision is the number of significant digits of text bodies.
const DefaultPrecision = 7

// Writer holds the storage options of written samples files.
type Writer struct {
	// Mode selects the body encoding. Zero means Scatter.
	Mode Mode `json:"mode"`
	// Precision is the number of significant digits of text values. Zero
	// means DefaultPrecision.
	Precision int `json:"precision"`
	// GzipLevel is the compression level of .gz files. Zero means
	// gzip.DefaultCompression.
	GzipLevel int `json:"gzip_level"`
}

func (w Writer) mode() Mode {
	if w.Mode == 0 {
		return Scatter
	}
	return w.Mode
}

func (w Writer) precision() int {
	if w.Precision <= 0 {
		return DefaultPrecision
	}
	return w.Precision
}

func (w Writer) gzipLevel() int {
	if w.GzipLevel == 0 {
		return gzip.DefaultCompression
	}
	return w.GzipLevel
}

// Write2D stores g, spanning ycal and xcal, in the file name. "-" writes
// to the session stdout and a .gz suffix compresses the file.
func (w Writer) Write2D(s *common.Session, name string, g *common.Grid, ycal, xcal common.Calibration, norm float64, desc string) (err error) {
	if name == "" {
		return ErrNoFileName
	}
	if g == nil {
		return ErrNilData
	}
	if !w.mode().Valid() {
		return &UnknownModeError{Mode: string(w.Mode)}
	}
	dst, err := openSink(s, name, w.gzipLevel())
	if err != nil {
		s.Log("WriteSamples").Error(err, "can not open output")
		return err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", name, cerr)
		}
	}()
	if err := w.Encode(dst, g, ycal, xcal, norm, desc); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	s.Log("WriteSamples").Info("samples saved", logging.Fields{
		"file": name, "mode": w.mode().String(), "ny": g.Rows, "nx": g.Cols,
	})
	return nil
}

// Write stores the 1D array data spanning cal in the file name.
func (w Writer) Write(s *common.Session, name string, data []float64, cal common.Calibration, norm float64, desc string) error {
	if data == nil {
		return ErrNilData
	}
	return w.Write2D(s, name, common.RowGrid(data), common.Calibration{Low: 0, High: 1}, cal, norm, desc)
}

// Encode writes header and body of g to out.
func (w Writer) Encode(out io.Writer, g *common.Grid, ycal, xcal common.Calibration, norm float64, desc string) error {
	mode := w.mode()
	line, err := FormatHeader(Header{
		Mode: mode,
		Nx:   g.Cols, Xle: xcal.Low, Xhe: xcal.High,
		Ny: g.Rows, Yle: ycal.Low, Yhe: ycal.High,
		Norm: norm, Description: desc,
	})
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(out)
	if _, err := bw.WriteString(line); err != nil {
		return err
	}

	nx, ny := g.Cols, g.Rows
	prec := w.precision()
	xw, yw := xcal.ChannelWidth(nx), ycal.ChannelWidth(ny)

	switch mode {
	case Scatter, Gnuplot:
		if nx == 1 && ny == 1 {
			fmt.Fprintf(bw, "%.*g %.*g %.*g\n",
				prec, (xcal.Low+xcal.High)/2, prec, (ycal.Low+ycal.High)/2, prec, g.At(0, 0))
			break
		}
		for j := 0; j < ny; j++ {
			row := g.Row(j)
			for i, v := range row {
				if mode == Scatter && v == 0 {
					continue
				}
				if nx > 1 {
					fmt.Fprintf(bw, "%.*g ", prec, (float64(i)+0.5)*xw+xcal.Low)
				}
				if ny > 1 {
					fmt.Fprintf(bw, "%.*g ", prec, (float64(j)+0.5)*yw+ycal.Low)
				}
				fmt.Fprintf(bw, "%.*g\n", prec, v)
			}
			if mode == Gnuplot && nx > 1 && ny > 1 {
				bw.WriteByte('\n')
			}
		}

	case Matrix:
		for j := 0; j < ny; j++ {
			for _, v := range g.Row(j) {
				fmt.Fprintf(bw, "%.*g ", prec, v)
				if ny == 1 {
					bw.WriteByte('\n')
				}
			}
			if ny > 1 {
				bw.WriteByte('\n')
			}
		}

	case Binary:
		tmp := make([]float32, nx)
		for j := 0; j < ny; j++ {
			for i, v := range g.Row(j) {
				tmp[i] = float32(v)
			}
			if err := binary.Write(bw, binary.LittleEndian, tmp); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Write2D stores g in name using mode and the default precision.
func Write2D(s *common.Session, name string, mode Mode, g *common.Grid, ycal, xcal common.Calibration, norm float64, desc string) error {
	return Writer{Mode: mode}.Write2D(s, name, g, ycal, xcal, norm, desc)
}

// Write stores the 1D array data in name using mode.
func Write(s *common.Session, name string, mode Mode, data []float64, cal common.Calibration, norm float64, desc string) error {
	return Writer{Mode: mode}.Write(s, name, data, cal, norm, desc)
}
