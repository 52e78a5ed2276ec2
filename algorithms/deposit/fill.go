// Package deposit spreads point values into sample arrays.
//
// Every deposit keeps the deposited weight: the values added to the cells
// sum to the deposited value. The two cell, three cell and integer width
// variants also keep the centre of gravity at the requested position.
// Parts of a deposit that fall outside the array are dropped; they are
// neither wrapped nor clamped onto the edge cells.
package deposit

import (
	"math"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
)

// Nearest returns the channel closest to pos. A position exactly half way
// between two channels belongs to the lower one.
func Nearest(pos float64) float64 {
	return math.Ceil(pos - 0.5)
}

func add(in []float64, idx float64, v float64) {
	if idx >= 0 && idx < float64(len(in)) {
		in[int(idx)] += v
	}
}

// Fill1 adds value to the channel nearest to pos and returns that channel.
func Fill1(in []float64, pos, value float64) float64 {
	ipos := Nearest(pos)
	add(in, ipos, value)
	return ipos
}

// Fill2 splits value between the two channels around pos in proportion to
// the distance, keeping integral and centre of gravity. Returns pos.
func Fill2(in []float64, pos, value float64) float64 {
	ipos := math.Floor(pos)
	f := pos - ipos
	add(in, ipos, value*(1-f))
	add(in, ipos+1, value*f)
	return pos
}

// Fill3 spreads value over three channels around pos keeping integral and
// centre of gravity. The central channel always receives value/2.
func Fill3(in []float64, pos, value float64) float64 {
	p := pos + 0.5
	ipos := math.Floor(p)
	f := p - ipos
	add(in, ipos-1, value*(1-f)/2)
	add(in, ipos, value/2)
	add(in, ipos+1, value*f/2)
	return pos
}

// Fill deposits value as a rectangular pulse of the given width centred
// at pos. Each channel receives the fraction of the pulse that overlaps
// it. Width 0 behaves like Fill1, width 1 like Fill2 and width 2 like
// Fill3. Integer widths keep the centre of gravity; other widths keep only
// the integral. Returns pos.
func Fill(in []float64, pos, value, width float64) float64 {
	if value == 0 {
		return pos
	}
	first, weights := Overlap(pos, width, nil)
	for k, w := range weights {
		add(in, float64(first+k), value*w)
	}
	return pos
}

// Overlap computes the fraction of a unit rectangular pulse of the given
// width centred at pos that falls into each channel. It returns the first
// channel touched and the fractions of consecutive channels, which sum to
// one. buf is reused when it has enough capacity.
func Overlap(pos, width float64, buf []float64) (int, []float64) {
	width = math.Abs(width)
	if width == 0 {
		return int(Nearest(pos)), append(buf[:0], 1)
	}

	p := pos + 0.5
	hw := width * 0.5
	le := p - hw
	he := p + hw
	ile := math.Floor(le)
	ihe := math.Floor(he)
	if ile == ihe {
		return int(ile), append(buf[:0], 1)
	}

	fle := 1 + ile - le
	fhe := he - ihe
	delta := int(ihe - ile)

	weights := buf[:0]
	weights = append(weights, fle/width)
	for i := 1; i < delta; i++ {
		weights = append(weights, 1/width)
	}
	weights = append(weights, fhe/width)
	return int(ile), weights
}

// Fill2D1 adds value to the cell nearest to (ypos, xpos).
func Fill2D1(g *common.Grid, ypos, xpos, value float64) bool {
	yi := Nearest(ypos)
	xi := Nearest(xpos)
	if yi < 0 || xi < 0 || yi >= float64(g.Rows) || xi >= float64(g.Cols) {
		return false
	}
	g.Add(int(yi), int(xi), value)
	return true
}

// Fill2D2 splits value bilinearly between the four cells around
// (ypos, xpos), keeping integral and centre of gravity in both axes.
func Fill2D2(g *common.Grid, ypos, xpos, value float64) {
	yi := math.Floor(ypos)
	xi := math.Floor(xpos)
	yf := ypos - yi
	xf := xpos - xi
	add2D(g, yi, xi, value*(1-yf)*(1-xf))
	add2D(g, yi+1, xi, value*yf*(1-xf))
	add2D(g, yi, xi+1, value*(1-yf)*xf)
	add2D(g, yi+1, xi+1, value*yf*xf)
}

// Fill2D deposits value as a rectangle of ywidth x xwidth centred at
// (ypos, xpos). The overlap is computed independently per axis and each
// cell receives the product of both axis fractions.
func Fill2D(g *common.Grid, ypos, xpos, value, ywidth, xwidth float64) {
	if value == 0 {
		return
	}
	var ybuf, xbuf [16]float64
	y0, yw := Overlap(ypos, ywidth, ybuf[:0])
	x0, xw := Overlap(xpos, xwidth, xbuf[:0])
	for ky, wy := range yw {
		yi := y0 + ky
		if yi < 0 || yi >= g.Rows {
			continue
		}
		row := g.Row(yi)
		for kx, wx := range xw {
			xi := x0 + kx
			if xi < 0 || xi >= g.Cols {
				continue
			}
			row[xi] += value * wy * wx
		}
	}
}

func add2D(g *common.Grid, yi, xi, v float64) {
	if yi >= 0 && xi >= 0 && yi < float64(g.Rows) && xi < float64(g.Cols) {
		g.Add(int(yi), int(xi), v)
	}
}
