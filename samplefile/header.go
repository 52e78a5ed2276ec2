package samplefile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
)

const headerFields = "size-x,low-edge-x,high-edge-x,size-y,low-edge-y,high-edge-y,norm,description"

// Header is the one line description that starts every samples file. A
// 1D array has Ny == 1.
type Header struct {
	Mode        Mode    `json:"mode"`
	Nx          int     `json:"nx"`
	Xle         float64 `json:"xle"`
	Xhe         float64 `json:"xhe"`
	Ny          int     `json:"ny"`
	Yle         float64 `json:"yle"`
	Yhe         float64 `json:"yhe"`
	Norm        float64 `json:"norm"`
	Description string  `json:"description"`
}

// XCal returns the x range of the header.
func (h Header) XCal() common.Calibration {
	return common.Calibration{Low: h.Xle, High: h.Xhe}
}

// YCal returns the y range of the header.
func (h Header) YCal() common.Calibration {
	return common.Calibration{Low: h.Yle, High: h.Yhe}
}

// Swapped returns h with the x and y roles exchanged.
func (h Header) Swapped() Header {
	h.Nx, h.Ny = h.Ny, h.Nx
	h.Xle, h.Yle = h.Yle, h.Xle
	h.Xhe, h.Yhe = h.Yhe, h.Xhe
	return h
}

// FormatHeader renders h as a header line including the newline. A
// column array (Nx == 1, Ny > 1) is written with the x and y fields
// exchanged, the layout older readers expect for 1D data. An empty
// description is written as "none".
func FormatHeader(h Header) (string, error) {
	tag := h.Mode.Tag()
	if tag == "" {
		return "", &UnknownModeError{Mode: string(h.Mode)}
	}
	if h.Nx == 1 && h.Ny > 1 {
		h = h.Swapped()
	}
	desc := strings.TrimSpace(strings.ReplaceAll(h.Description, "\n", " "))
	if desc == "" {
		desc = "none"
	}
	return fmt.Sprintf("#!%s/%s: %d %.7g %.7g %d %.7g %.7g %.7g %s\n",
		tag, headerFields, h.Nx, h.Xle, h.Xhe, h.Ny, h.Yle, h.Yhe, h.Norm, desc), nil
}

// ParseHeader reads a header line as written by FormatHeader. The fields
// are returned in the order they appear, without undoing the column swap.
//
// Lines without the "#!Samples" tag are read as legacy histogram headers,
// either "# name nx ny xle xhe yle yhe norm description" or the 1D form
// "# nx xle xhe norm description", and are stored in Scatter mode.
func ParseHeader(line string) (Header, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "#") {
		return Header{}, ErrBadHeader
	}

	if !strings.HasPrefix(line, "#!Samples") {
		return parseLegacyHeader(line)
	}

	var h Header
	tag, _, _ := strings.Cut(line[2:], "/")
	mode, ok := modeFromTag(tag)
	if !ok {
		return Header{}, fmt.Errorf("%w: unknown tag %q", ErrBadHeader, tag)
	}
	h.Mode = mode

	f, desc, ok := fields(line, 1, 7)
	if !ok {
		return Header{}, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	var p numbers
	h.Nx = p.size(f[0])
	h.Xle = p.float(f[1])
	h.Xhe = p.float(f[2])
	h.Ny = p.size(f[3])
	h.Yle = p.float(f[4])
	h.Yhe = p.float(f[5])
	h.Norm = p.float(f[6])
	if p.err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadHeader, p.err)
	}
	h.Description = desc
	return h, nil
}

func parseLegacyHeader(line string) (Header, error) {
	h := Header{Mode: Scatter}
	if f, desc, ok := fields(line, 2, 7); ok {
		var p numbers
		h.Nx = p.size(f[0])
		h.Ny = p.size(f[1])
		h.Xle = p.float(f[2])
		h.Xhe = p.float(f[3])
		h.Yle = p.float(f[4])
		h.Yhe = p.float(f[5])
		h.Norm = p.float(f[6])
		if p.err == nil {
			h.Description = desc
			return h, nil
		}
	}
	f, desc, ok := fields(line, 1, 4)
	if !ok {
		return Header{}, fmt.Errorf("%w: %q", ErrBadHeader, line)
	}
	var p numbers
	h.Nx = p.size(f[0])
	h.Xle = p.float(f[1])
	h.Xhe = p.float(f[2])
	h.Norm = p.float(f[3])
	if p.err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadHeader, p.err)
	}
	h.Ny, h.Yle, h.Yhe = 1, 0, 1
	h.Description = desc
	return h, nil
}

// fields skips the first skip tokens of line, returns the next n tokens
// and the non-empty remainder of the line.
func fields(line string, skip, n int) (tokens []string, rest string, ok bool) {
	rest = line
	for i := 0; i < skip+n; i++ {
		var tok string
		tok, rest = nextToken(rest)
		if tok == "" {
			return nil, "", false
		}
		if i >= skip {
			tokens = append(tokens, tok)
		}
	}
	rest = strings.TrimSpace(rest)
	return tokens, rest, rest != ""
}

func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// numbers parses header fields and keeps the first error.
type numbers struct {
	err error
}

func (p *numbers) float(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && p.err == nil {
		p.err = err
	}
	return v
}

// size accepts integers and, like the C library's atoi on a float field,
// truncates real numbers.
func (p *numbers) size(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return int(math.Trunc(p.float(s)))
}
