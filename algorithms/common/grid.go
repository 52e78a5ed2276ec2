package common

// Grid is a two dimensional sample array stored row-major in one
// contiguous buffer. Rows returned by Row are views into Data; there is a
// single owner of the storage and no per-row allocation.
type Grid struct {
	Data   []float64
	Rows   int
	Cols   int
	Stride int
}

// NewGrid allocates a zeroed ny x nx grid in one block. A negative size
// counts as zero.
func NewGrid(ny, nx int) *Grid {
	ny, nx = max(ny, 0), max(nx, 0)
	return &Grid{
		Data:   make([]float64, ny*nx),
		Rows:   ny,
		Cols:   nx,
		Stride: nx,
	}
}

// RowGrid wraps a 1D array as a 1 x len(data) grid sharing its storage.
func RowGrid(data []float64) *Grid {
	return &Grid{Data: data, Rows: 1, Cols: len(data), Stride: len(data)}
}

// ColumnGrid wraps a 1D array as a len(data) x 1 grid sharing its storage.
func ColumnGrid(data []float64) *Grid {
	return &Grid{Data: data, Rows: len(data), Cols: 1, Stride: 1}
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return g.Rows * g.Cols
}

// Contiguous reports whether rows follow each other without gaps, so Data
// can be treated as one flat buffer of Rows*Cols values.
func (g *Grid) Contiguous() bool {
	return g.Stride == g.Cols || g.Rows <= 1
}

// Row returns row j as a slice view.
func (g *Grid) Row(j int) []float64 {
	off := j * g.Stride
	return g.Data[off : off+g.Cols : off+g.Cols]
}

// At returns cell (j, i).
func (g *Grid) At(j, i int) float64 {
	return g.Data[j*g.Stride+i]
}

// Set stores v into cell (j, i).
func (g *Grid) Set(j, i int, v float64) {
	g.Data[j*g.Stride+i] = v
}

// Add adds v to cell (j, i).
func (g *Grid) Add(j, i int, v float64) {
	g.Data[j*g.Stride+i] += v
}

// Inside reports whether (j, i) addresses a cell of the grid.
func (g *Grid) Inside(j, i int) bool {
	return j >= 0 && j < g.Rows && i >= 0 && i < g.Cols
}

// Column copies column i into dst (allocated if too short) and returns it.
func (g *Grid) Column(i int, dst []float64) []float64 {
	if len(dst) < g.Rows {
		dst = make([]float64, g.Rows)
	}
	for j := 0; j < g.Rows; j++ {
		dst[j] = g.Data[j*g.Stride+i]
	}
	return dst[:g.Rows]
}

// SetColumn copies src into column i.
func (g *Grid) SetColumn(i int, src []float64) {
	for j := 0; j < g.Rows && j < len(src); j++ {
		g.Data[j*g.Stride+i] = src[j]
	}
}

// Clear sets every cell to zero and returns the number of cells.
func (g *Grid) Clear() int {
	for j := 0; j < g.Rows; j++ {
		clear(g.Row(j))
	}
	return g.Len()
}

// CopyTo copies the overlapping area of g into dst and returns the number
// of cells copied.
func (g *Grid) CopyTo(dst *Grid) int {
	ny := min(g.Rows, dst.Rows)
	nx := min(g.Cols, dst.Cols)
	for j := 0; j < ny; j++ {
		copy(dst.Row(j)[:nx], g.Row(j)[:nx])
	}
	return nx * ny
}

// Clone returns a contiguous deep copy of g.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Rows, g.Cols)
	g.CopyTo(out)
	return out
}
