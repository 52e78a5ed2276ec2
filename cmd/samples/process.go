package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/filters"
	"github.com/RyanBlaney/sonido-samples/algorithms/temporal"
	"github.com/RyanBlaney/sonido-samples/algorithms/windowing"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

func newSmoothCmd(a *app) *cobra.Command {
	var ywidth float64
	cmd := &cobra.Command{
		Use:   "smooth IN OUT",
		Short: "Box smooth a samples file",
		Long:  "smooth applies --passes passes of a box average of --width channels along x and, for 2D input, --ywidth along y.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, h, err := samplefile.Read2D(a.session, args[0])
			if err != nil {
				return err
			}
			fc := a.cfg.Filter
			if g.Rows == 1 {
				filters.Smooth(a.session, g.Row(0), g.Row(0), fc.Passes, fc.Width)
			} else {
				filters.Smooth2D(a.session, g, g, fc.Passes, ywidth, fc.Width)
			}
			return a.write(args[1], g, h.YCal(), h.XCal(), h.Norm, h.Description)
		},
	}
	cmd.Flags().IntP("passes", "p", 0, "number of passes")
	cmd.Flags().Float64P("width", "w", 0, "box width in channels, may be fractional")
	cmd.Flags().Float64Var(&ywidth, "ywidth", 0, "box width along y for 2D input, 0 leaves y alone")
	a.bindFlag(cmd, "passes", "filter.passes")
	a.bindFlag(cmd, "width", "filter.width")
	return cmd
}

// rowFilters apply to a single trace in place.
var rowFilters = map[string]func(a *app, row []float64) error{
	"lowpass": func(a *app, row []float64) error {
		filters.MultiLowPass(row, row, a.cfg.Filter.Passes, a.cfg.Filter.Decay, row[0])
		return nil
	},
	"highpass": func(a *app, row []float64) error {
		filters.MultiHighPass(row, row, a.cfg.Filter.Passes, a.cfg.Filter.Decay, row[0])
		return nil
	},
	"lrlowpass": func(a *app, row []float64) error {
		for i, n := 0, a.cfg.Filter.Passes; i < n; i++ {
			filters.LRLowPass(row, row, a.cfg.Filter.Decay)
		}
		return nil
	},
	"average": func(a *app, row []float64) error {
		filters.Average(row, row, a.cfg.Filter.Passes, int(a.cfg.Filter.Width))
		return nil
	},
	"causal": func(a *app, row []float64) error {
		filters.CausalAverage(row, row, a.cfg.Filter.Passes, int(a.cfg.Filter.Width))
		return nil
	},
	"lraverage": func(a *app, row []float64) error {
		filters.LRAverage(row, row, a.cfg.Filter.Passes, int(a.cfg.Filter.Width))
		return nil
	},
	"lrsum": func(a *app, row []float64) error {
		filters.LRSum(row, row, a.cfg.Filter.Passes, int(a.cfg.Filter.Width))
		return nil
	},
	"cfd": func(a *app, row []float64) error {
		if filters.CFDShaper(row, row, a.cfg.Filter.CFDDelay, a.cfg.Filter.CFDFraction) == 0 {
			return fmt.Errorf("cfd delay %d does not fit %d channels", a.cfg.Filter.CFDDelay, len(row))
		}
		return nil
	},
	"derivative": func(_ *app, row []float64) error {
		temporal.Difference(row, row)
		return nil
	},
	"integral": func(_ *app, row []float64) error {
		temporal.Integral(row, row)
		return nil
	},
}

func newFilterCmd(a *app) *cobra.Command {
	var (
		kind   string
		window string
	)
	cmd := &cobra.Command{
		Use:   "filter IN OUT",
		Short: "Shape every row of a samples file",
		Long: "filter applies one of lowpass, highpass, lrlowpass, average, causal,\n" +
			"lraverage, lrsum, cfd, derivative or integral to every row and can\n" +
			"apply (--window name) or remove (--window -name) a window afterwards.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apply, ok := rowFilters[kind]
			if kind != "" && !ok {
				return fmt.Errorf("unknown filter %q", kind)
			}
			code, err := windowCode(window)
			if err != nil {
				return err
			}
			g, h, err := samplefile.Read2D(a.session, args[0])
			if err != nil {
				return err
			}
			if err := eachRow(g, func(row []float64) error {
				if apply != nil {
					if err := apply(a, row); err != nil {
						return err
					}
				}
				windowing.ApplyCode(code, row, row)
				return nil
			}); err != nil {
				return err
			}
			return a.write(args[1], g, h.YCal(), h.XCal(), h.Norm, h.Description)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&kind, "kind", "k", "", "filter to apply")
	f.StringVar(&window, "window", "", "window to apply, prefixed by - to remove it")
	f.IntP("passes", "p", 0, "number of passes")
	f.Float64P("width", "w", 0, "running average width in channels")
	f.Float64P("decay", "d", 0, "decay constant of the recursive filters")
	f.Int("delay", 0, "cfd delay in channels")
	f.Float64("fraction", 0, "cfd fraction")
	a.bindFlag(cmd, "passes", "filter.passes")
	a.bindFlag(cmd, "width", "filter.width")
	a.bindFlag(cmd, "decay", "filter.decay")
	a.bindFlag(cmd, "delay", "filter.cfd_delay")
	a.bindFlag(cmd, "fraction", "filter.cfd_fraction")
	return cmd
}

// windowCode turns "hamming" into the Hamming code and "-hamming" into its
// removal code.
func windowCode(name string) (int, error) {
	sign := 1
	if len(name) > 0 && name[0] == '-' {
		sign, name = -1, name[1:]
	}
	t, err := windowing.ParseType(name)
	if err != nil {
		return 0, err
	}
	return sign * int(t), nil
}

func eachRow(g *common.Grid, fn func(row []float64) error) error {
	for j := 0; j < g.Rows; j++ {
		if g.Cols == 0 {
			continue
		}
		if err := fn(g.Row(j)); err != nil {
			return err
		}
	}
	return nil
}
