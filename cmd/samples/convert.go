package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Rewrite a samples file in another mode",
		Long:  "convert reads IN with the layout of its header and writes it to OUT using --mode.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, h, err := samplefile.Read2D(a.session, args[0])
			if err != nil {
				return err
			}
			return a.write(args[1], g, h.YCal(), h.XCal(), h.Norm, h.Description)
		},
	}
}

func newRebinCmd(a *app) *cobra.Command {
	var (
		nx, ny             int
		xle, xhe, yle, yhe float64
		scale              float64
	)
	cmd := &cobra.Command{
		Use:   "rebin IN OUT",
		Short: "Add a samples file onto a new grid",
		Long: "rebin deposits every value of IN at its physical position in a new\n" +
			"ny x nx grid spanning [xle, xhe) x [yle, yhe). Equal edges on an axis\n" +
			"stretch a 1D input over it or project a 2D input onto it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if nx < 1 || ny < 1 {
				return fmt.Errorf("invalid grid %dx%d", ny, nx)
			}
			g := common.NewGrid(ny, nx)
			ycal := common.Calibration{Low: yle, High: yhe}
			xcal := common.Calibration{Low: xle, High: xhe}
			if _, err := samplefile.ReadAdd2D(a.session, args[0], g, ycal, xcal, scale); err != nil {
				return err
			}
			return a.write(args[1], g, ycal, xcal, 0, "rebinned "+args[0])
		},
	}
	f := cmd.Flags()
	f.IntVar(&nx, "nx", 0, "number of x channels")
	f.Float64Var(&xle, "xle", 0, "low edge of x")
	f.Float64Var(&xhe, "xhe", 0, "high edge of x")
	f.IntVar(&ny, "ny", 1, "number of y channels")
	f.Float64Var(&yle, "yle", 0, "low edge of y")
	f.Float64Var(&yhe, "yhe", 0, "high edge of y")
	f.Float64Var(&scale, "scale", 1, "factor applied to every value")
	cobra.CheckErr(cmd.MarkFlagRequired("nx"))
	return cmd
}
