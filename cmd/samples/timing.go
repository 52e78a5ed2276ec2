package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/filters"
	"github.com/RyanBlaney/sonido-samples/algorithms/temporal"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

// printTime writes a channel position and its physical value.
func printTime(w io.Writer, cal common.Calibration, n int, channel float64) {
	fmt.Fprintf(w, "%s %.7g\n", labelStyle.Render("channel"), channel)
	fmt.Fprintf(w, "%s %.7g\n", labelStyle.Render("position"), cal.Value(n, channel))
}

func newCFDCmd(a *app) *cobra.Command {
	var stop int
	cmd := &cobra.Command{
		Use:   "cfd IN",
		Short: "Find the pulse start by constant fraction discrimination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, h, err := samplefile.Read(a.session, args[0])
			if err != nil {
				return err
			}
			fc := a.cfg.Filter
			t, ok := filters.CFD(data, fc.CFDDelay, fc.CFDFraction, stop)
			if !ok {
				return fmt.Errorf("%s: no constant fraction crossing (delay %d, fraction %g)", args[0], fc.CFDDelay, fc.CFDFraction)
			}
			printTime(cmd.OutOrStdout(), h.XCal(), len(data), t)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntP("delay", "d", 0, "delay in channels")
	f.Float64P("fraction", "f", 0, "fraction, below 1")
	f.IntVar(&stop, "stop", -1, "search only left of this channel, negative searches from the maximum")
	a.bindFlag(cmd, "delay", "filter.cfd_delay")
	a.bindFlag(cmd, "fraction", "filter.cfd_fraction")
	return cmd
}

var edges = map[string]func([]float64, int, float64) (int, bool){
	"leading": temporal.LeadingEdge,
	"falling": temporal.FallingEdge,
	"max":     temporal.MaxLeadingEdge,
}

func newTriggerCmd(a *app) *cobra.Command {
	var (
		edge      string
		start     int
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "trigger IN",
		Short: "Find the channel where a trace crosses a threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			find, ok := edges[edge]
			if !ok {
				return fmt.Errorf("unknown edge %q", edge)
			}
			data, h, err := samplefile.Read(a.session, args[0])
			if err != nil {
				return err
			}
			i, ok := find(data, start, threshold)
			if !ok {
				return fmt.Errorf("%s: no %s edge through %g", args[0], edge, threshold)
			}
			printTime(cmd.OutOrStdout(), h.XCal(), len(data), float64(i))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&edge, "edge", "leading", "leading, falling or max")
	f.IntVar(&start, "start", 0, "first channel searched")
	f.Float64VarP(&threshold, "threshold", "t", 0, "trigger threshold")
	cobra.CheckErr(cmd.MarkFlagRequired("threshold"))
	return cmd
}
