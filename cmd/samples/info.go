package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-samples/algorithms/stats"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

func newInfoCmd(a *app) *cobra.Command {
	var withStats bool
	cmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Print the headers of samples files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			headers := []string{"file", "mode", "nx", "x range", "ny", "y range", "norm", "description"}
			if withStats {
				headers = append(headers, "sum", "cog", "median", "peak", "fwhm")
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(borderStyle).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				}).
				Headers(headers...)

			for _, name := range args {
				row, err := a.infoRow(name, withStats)
				if err != nil {
					return err
				}
				t.Row(row...)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&withStats, "stats", false, "read the data and add integral, centre of gravity, median, peak and width (x units)")
	return cmd
}

func (a *app) infoRow(name string, withStats bool) ([]string, error) {
	var (
		h    samplefile.Header
		data []float64
		err  error
	)
	if withStats {
		data, h, err = samplefile.Read(a.session, name)
	} else {
		h, err = samplefile.ReadHeader(a.session, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	row := []string{
		name,
		h.Mode.String(),
		strconv.Itoa(h.Nx),
		fmt.Sprintf("[%g, %g)", h.Xle, h.Xhe),
		strconv.Itoa(h.Ny),
		fmt.Sprintf("[%g, %g)", h.Yle, h.Yhe),
		fmt.Sprintf("%g", h.Norm),
		h.Description,
	}
	if !withStats {
		return row, nil
	}

	n := len(data)
	cal := h.XCal()
	peak := stats.FindMaximum(data, 0, n-1)
	median := "-"
	if m, err := stats.Median(data); err == nil {
		median = fmt.Sprintf("%.7g", cal.Value(n, m))
	}
	return append(row,
		fmt.Sprintf("%.7g", stats.Integrate(data, 0, n-1)),
		fmt.Sprintf("%.7g", cal.Value(n, stats.CenterOfGravity(data, 0, n-1))),
		median,
		fmt.Sprintf("%.7g", cal.Value(n, float64(peak))),
		fmt.Sprintf("%.7g", stats.FWHM(a.session, data, peak)*cal.ChannelWidth(n)),
	), nil
}
