package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/spectral"
	"github.com/RyanBlaney/sonido-samples/algorithms/windowing"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

// frequencyCal returns the calibration of bins spectrum channels of a
// trace with channel width dx transformed over nfft channels. Bin k sits
// at k/(nfft*dx).
func frequencyCal(dx float64, nfft, bins int) common.Calibration {
	df := 1 / (float64(nfft) * dx)
	return common.Calibration{Low: -0.5 * df, High: (float64(bins) - 0.5) * df}
}

// resampledCal is frequencyCal for the nfft/2 bins of a transform that
// were resampled onto another number of channels.
func resampledCal(dx float64, nfft int) common.Calibration {
	return frequencyCal(dx, nfft, nfft/2)
}

func newSpectrumCmd(a *app) *cobra.Command {
	var (
		reference bool
		power     bool
	)
	cmd := &cobra.Command{
		Use:   "spectrum IN OUT",
		Short: "Write the amplitude spectrum of a trace",
		Long: "spectrum windows the trace and writes its single sided amplitude\n" +
			"spectrum over frequency in inverse x units. --order o transforms the\n" +
			"first 2^o channels, order 0 pads the whole trace to a power of two.\n" +
			"With --hop and an order, a spectrogram of frames hop channels apart is\n" +
			"written instead.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := a.cfg.Spectrum
			window, err := sc.WindowType()
			if err != nil {
				return err
			}
			data, h, err := samplefile.Read(a.session, args[0])
			if err != nil {
				return err
			}
			n := len(data)
			dx := h.XCal().ChannelWidth(n)

			if sc.Hop > 0 {
				if sc.Order < 1 {
					return fmt.Errorf("a spectrogram needs --order")
				}
				g, err := spectral.Spectrogram(a.session, data, sc.Order, sc.Hop, window)
				if err != nil {
					return err
				}
				if power {
					if err := eachRow(g, func(row []float64) error {
						spectral.Power(row, row)
						return nil
					}); err != nil {
						return err
					}
				}
				nfft := 1 << sc.Order
				ycal := common.Calibration{Low: h.Xle, High: h.Xle + float64(g.Rows*sc.Hop)*dx}
				return a.write(args[1], g, ycal, frequencyCal(dx, nfft, g.Cols), 0, "spectrogram of "+args[0])
			}

			var (
				amp  []float64
				fcal common.Calibration
			)
			switch {
			case reference:
				buf := make([]float64, n)
				windowing.Apply(window, data, buf)
				amp = spectral.NewReferenceFFT().Amplitudes(buf)
				fcal = frequencyCal(dx, n, len(amp))
			case sc.Order > 0:
				amp, err = spectral.RealFFT(sc.Order, data, window)
				fcal = frequencyCal(dx, 1<<sc.Order, len(amp))
			default:
				amp, err = spectral.RealNFFT(data, window)
				fcal = resampledCal(dx, 1<<common.Log2Ceil(n))
			}
			if err != nil {
				return err
			}
			if power {
				spectral.Power(amp, amp)
			}
			return a.write(args[1], common.RowGrid(amp), common.Calibration{Low: 0, High: 1}, fcal, 0, "spectrum of "+args[0])
		},
	}
	f := cmd.Flags()
	f.String("window", "", "window applied before the transform")
	f.IntP("order", "o", 0, "FFT order")
	f.Int("hop", 0, "spectrogram frame spacing in channels")
	f.BoolVar(&reference, "reference", false, "use the mixed radix reference transform on the whole trace")
	f.BoolVar(&power, "power", false, "write squared amplitudes")
	a.bindFlag(cmd, "window", "spectrum.window")
	a.bindFlag(cmd, "order", "spectrum.order")
	a.bindFlag(cmd, "hop", "spectrum.hop")
	return cmd
}
