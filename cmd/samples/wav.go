package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-samples/export"
	"github.com/RyanBlaney/sonido-samples/logging"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

func newWAVCmd(a *app) *cobra.Command {
	var (
		rate int
		peak float64
	)
	cmd := &cobra.Command{
		Use:   "wav IN OUT.wav",
		Short: "Export a trace as 16-bit mono WAV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			data, _, err := samplefile.Read(a.session, args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			if err := export.WriteWAV(f, data, rate, peak); err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			a.session.Log("wav").Info("wav saved", logging.Fields{"file": args[1], "samples": len(data), "rate": rate})
			return nil
		},
	}
	cmd.Flags().IntVarP(&rate, "rate", "r", 44100, "sample rate in Hz")
	cmd.Flags().Float64Var(&peak, "peak", 0, "value mapped to full scale, 0 uses the largest magnitude")
	return cmd
}
