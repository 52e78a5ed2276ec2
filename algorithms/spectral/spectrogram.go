package spectral

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/RyanBlaney/sonido-samples/algorithms/common"
	"github.com/RyanBlaney/sonido-samples/algorithms/windowing"
	"github.com/RyanBlaney/sonido-samples/logging"
)

var windows = windowing.NewGenerator()

// Spectrogram slides a window of 2^o channels over in with the given hop
// and stores the RealFFT amplitude spectrum of every frame as one row of
// the returned grid. Frames are transformed concurrently.
func Spectrogram(s *common.Session, in []float64, o, hop int, window windowing.Type) (*common.Grid, error) {
	if o < 1 || o > maxOrder {
		return nil, ErrBadOrder
	}
	if hop <= 0 {
		return nil, fmt.Errorf("hop size must be positive: %d", hop)
	}
	size := 1 << o
	if len(in) < size {
		return nil, fmt.Errorf("%w: %d samples for frames of %d", ErrShortInput, len(in), size)
	}
	w, err := windows.Get(window, size)
	if err != nil {
		return nil, err
	}

	frames := (len(in)-size)/hop + 1
	grid := common.NewGrid(frames, size/2)

	numWorkers := optimalWorkerCount(frames)
	if l := s.Logger(); l.Enabled(logging.DebugLevel) {
		l.Debug("Spectrogram", logging.Fields{"frames": frames, "size": size, "hop": hop, "workers": numWorkers})
	}

	jobs := make(chan int, frames)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse frame buffers for this worker
			re := make([]float64, size)
			im := make([]float64, size)
			for frame := range jobs {
				start := frame * hop
				copy(re, in[start:start+size])
				clear(im)
				if err := w.ApplyInPlace(re); err != nil {
					continue
				}
				FFT(o, re, im)
				row := grid.Row(frame)
				for k := range row {
					row[k] = 2 * math.Hypot(re[k], im[k])
				}
			}
		}()
	}

	for frame := 0; frame < frames; frame++ {
		jobs <- frame
	}
	close(jobs)
	wg.Wait()

	return grid, nil
}

// optimalWorkerCount determines the number of workers based on workload
func optimalWorkerCount(frames int) int {
	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if frames < 100 {
		return max(min(numCPU/2, frames), 1)
	}
	if frames < 1000 {
		return min(numCPU, 8)
	}
	return numCPU
}
