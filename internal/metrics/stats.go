package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Window accumulates per-example training stats across one epoch.
type Window struct {
	losses  []float64
	compute time.Duration
}

// Record adds one training step to the window.
func (w *Window) Record(computeTime time.Duration, loss float64) {
	w.losses = append(w.losses, loss)
	w.compute += computeTime
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Examples: len(w.losses), Elapsed: w.compute}
	if w.compute > 0 {
		snap.ExamplesPerSec = float64(len(w.losses)) / w.compute.Seconds()
	}
	if len(w.losses) > 0 {
		snap.MeanLoss = stat.Mean(w.losses, nil)
		snap.LastLoss = w.losses[len(w.losses)-1]
	}

	w.losses = w.losses[:0]
	w.compute = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Examples       int
	Elapsed        time.Duration
	ExamplesPerSec float64
	MeanLoss       float64
	LastLoss       float64
}
