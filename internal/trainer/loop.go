package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"digit-softmax/internal/dataset"
	"digit-softmax/internal/metrics"
	"digit-softmax/internal/model"
)

// Fixed hyperparameters of the online SGD run.
const (
	DefaultEpochs       = 5
	DefaultLearningRate = 0.01
)

// EpochSummary is emitted after every completed epoch.
type EpochSummary struct {
	Epoch int
	metrics.Snapshot
}

// Options captures the knobs of the training loop. Zero values fall back to
// the defaults above.
type Options struct {
	Epochs       int
	LearningRate float64
	// OnEpoch observes progress only; it cannot influence training.
	OnEpoch func(EpochSummary)
}

// Train runs online SGD over ds, one example per update, in dataset order,
// for the configured number of epochs. Weights of clf are updated in place.
// ctx is checked between epochs only.
func Train[F dataset.Float](ctx context.Context, clf *model.Classifier[F], ds *dataset.Dataset[F], opts Options) error {
	if clf == nil {
		return errors.New("trainer: classifier is nil")
	}
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultEpochs
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultLearningRate
	}

	var window metrics.Window
	for epoch := 1; epoch <= opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		var stepErr error
		ds.Each(func(i int, ex dataset.Example[F]) bool {
			start := time.Now()
			loss, err := clf.Step(ex.Pixels, ex.Label, opts.LearningRate)
			if err != nil {
				stepErr = fmt.Errorf("trainer: epoch %d example %d: %w", epoch, i, err)
				return false
			}
			window.Record(time.Since(start), loss)
			return true
		})
		if stepErr != nil {
			return stepErr
		}

		summary := EpochSummary{Epoch: epoch, Snapshot: window.Snapshot()}
		log.Printf("epoch=%d completed examples=%d examples_per_sec=%.1f mean_loss=%.4f",
			summary.Epoch,
			summary.Examples,
			summary.ExamplesPerSec,
			summary.MeanLoss,
		)
		if opts.OnEpoch != nil {
			opts.OnEpoch(summary)
		}
	}
	return nil
}
