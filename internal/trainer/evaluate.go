package trainer

import (
	"fmt"

	"digit-softmax/internal/dataset"
	"digit-softmax/internal/model"
)

// Result is the outcome of evaluating a classifier over a dataset.
type Result struct {
	Correct int
	Total   int
}

// Accuracy returns Correct/Total as a percentage.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}

// Evaluate predicts every example of ds in order and counts matches. When
// observe is non-nil it is called with each prediction.
func Evaluate[F dataset.Float](clf *model.Classifier[F], ds *dataset.Dataset[F], observe func(i int, ex dataset.Example[F], predicted int)) (Result, error) {
	res := Result{Total: ds.Len()}
	var predictErr error
	ds.Each(func(i int, ex dataset.Example[F]) bool {
		predicted, err := clf.Predict(ex.Pixels)
		if err != nil {
			predictErr = fmt.Errorf("evaluate example %d: %w", i, err)
			return false
		}
		if predicted == ex.Label {
			res.Correct++
		}
		if observe != nil {
			observe(i, ex, predicted)
		}
		return true
	})
	if predictErr != nil {
		return Result{}, predictErr
	}
	return res, nil
}
