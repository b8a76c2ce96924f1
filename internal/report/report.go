// Package report prints test images and accuracy to a terminal.
package report

import (
	"bufio"
	"fmt"
	"io"

	"digit-softmax/internal/dataset"
	"digit-softmax/internal/trainer"
)

// Shade maps a normalized pixel to a single ASCII character.
func Shade(v float64) byte {
	switch {
	case v < 0.2:
		return ' '
	case v < 0.4:
		return '.'
	case v < 0.6:
		return '*'
	case v < 0.8:
		return 'O'
	default:
		return '#'
	}
}

// RenderASCII writes pixels as rows of width characters.
func RenderASCII[F dataset.Float](w io.Writer, pixels []F, width int) error {
	if width <= 0 {
		return fmt.Errorf("report: invalid width %d", width)
	}
	bw := bufio.NewWriter(w)
	for start := 0; start < len(pixels); start += width {
		end := min(start+width, len(pixels))
		for _, p := range pixels[start:end] {
			bw.WriteByte(Shade(float64(p)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Printer writes the per-example and summary lines of an evaluation.
type Printer struct {
	W     io.Writer
	Limit int
}

// Example prints image i when it falls within the display limit.
func Example[F dataset.Float](p *Printer, i int, ex dataset.Example[F], predicted int) error {
	if i >= p.Limit {
		return nil
	}
	if _, err := fmt.Fprintf(p.W, "\nTest Image %d:\n", i+1); err != nil {
		return err
	}
	if err := RenderASCII(p.W, ex.Pixels, dataset.ImageWidth); err != nil {
		return err
	}
	verdict := "Incorrect."
	if predicted == ex.Label {
		verdict = "Correct!"
	}
	_, err := fmt.Fprintf(p.W, "Predicted: %d, Actual: %d\n%s\n", predicted, ex.Label, verdict)
	return err
}

// Accuracy prints the overall accuracy with two decimals.
func (p *Printer) Accuracy(res trainer.Result) error {
	_, err := fmt.Fprintf(p.W, "\nOverall Accuracy: %.2f%%\n", res.Accuracy())
	return err
}
