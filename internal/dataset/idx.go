package dataset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	imageHeaderSize = 16
	labelHeaderSize = 8

	imageMagic = 2051
	labelMagic = 2049
)

var (
	// ErrFileOpen indicates the image or label file could not be opened.
	ErrFileOpen = errors.New("dataset: cannot open file")
	// ErrTruncated indicates a header or record was shorter than required.
	ErrTruncated = errors.New("dataset: truncated data")
	// ErrHeaderMismatch is only returned when header validation is enabled.
	ErrHeaderMismatch = errors.New("dataset: header mismatch")
)

type loadOptions struct {
	validateHeaders bool
}

// Option tunes Load.
type Option func(*loadOptions)

// WithHeaderValidation checks the magic numbers, declared count and declared
// 28x28 geometry in both headers. Without it the headers are skipped unread.
func WithHeaderValidation() Option {
	return func(o *loadOptions) { o.validateHeaders = true }
}

// Load reads n examples from an image/label file pair. Pixels are scaled to
// [0,1] by dividing by 255. Any short read aborts the load; no partial
// dataset is returned.
func Load[F Float](imagePath, labelPath string, n int, opts ...Option) (*Dataset[F], error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	if n < 0 {
		return nil, fmt.Errorf("dataset: negative example count %d", n)
	}

	imageFile, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer imageFile.Close()

	labelFile, err := os.Open(labelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpen, err)
	}
	defer labelFile.Close()

	images := bufio.NewReader(imageFile)
	labels := bufio.NewReader(labelFile)

	imageHeader := make([]byte, imageHeaderSize)
	if err := readFull(images, imageHeader); err != nil {
		return nil, fmt.Errorf("%s: image header: %w", imagePath, err)
	}
	labelHeader := make([]byte, labelHeaderSize)
	if err := readFull(labels, labelHeader); err != nil {
		return nil, fmt.Errorf("%s: label header: %w", labelPath, err)
	}
	if o.validateHeaders {
		if err := checkImageHeader(imageHeader, n); err != nil {
			return nil, fmt.Errorf("%s: %w", imagePath, err)
		}
		if err := checkLabelHeader(labelHeader, n); err != nil {
			return nil, fmt.Errorf("%s: %w", labelPath, err)
		}
	}

	examples := make([]Example[F], n)
	record := make([]byte, ImageSize)
	var label [1]byte
	for i := range examples {
		if err := readFull(images, record); err != nil {
			return nil, fmt.Errorf("%s: image %d: %w", imagePath, i, err)
		}
		pixels := make([]F, ImageSize)
		for j, b := range record {
			pixels[j] = F(Normalize(b))
		}
		if err := readFull(labels, label[:]); err != nil {
			return nil, fmt.Errorf("%s: label %d: %w", labelPath, i, err)
		}
		examples[i] = Example[F]{Pixels: pixels, Label: int(label[0])}
	}
	return New(examples), nil
}

// Normalize maps a raw pixel byte into [0,1].
func Normalize(b byte) float64 {
	return float64(b) / 255.0
}

func readFull(r io.Reader, buf []byte) error {
	got, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrTruncated, len(buf), got)
	default:
		return err
	}
}

func checkImageHeader(h []byte, n int) error {
	magic := binary.BigEndian.Uint32(h[0:4])
	count := binary.BigEndian.Uint32(h[4:8])
	rows := binary.BigEndian.Uint32(h[8:12])
	cols := binary.BigEndian.Uint32(h[12:16])
	if magic != imageMagic {
		return fmt.Errorf("%w: image magic %d, want %d", ErrHeaderMismatch, magic, imageMagic)
	}
	if int64(count) < int64(n) {
		return fmt.Errorf("%w: header declares %d images, want at least %d", ErrHeaderMismatch, count, n)
	}
	if rows != ImageHeight || cols != ImageWidth {
		return fmt.Errorf("%w: image dims %dx%d, want %dx%d", ErrHeaderMismatch, rows, cols, ImageHeight, ImageWidth)
	}
	return nil
}

func checkLabelHeader(h []byte, n int) error {
	magic := binary.BigEndian.Uint32(h[0:4])
	count := binary.BigEndian.Uint32(h[4:8])
	if magic != labelMagic {
		return fmt.Errorf("%w: label magic %d, want %d", ErrHeaderMismatch, magic, labelMagic)
	}
	if int64(count) < int64(n) {
		return fmt.Errorf("%w: header declares %d labels, want at least %d", ErrHeaderMismatch, count, n)
	}
	return nil
}
