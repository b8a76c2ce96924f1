package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
)

// ErrPairNotFound indicates a split has no image file or no label file under the root.
var ErrPairNotFound = errors.New("dataset: file pair not found")

// Pair names the two files that make up one split.
type Pair struct {
	Images string
	Labels string
}

var (
	imageFileRegexp = regexp.MustCompile(`^([a-z0-9]+)-images[.-]idx3-ubyte$`)
	labelFileRegexp = regexp.MustCompile(`^([a-z0-9]+)-labels[.-]idx1-ubyte$`)
)

// DiscoverPair locates "<split>-images.idx3-ubyte" and "<split>-labels.idx1-ubyte"
// (either '.' or '-' before idx) beneath root. The lexically first match wins.
func DiscoverPair(root, split string) (Pair, error) {
	var images, labels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if m := imageFileRegexp.FindStringSubmatch(d.Name()); m != nil && m[1] == split {
			images = append(images, path)
		}
		if m := labelFileRegexp.FindStringSubmatch(d.Name()); m != nil && m[1] == split {
			labels = append(labels, path)
		}
		return nil
	})
	if err != nil {
		return Pair{}, fmt.Errorf("discover %s files: %w", split, err)
	}
	if len(images) == 0 || len(labels) == 0 {
		return Pair{}, fmt.Errorf("%w: split=%s root=%s images=%d labels=%d",
			ErrPairNotFound, split, root, len(images), len(labels))
	}
	sort.Strings(images)
	sort.Strings(labels)
	return Pair{Images: images[0], Labels: labels[0]}, nil
}
