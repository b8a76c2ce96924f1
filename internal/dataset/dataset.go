package dataset

// Image geometry assumed by the loader.
const (
	ImageWidth  = 28
	ImageHeight = 28
	ImageSize   = ImageWidth * ImageHeight
)

// Float is the pixel storage precision. float32 halves the memory of a
// loaded set at the cost of numeric fidelity.
type Float interface {
	~float32 | ~float64
}

// Example is one normalized image and its label.
type Example[F Float] struct {
	Pixels []F
	Label  int
}

// Dataset is an ordered, read-only collection of examples.
type Dataset[F Float] struct {
	examples []Example[F]
}

// New wraps examples without copying. The caller must not mutate them afterwards.
func New[F Float](examples []Example[F]) *Dataset[F] {
	return &Dataset[F]{examples: examples}
}

// Len returns the number of examples.
func (d *Dataset[F]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.examples)
}

// At returns the i-th example in file order.
func (d *Dataset[F]) At(i int) Example[F] {
	return d.examples[i]
}

// Each calls fn for every example in file order until fn returns false.
func (d *Dataset[F]) Each(fn func(i int, ex Example[F]) bool) {
	if d == nil {
		return
	}
	for i, ex := range d.examples {
		if !fn(i, ex) {
			return
		}
	}
}
