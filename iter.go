package linkstore

// Values is a single-pass, finite iterator over every occurrence of one slot
// name, in discovery order. Its length is fixed at creation and equal to the
// number of sibling slots found under that name; ranging over it exhausts it.
//
// Grounded on the original implementation's Read/TryRead iterator, adapted to
// Go's range-over-func iterator shape (Go 1.23+) rather than a Rust Iterator
// trait impl.
type Values[T Scalar] struct {
	items []T
	err   error
}

// Len reports how many occurrences remain to be yielded.
func (v *Values[T]) Len() int {
	return len(v.items)
}

// Err reports the first decoding error encountered while building the
// iterator, if any. A non-nil Err means fewer than the true sibling count may
// have been yielded.
func (v *Values[T]) Err() error {
	return v.err
}

// All ranges over every remaining decoded value in discovery order,
// consuming each value as it is yielded.
func (v *Values[T]) All() func(func(int, T) bool) {
	return func(yield func(int, T) bool) {
		for i := 0; len(v.items) > 0; i++ {
			item := v.items[0]
			v.items = v.items[1:]
			if !yield(i, item) {
				return
			}
		}
	}
}

// Slice materialises the remaining values as a plain slice, for callers who
// don't want to range incrementally.
func (v *Values[T]) Slice() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

func newValues[T Scalar](slots []*slot) *Values[T] {
	out := &Values[T]{items: make([]T, 0, len(slots))}
	for _, s := range slots {
		v, err := decodeScalar[T](s.currentBytes(), s.littleEndian)
		if err != nil {
			out.err = err
			return out
		}
		out.items = append(out.items, v)
	}
	return out
}
