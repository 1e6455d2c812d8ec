package utils

// FIFO is a bounded first-in first-out queue backed by a ring
// buffer. It never allocates after construction.
type FIFO[T any] struct {
	data []T
	head int

	// Size is the number of entries currently held.
	Size int
}

// NewFIFO returns a FIFO able to hold up to capacity entries.
func NewFIFO[T any](capacity int) *FIFO[T] {
	return &FIFO[T]{data: make([]T, capacity)}
}

// Cap returns the capacity of the FIFO.
func (f *FIFO[T]) Cap() int {
	return len(f.data)
}

// Push appends v to the back of the FIFO. It returns false when the
// FIFO is full, leaving it unchanged.
func (f *FIFO[T]) Push(v T) bool {
	if f.Size == len(f.data) {
		return false
	}
	f.data[(f.head+f.Size)%len(f.data)] = v
	f.Size++
	return true
}

// Pop removes and returns the entry at the front of the FIFO. Popping
// an empty FIFO returns the zero value of T and false.
func (f *FIFO[T]) Pop() (T, bool) {
	var zero T
	if f.Size == 0 {
		return zero, false
	}
	v := f.data[f.head]
	f.data[f.head] = zero
	f.head = (f.head + 1) % len(f.data)
	f.Size--
	return v, true
}

// GetIndex returns the entry i places from the front of the FIFO.
func (f *FIFO[T]) GetIndex(i int) T {
	return f.data[(f.head+i)%len(f.data)]
}

// ReplaceIndex replaces the entry i places from the front of the FIFO.
func (f *FIFO[T]) ReplaceIndex(i int, v T) {
	f.data[(f.head+i)%len(f.data)] = v
}

// Reset empties the FIFO.
func (f *FIFO[T]) Reset() {
	var zero T
	for i := range f.data {
		f.data[i] = zero
	}
	f.head, f.Size = 0, 0
}
