// Package vector implements a contiguous, growable array that keeps raw
// storage reservation apart from element lifetimes.
// Typical usage: declare a Vector[T], append and insert elements, and
// Release it when done so element Destroy hooks run deterministically.
package vector

import (
	"iter"

	"github.com/pavanmanishd/vector/internal/assert"
)

// Vector is a dynamic array of T. The zero value is an empty vector
// ready to use. Not goroutine-safe.
//
// Slots [0, Size()) hold live elements; slots [Size(), Capacity()) are
// reserved and hold zero values.
type Vector[T any] struct {
	data   RawMemory[T]
	size   int
	allocs int // blocks allocated by this vector
}

// New returns a vector holding size default-constructed elements, with
// Capacity() == size.
func New[T any](size int) (*Vector[T], error) {
	v := &Vector[T]{}
	if size == 0 {
		return v, nil
	}
	data, err := NewRawMemory[T](size)
	if err != nil {
		return nil, err
	}
	if err := lifecycleOf[T]().constructAll(data.Span(0, size)); err != nil {
		return nil, err
	}
	v.data = data.Take()
	v.size = size
	v.allocs = 1
	return v, nil
}

// Clone returns a copy of v holding its own storage, with
// Capacity() == v.Size().
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := &Vector[T]{}
	if v.size == 0 {
		return out, nil
	}
	data, err := NewRawMemory[T](v.size)
	if err != nil {
		return nil, err
	}
	if err := lifecycleOf[T]().copyAll(data.Span(0, v.size), v.data.Span(0, v.size)); err != nil {
		return nil, err
	}
	out.data = data.Take()
	out.size = v.size
	out.allocs = 1
	return out, nil
}

// Move returns a vector that took over the elements of v. v is left
// empty and can be reused.
func (v *Vector[T]) Move() *Vector[T] {
	out := &Vector[T]{}
	out.Swap(v)
	return out
}

// Size returns the number of live elements.
func (v *Vector[T]) Size() int {
	return v.size
}

// Capacity returns the number of reserved slots.
func (v *Vector[T]) Capacity() int {
	return v.data.Capacity()
}

// Empty reports whether v holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// At returns a pointer to element i. i must be in [0, Size()); this is
// only checked in debug builds.
func (v *Vector[T]) At(i int) *T {
	assert.Assert(i >= 0 && i < v.size, "index %d out of range [0:%d)", i, v.size)
	return v.data.Slot(i)
}

// Back returns a pointer to the last element. v must not be empty.
func (v *Vector[T]) Back() *T {
	assert.Assert(v.size > 0, "Back on empty vector")
	return v.data.Slot(v.size - 1)
}

// Slice returns the live elements. The slice aliases the vector's
// storage and is invalidated by any operation that changes the size or
// capacity.
func (v *Vector[T]) Slice() []T {
	return v.data.Span(0, v.size)
}

// All returns an iterator over the index and address of each element.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data.Slot(i)) {
				return
			}
		}
	}
}

// Backward is like All but runs from the last element to the first.
func (v *Vector[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, v.data.Slot(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over copies of the elements.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.data.Slot(i)) {
				return
			}
		}
	}
}

// Reserve makes room for at least n elements. If relocating the
// existing elements fails, v is left exactly as it was.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.data.Capacity() {
		return nil
	}
	fresh, err := NewRawMemory[T](n)
	if err != nil {
		return err
	}
	l := lifecycleOf[T]()
	if err := l.relocateAll(fresh.Span(0, v.size), v.data.Span(0, v.size)); err != nil {
		fresh.Release()
		return err
	}
	v.adopt(l, &fresh)
	return nil
}

// Resize changes the number of elements to n. Surplus elements are
// destroyed; missing ones are default-constructed. If a construction
// fails the new elements are destroyed and Size() is unchanged.
func (v *Vector[T]) Resize(n int) error {
	assert.Assert(n >= 0, "negative size %d", n)
	l := lifecycleOf[T]()
	if n <= v.size {
		l.destroyAll(v.data.Span(n, v.size))
		v.size = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	if err := l.constructAll(v.data.Span(v.size, n)); err != nil {
		return err
	}
	v.size = n
	return nil
}

// Clear destroys every element. The capacity is kept.
func (v *Vector[T]) Clear() {
	lifecycleOf[T]().destroyAll(v.data.Span(0, v.size))
	v.size = 0
}

// Release destroys every element and drops the storage. v is left
// empty and can be reused.
func (v *Vector[T]) Release() {
	v.Clear()
	v.data.Release()
}

// Swap exchanges the contents of v and other.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
}

// nextCapacity returns the capacity of the block that replaces a full
// one.
func (v *Vector[T]) nextCapacity() int {
	if c := v.data.Capacity(); c > 0 {
		return c * 2
	}
	return 1
}

// adopt installs fresh, whose slots [0, Size()) are already populated,
// and discards what is left of the previous block. Elements relocated
// without a Mover left only zero values behind and are not destroyed.
func (v *Vector[T]) adopt(l lifecycle[T], fresh *RawMemory[T]) {
	v.data.Swap(fresh)
	if !l.relocatesBitwise() {
		l.destroyAll(fresh.Span(0, v.size))
	}
	fresh.Release()
	v.allocs++
}
