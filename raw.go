package vector

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/pavanmanishd/vector/internal/assert"
)

// maxAllocBytes is the largest reservation RawMemory will request.
// It matches the heap arena ceiling of 64-bit Go runtimes; on 32-bit
// platforms the runtime refuses smaller requests itself.
const maxAllocBytes = 1 << 47

// ErrOutOfMemory is matched by every allocation failure.
var ErrOutOfMemory = errors.New("vector: out of memory")

// AllocError reports a storage request that could not be satisfied.
type AllocError struct {
	Slots    int     // requested number of element slots
	ElemSize uintptr // size of one slot in bytes
	Cause    error   // recovered runtime failure, if any
}

func (e *AllocError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vector: cannot reserve %d slots of %d bytes: %v", e.Slots, e.ElemSize, e.Cause)
	}
	return fmt.Sprintf("vector: cannot reserve %d slots of %d bytes", e.Slots, e.ElemSize)
}

func (e *AllocError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrOutOfMemory}
	}
	return []error{ErrOutOfMemory, e.Cause}
}

// RawMemory owns a reservation of element slots without tracking which
// of them hold live elements. Slots that are not live hold the zero
// value of T and no lifecycle hook has run on them.
//
// A RawMemory must not be copied; ownership moves with Take or Swap.
type RawMemory[T any] struct {
	buf []T // nil iff the capacity is 0
}

// NewRawMemory reserves exactly capacity slots. A capacity of 0 yields
// the empty block without allocating. Requests that cannot be
// satisfied return an *AllocError; they are never retried.
func NewRawMemory[T any](capacity int) (m RawMemory[T], err error) {
	if capacity == 0 {
		return m, nil
	}
	var zero T
	elemSize := unsafe.Sizeof(zero)
	hi, lo := bits.Mul64(uint64(capacity), uint64(elemSize))
	if capacity < 0 || hi != 0 || lo > maxAllocBytes {
		return m, &AllocError{Slots: capacity, ElemSize: elemSize}
	}
	defer recoverAlloc(&err, capacity, elemSize)
	m.buf = make([]T, capacity)
	return m, nil
}

// recoverAlloc turns a runtime refusal inside make into an *AllocError.
// It must be deferred directly for recover to work.
func recoverAlloc(err *error, capacity int, elemSize uintptr) {
	r := recover()
	if r == nil {
		return
	}
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("recovered from panic: %v", r)
	}
	*err = &AllocError{Slots: capacity, ElemSize: elemSize, Cause: cause}
}

// Capacity returns the number of reserved slots.
func (m *RawMemory[T]) Capacity() int {
	return len(m.buf)
}

// Bytes returns the size of the reservation in bytes.
func (m *RawMemory[T]) Bytes() int {
	var zero T
	return len(m.buf) * int(unsafe.Sizeof(zero))
}

// Slot returns the address of slot i. It does not check that the slot
// holds a live element.
func (m *RawMemory[T]) Slot(i int) *T {
	assert.Assert(i >= 0 && i < len(m.buf), "slot %d out of range [0:%d)", i, len(m.buf))
	return &m.buf[i]
}

// Span returns the slots [from, to). to may address one past the last
// slot.
func (m *RawMemory[T]) Span(from, to int) []T {
	assert.Assert(0 <= from && from <= to && to <= len(m.buf), "span [%d:%d) out of range [0:%d]", from, to, len(m.buf))
	return m.buf[from:to:to]
}

// Swap exchanges the reservations of m and other.
func (m *RawMemory[T]) Swap(other *RawMemory[T]) {
	m.buf, other.buf = other.buf, m.buf
}

// Take moves the reservation out of m, leaving m as the empty block.
func (m *RawMemory[T]) Take() RawMemory[T] {
	var out RawMemory[T]
	out.Swap(m)
	return out
}

// Release drops the reservation without running any element hook.
// Callers destroy live elements first.
func (m *RawMemory[T]) Release() {
	m.buf = nil
}
