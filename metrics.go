package vector

import (
	"log/slog"
	"unsafe"
)

// ElemSize returns the size in bytes of one slot.
func (v *Vector[T]) ElemSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// BytesInUse returns the number of bytes held by live elements.
func (v *Vector[T]) BytesInUse() int {
	return v.size * v.ElemSize()
}

// BytesReserved returns the size in bytes of the storage block.
func (v *Vector[T]) BytesReserved() int {
	return v.data.Bytes()
}

// Utilization returns the ratio of live elements to reserved slots
// (0.0 to 1.0). Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	capacity := v.data.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(v.size) / float64(capacity)
}

// Allocations returns the number of storage blocks this vector has
// allocated.
func (v *Vector[T]) Allocations() int {
	return v.allocs
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics {
	return VectorMetrics{
		Size:          v.size,
		Capacity:      v.data.Capacity(),
		ElemSize:      v.ElemSize(),
		BytesInUse:    v.BytesInUse(),
		BytesReserved: v.BytesReserved(),
		Allocations:   v.allocs,
		Utilization:   v.Utilization(),
	}
}

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Size          int     // Live elements
	Capacity      int     // Reserved slots
	ElemSize      int     // Bytes per slot
	BytesInUse    int     // Bytes held by live elements
	BytesReserved int     // Bytes held by the storage block
	Allocations   int     // Storage blocks allocated so far
	Utilization   float64 // Ratio of live elements to slots (0.0-1.0)
}

// LogValue implements slog.LogValuer.
func (m VectorMetrics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("size", m.Size),
		slog.Int("capacity", m.Capacity),
		slog.Int("elem_size", m.ElemSize),
		slog.Int("bytes_in_use", m.BytesInUse),
		slog.Int("bytes_reserved", m.BytesReserved),
		slog.Int("allocations", m.Allocations),
		slog.Float64("utilization", m.Utilization),
	)
}
