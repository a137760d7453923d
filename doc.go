// Package vector implements a generic dynamic array for Go.
//
// # Overview
//
// A Vector keeps its elements in one contiguous storage block. The block
// (RawMemory) only reserves slots; the Vector decides which slots hold
// live elements. Growth allocates a new block, fills it, and only then
// discards the old one, so operations can recover from failures without
// corrupting existing elements.
//
// # Basic Usage
//
//	var v vector.Vector[int] // the zero value is ready to use
//	defer v.Release()
//
//	v.PushBack(1)
//	v.PushBack(2)
//	v.Insert(1, 9) // [1 9 2]
//	v.Erase(0)     // [9 2]
//
//	for i, p := range v.All() {
//		fmt.Println(i, *p)
//	}
//
// # Element Lifecycles
//
// Plain Go types need nothing: copies and moves are assignments and can
// never fail. Types that own resources, or whose construction can fail,
// implement hooks on their pointer type:
//
//   - Initializer: fallible default construction
//   - Copier, Assigner: fallible copy construction and copy assignment
//   - Mover, MoveAssigner: fallible move construction and move assignment
//   - Destroyer: end-of-lifetime cleanup
//   - NoFailMover, MoveOnly: markers that steer relocation
//
// A failing hook returns an error (or panics). The error is returned
// unchanged by the Vector method that called the hook, after any
// partially built state has been destroyed.
//
// # Relocation
//
// When the block is full the existing elements are moved into the new
// block if moving cannot fail (no Mover, or a NoFailMover) or if the
// type is MoveOnly. Otherwise they are copied, which leaves the
// originals intact should a copy fail. Capacity grows 1, 2, 4, 8, ...
//
// Elements of a type without a Mover are relocated by assignment and
// live on in their new slot. A moved-from element otherwise stays live
// until it is destroyed, so Destroy must accept the zero value, which is
// what the default move leaves behind.
//
// # Failure Guarantees
//
//   - Reserve, PushBack, EmplaceBack and growth-triggering inserts: if a
//     copy relocation or the new element fails, the vector is unchanged
//   - Resize: on failure the new elements are destroyed and Size() is
//     unchanged
//   - Insert into a vector with spare capacity: if the new element or
//     the copy of the last element fails, the vector is unchanged
//   - Assign: copy-and-swap when the source does not fit
//   - Swap, Move, MoveAssign, PopBack, Clear, Release: cannot fail
//
// # Important Notes
//
//   - Not goroutine-safe
//   - At, Back, PopBack and Erase check their preconditions only in
//     debug builds; build with -tags release to drop the checks
//   - Pointers and slices into the vector are invalidated by growth
//   - Allocation failures match ErrOutOfMemory
//
// # Metrics
//
// The vector reports its storage usage:
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Blocks allocated: %d\n", m.Allocations)
package vector
