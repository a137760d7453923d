package vector

import "errors"

// ErrNotCopyable is returned by copying operations on MoveOnly element
// types.
var ErrNotCopyable = errors.New("vector: element type is move-only")

// Element types opt into fallible lifecycle operations by implementing
// the interfaces below on their pointer type. A failure is a non-nil
// error or a panic; both leave the container consistent and reach the
// caller unchanged.

// Initializer is implemented by element types whose default
// construction can fail. Init runs on a zeroed slot.
type Initializer interface {
	Init() error
}

// Copier is implemented by element types that need a custom copy.
// CopyFrom runs on a zeroed slot and turns it into a copy of src.
type Copier[T any] interface {
	CopyFrom(src *T) error
}

// Mover is implemented by element types that need a custom move.
// MoveFrom runs on a zeroed slot and takes over the state of src,
// leaving src valid but unspecified.
type Mover[T any] interface {
	MoveFrom(src *T) error
}

// NoFailMover marks a Mover whose MoveFrom never fails. Such types are
// relocated by moving.
type NoFailMover interface {
	MoveNeverFails()
}

// MoveOnly marks element types that cannot be copied. Such types are
// relocated by moving regardless of NoFailMover.
type MoveOnly interface {
	MoveOnly()
}

// Assigner is implemented by element types with a custom copy
// assignment. AssignFrom runs on a live element.
type Assigner[T any] interface {
	AssignFrom(src *T) error
}

// MoveAssigner is implemented by element types with a custom move
// assignment. MoveAssignFrom runs on a live element.
type MoveAssigner[T any] interface {
	MoveAssignFrom(src *T) error
}

// Destroyer is implemented by element types that release resources
// when their lifetime ends.
type Destroyer interface {
	Destroy()
}

// lifecycle records which hooks T implements. Without hooks every
// operation is a plain Go assignment and cannot fail.
type lifecycle[T any] struct {
	initializer  bool
	copier       bool
	mover        bool
	noFailMove   bool
	moveOnly     bool
	assigner     bool
	moveAssigner bool
	destroyer    bool
}

func lifecycleOf[T any]() lifecycle[T] {
	var l lifecycle[T]
	p := any((*T)(nil))
	_, l.initializer = p.(Initializer)
	_, l.copier = p.(Copier[T])
	_, l.mover = p.(Mover[T])
	_, l.noFailMove = p.(NoFailMover)
	_, l.moveOnly = p.(MoveOnly)
	_, l.assigner = p.(Assigner[T])
	_, l.moveAssigner = p.(MoveAssigner[T])
	_, l.destroyer = p.(Destroyer)
	return l
}

// plain reports whether T has no hooks at all.
func (l lifecycle[T]) plain() bool {
	return !l.initializer && !l.copier && !l.mover && !l.moveOnly &&
		!l.assigner && !l.moveAssigner && !l.destroyer
}

// relocatesByMove reports whether existing elements move, rather than
// copy, into a new block. Moving is chosen only when it cannot fail or
// when copying is not possible.
func (l lifecycle[T]) relocatesByMove() bool {
	return !l.mover || l.noFailMove || l.moveOnly
}

// relocatesBitwise reports whether relocation transfers elements with a
// plain assignment. The element lives on in its new slot; nothing is
// left to destroy in the old one.
func (l lifecycle[T]) relocatesBitwise() bool {
	return !l.mover
}

// build runs ctor on the zeroed slot dst. If ctor fails the slot is
// zeroed again; no Destroy runs on it.
func (l lifecycle[T]) build(dst *T, ctor func(*T) error) error {
	var zero T
	*dst = zero
	done := false
	defer func() {
		if !done {
			*dst = zero
		}
	}()
	if err := ctor(dst); err != nil {
		return err
	}
	done = true
	return nil
}

// construct default-constructs dst.
func (l lifecycle[T]) construct(dst *T) error {
	if !l.initializer {
		var zero T
		*dst = zero
		return nil
	}
	return l.build(dst, func(p *T) error {
		return any(p).(Initializer).Init()
	})
}

func (l lifecycle[T]) copyConstruct(dst, src *T) error {
	switch {
	case l.moveOnly:
		return ErrNotCopyable
	case !l.copier:
		*dst = *src
		return nil
	}
	return l.build(dst, func(p *T) error {
		return any(p).(Copier[T]).CopyFrom(src)
	})
}

func (l lifecycle[T]) moveConstruct(dst, src *T) error {
	if !l.mover {
		var zero T
		*dst = *src
		*src = zero
		return nil
	}
	return l.build(dst, func(p *T) error {
		return any(p).(Mover[T]).MoveFrom(src)
	})
}

func (l lifecycle[T]) relocate(dst, src *T) error {
	if l.relocatesByMove() {
		return l.moveConstruct(dst, src)
	}
	return l.copyConstruct(dst, src)
}

// copyAssign makes the live element dst a copy of src. Without an
// Assigner the copy is built aside and only replaces dst once it
// succeeded.
func (l lifecycle[T]) copyAssign(dst, src *T) error {
	switch {
	case dst == src:
		return nil
	case l.moveOnly:
		return ErrNotCopyable
	case l.assigner:
		return any(dst).(Assigner[T]).AssignFrom(src)
	case !l.copier && !l.destroyer:
		*dst = *src
		return nil
	}
	var tmp T
	if err := l.copyConstruct(&tmp, src); err != nil {
		return err
	}
	l.destroy(dst)
	*dst = tmp
	return nil
}

// moveAssign transfers src into the live element dst.
func (l lifecycle[T]) moveAssign(dst, src *T) error {
	switch {
	case dst == src:
		return nil
	case l.moveAssigner:
		return any(dst).(MoveAssigner[T]).MoveAssignFrom(src)
	case !l.mover && !l.destroyer:
		var zero T
		*dst = *src
		*src = zero
		return nil
	}
	var tmp T
	if err := l.moveConstruct(&tmp, src); err != nil {
		return err
	}
	l.destroy(dst)
	*dst = tmp
	return nil
}

// destroy ends the lifetime of the element at p and zeroes the slot.
func (l lifecycle[T]) destroy(p *T) {
	if l.destroyer {
		any(p).(Destroyer).Destroy()
	}
	var zero T
	*p = zero
}

func (l lifecycle[T]) destroyAll(s []T) {
	if l.destroyer {
		for i := range s {
			any(&s[i]).(Destroyer).Destroy()
		}
	}
	clear(s)
}

// fill constructs every slot of dst with each. If a construction fails
// the slots already built are destroyed before the failure is returned.
func (l lifecycle[T]) fill(dst []T, each func(i int, p *T) error) (err error) {
	built := 0
	defer func() {
		if built < len(dst) {
			l.destroyAll(dst[:built])
		}
	}()
	for i := range dst {
		if err = each(i, &dst[i]); err != nil {
			return err
		}
		built++
	}
	return nil
}

func (l lifecycle[T]) constructAll(dst []T) error {
	if !l.initializer {
		clear(dst)
		return nil
	}
	return l.fill(dst, func(_ int, p *T) error {
		return l.construct(p)
	})
}

func (l lifecycle[T]) copyAll(dst, src []T) error {
	if !l.copier && !l.moveOnly {
		copy(dst, src)
		return nil
	}
	return l.fill(dst, func(i int, p *T) error {
		return l.copyConstruct(p, &src[i])
	})
}

// relocateAll transfers src into the unconstructed slots dst following
// the relocation policy.
func (l lifecycle[T]) relocateAll(dst, src []T) error {
	if !l.relocatesByMove() {
		return l.copyAll(dst, src)
	}
	if l.relocatesBitwise() {
		copy(dst, src)
		clear(src)
		return nil
	}
	return l.fill(dst, func(i int, p *T) error {
		return l.moveConstruct(p, &src[i])
	})
}

// assignAll copy-assigns src over the live elements dst.
func (l lifecycle[T]) assignAll(dst, src []T) error {
	if l.plain() {
		copy(dst, src)
		return nil
	}
	for i := range dst {
		if err := l.copyAssign(&dst[i], &src[i]); err != nil {
			return err
		}
	}
	return nil
}
