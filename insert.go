package vector

import "github.com/pavanmanishd/vector/internal/assert"

// Insert inserts a copy of value before position pos and returns pos.
// pos must be in [0, Size()].
func (v *Vector[T]) Insert(pos int, value T) (int, error) {
	l := lifecycleOf[T]()
	return v.emplace(l, pos, func(p *T) error {
		return l.copyConstruct(p, &value)
	})
}

// InsertMove inserts value before position pos by moving it and
// returns pos. value may point into v.
func (v *Vector[T]) InsertMove(pos int, value *T) (int, error) {
	l := lifecycleOf[T]()
	return v.emplace(l, pos, func(p *T) error {
		return l.moveConstruct(p, value)
	})
}

// Emplace inserts an element constructed by ctor before position pos
// and returns pos. A nil ctor default-constructs.
func (v *Vector[T]) Emplace(pos int, ctor func(*T) error) (int, error) {
	l := lifecycleOf[T]()
	if ctor == nil {
		return v.emplace(l, pos, l.construct)
	}
	return v.emplace(l, pos, func(p *T) error {
		return l.build(p, ctor)
	})
}

func (v *Vector[T]) emplace(l lifecycle[T], pos int, construct func(*T) error) (int, error) {
	assert.Assert(pos >= 0 && pos <= v.size, "insert position %d out of range [0:%d]", pos, v.size)
	var err error
	switch {
	case v.size == v.data.Capacity():
		err = v.emplaceGrow(l, pos, construct)
	case v.size == 0:
		if err = construct(v.data.Slot(0)); err == nil {
			v.size++
		}
	default:
		err = v.emplaceShift(l, pos, construct)
	}
	if err != nil {
		return 0, err
	}
	return pos, nil
}

// emplaceGrow builds the new element at pos of a larger block, then
// relocates the prefix and the suffix around it. Until the new block is
// installed the current one is left untouched by copy relocation.
func (v *Vector[T]) emplaceGrow(l lifecycle[T], pos int, construct func(*T) error) error {
	fresh, err := NewRawMemory[T](v.nextCapacity())
	if err != nil {
		return err
	}
	slot := fresh.Slot(pos)
	if err := construct(slot); err != nil {
		return err
	}

	prefix := 0
	committed := false
	defer func() {
		if !committed {
			l.destroyAll(fresh.Span(0, prefix))
			l.destroy(slot)
		}
	}()
	if err := l.relocateAll(fresh.Span(0, pos), v.data.Span(0, pos)); err != nil {
		return err
	}
	prefix = pos
	if err := l.relocateAll(fresh.Span(pos+1, v.size+1), v.data.Span(pos, v.size)); err != nil {
		return err
	}
	committed = true

	v.adopt(l, &fresh)
	v.size++
	return nil
}

// emplaceShift inserts into a non-empty vector with a free slot. The
// new value is built into a scratch element first, so a failing
// construction leaves v untouched and every slot is constructed before
// anything is assigned to it.
func (v *Vector[T]) emplaceShift(l lifecycle[T], pos int, construct func(*T) error) error {
	var scratch T
	if err := construct(&scratch); err != nil {
		return err
	}
	defer l.destroy(&scratch)

	tail := v.data.Slot(v.size)
	if pos == v.size {
		if err := l.moveConstruct(tail, &scratch); err != nil {
			return err
		}
		v.size++
		return nil
	}
	if err := l.relocate(tail, v.data.Slot(v.size-1)); err != nil {
		return err
	}
	// The tail slot is live from here on; a failing shift keeps it in
	// range so nothing is lost.
	v.size++
	live := v.data.Span(0, v.size)
	if l.plain() {
		copy(live[pos+1:v.size-1], live[pos:v.size-2])
		live[pos] = scratch
		return nil
	}
	for i := v.size - 2; i > pos; i-- {
		if err := l.moveAssign(&live[i], &live[i-1]); err != nil {
			return err
		}
	}
	return l.moveAssign(&live[pos], &scratch)
}

// Erase removes the element at pos, shifting the following elements
// left, and returns pos, which now holds the next element. pos must be
// in [0, Size()); this is only checked in debug builds. If shifting
// fails the error is returned and Size() is unchanged.
func (v *Vector[T]) Erase(pos int) (int, error) {
	assert.Assert(pos >= 0 && pos < v.size, "erase position %d out of range [0:%d)", pos, v.size)
	l := lifecycleOf[T]()
	live := v.data.Span(0, v.size)
	if l.plain() {
		copy(live[pos:], live[pos+1:])
	} else {
		for i := pos; i < v.size-1; i++ {
			if err := l.moveAssign(&live[i], &live[i+1]); err != nil {
				return 0, err
			}
		}
	}
	v.size--
	l.destroy(&live[v.size])
	return pos, nil
}
