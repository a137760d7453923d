package vector

import "github.com/pavanmanishd/vector/internal/assert"

// PushBack appends a copy of value.
func (v *Vector[T]) PushBack(value T) error {
	l := lifecycleOf[T]()
	_, err := v.emplaceBack(l, func(p *T) error {
		return l.copyConstruct(p, &value)
	})
	return err
}

// PushBackMove appends value by moving it; value is left moved-from.
func (v *Vector[T]) PushBackMove(value *T) error {
	l := lifecycleOf[T]()
	_, err := v.emplaceBack(l, func(p *T) error {
		return l.moveConstruct(p, value)
	})
	return err
}

// EmplaceBack appends an element constructed in place by ctor, which
// receives the zeroed slot. A nil ctor default-constructs. It returns
// the address of the new element.
func (v *Vector[T]) EmplaceBack(ctor func(*T) error) (*T, error) {
	l := lifecycleOf[T]()
	if ctor == nil {
		return v.emplaceBack(l, l.construct)
	}
	return v.emplaceBack(l, func(p *T) error {
		return l.build(p, ctor)
	})
}

// emplaceBack constructs the new element straight into slot Size(). If
// the block is full the element is built in its final slot of a larger
// block before any existing element is relocated, so a failing
// construction never touches the current block.
func (v *Vector[T]) emplaceBack(l lifecycle[T], construct func(*T) error) (*T, error) {
	if v.size == v.data.Capacity() {
		if err := v.emplaceGrow(l, v.size, construct); err != nil {
			return nil, err
		}
		return v.data.Slot(v.size - 1), nil
	}
	slot := v.data.Slot(v.size)
	if err := construct(slot); err != nil {
		return nil, err
	}
	v.size++
	return slot, nil
}

// PopBack destroys the last element. v must not be empty; this is only
// checked in debug builds.
func (v *Vector[T]) PopBack() {
	assert.Assert(v.size > 0, "PopBack on empty vector")
	lifecycleOf[T]().destroy(v.data.Slot(v.size - 1))
	v.size--
}
