package vector

// Assign makes v a copy of src.
//
// When src does not fit in v's capacity a full copy is built first and
// swapped in, so a failure leaves v untouched. Otherwise the common
// prefix is copy-assigned element by element, then the surplus is
// destroyed or the missing tail copy-constructed; Size() changes only
// once all of that succeeded.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.size > v.data.Capacity() {
		tmp, err := src.Clone()
		if err != nil {
			return err
		}
		v.Swap(tmp)
		v.allocs++
		tmp.Release()
		return nil
	}

	l := lifecycleOf[T]()
	common := min(v.size, src.size)
	if err := l.assignAll(v.data.Span(0, common), src.data.Span(0, common)); err != nil {
		return err
	}
	if src.size < v.size {
		l.destroyAll(v.data.Span(src.size, v.size))
	} else if err := l.copyAll(v.data.Span(v.size, src.size), src.data.Span(v.size, src.size)); err != nil {
		return err
	}
	v.size = src.size
	return nil
}

// MoveAssign destroys the elements of v and takes over those of src
// without touching them. src is left empty and can be reused.
func (v *Vector[T]) MoveAssign(src *Vector[T]) {
	if v == src {
		return
	}
	v.Release()
	v.Swap(src)
}
