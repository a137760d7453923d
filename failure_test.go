package vector

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelocationPolicy(t *testing.T) {
	t.Run("will copy", func(t *testing.T) {
		t.Run("if the move may fail and the type is copyable", func(t *testing.T) {
			resetLab(t)
			v := copyables(1, 2, 3, 4, 5)

			// 5 appends plus 1+2+4 relocated elements
			assert.Equal(t, 12, lab.copies)
			assert.Equal(t, 0, lab.moves)

			require.NoError(t, v.Reserve(20))
			assert.Equal(t, 17, lab.copies)
			assert.Equal(t, 0, lab.moves)

			v.Release()
			assert.Equal(t, 0, lab.live)
			assert.Equal(t, 0, lab.deadDestroys)
		})
	})

	t.Run("will move", func(t *testing.T) {
		t.Run("if the move is declared infallible", func(t *testing.T) {
			resetLab(t)
			v := &Vector[nofail]{}
			for i := 1; i <= 5; i++ {
				require.NoError(t, v.PushBack(nofail{cell{val: i}}))
			}

			assert.Equal(t, 5, lab.copies)
			assert.Equal(t, 7, lab.moves)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, valuesOf(v))

			v.Release()
			assert.Equal(t, 0, lab.live)
			assert.Equal(t, 0, lab.deadDestroys)
		})

		t.Run("if the type is move-only", func(t *testing.T) {
			resetLab(t)
			v := &Vector[moveonly]{}
			for i := 1; i <= 5; i++ {
				require.NoError(t, v.PushBackMove(&moveonly{cell{val: i}}))
			}

			assert.Equal(t, 0, lab.copies)
			assert.Equal(t, 12, lab.moves)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, valuesOf(v))

			v.Release()
			assert.Equal(t, 0, lab.live)
			assert.Equal(t, 0, lab.deadDestroys)
		})

		t.Run("if the type has no hooks", func(t *testing.T) {
			backing := []int{7}
			v := &Vector[[]int]{}
			require.NoError(t, v.PushBack(backing))
			require.NoError(t, v.PushBack([]int{1}))
			require.NoError(t, v.PushBack([]int{2}))
			first := v.At(0)
			require.NoError(t, v.Reserve(10))

			// Relocated slice headers still share their backing arrays.
			backing[0] = 42
			assert.Equal(t, 42, (*v.At(0))[0])
			assert.Nil(t, *first, "old slot is zeroed after relocation")
		})
	})
}

func TestMoveOnlyCopy(t *testing.T) {
	resetLab(t)
	v := &Vector[moveonly]{}
	require.NoError(t, v.PushBackMove(&moveonly{cell{val: 1}}))

	err := v.PushBack(moveonly{cell{val: 2}})
	assert.ErrorIs(t, err, ErrNotCopyable)
	assert.Equal(t, 1, v.Size())

	_, err = v.Clone()
	assert.ErrorIs(t, err, ErrNotCopyable)

	_, err = v.Insert(0, moveonly{cell{val: 3}})
	assert.ErrorIs(t, err, ErrNotCopyable)
	assert.Equal(t, []int{1}, valuesOf(v))

	v.Release()
	assert.Equal(t, 0, lab.live)
}

// snapshot captures the observable state of a vector.
type snapshot struct {
	size, capacity, allocs int
	values                 []int
}

func snapshotOf(v *Vector[copyable]) snapshot {
	return snapshot{
		size:     v.Size(),
		capacity: v.Capacity(),
		allocs:   v.Allocations(),
		values:   valuesOf(v),
	}
}

func TestStrongGuaranteeOnGrowth(t *testing.T) {
	ops := []struct {
		name string
		run  func(v *Vector[copyable]) error
	}{
		{"PushBack", func(v *Vector[copyable]) error {
			return v.PushBack(copyable{cell{val: 99}})
		}},
		{"PushBackMove", func(v *Vector[copyable]) error {
			return v.PushBackMove(&copyable{cell{val: 99}})
		}},
		{"EmplaceBack", func(v *Vector[copyable]) error {
			_, err := v.EmplaceBack(nil)
			return err
		}},
		{"InsertFront", func(v *Vector[copyable]) error {
			_, err := v.Insert(0, copyable{cell{val: 99}})
			return err
		}},
		{"InsertMiddle", func(v *Vector[copyable]) error {
			_, err := v.Insert(2, copyable{cell{val: 99}})
			return err
		}},
		{"InsertEnd", func(v *Vector[copyable]) error {
			_, err := v.Insert(4, copyable{cell{val: 99}})
			return err
		}},
		{"Reserve", func(v *Vector[copyable]) error {
			return v.Reserve(16)
		}},
	}

	for _, panics := range []bool{false, true} {
		for _, op := range ops {
			// One construction for the new element, four relocations.
			for k := 1; k <= 5; k++ {
				if op.name == "Reserve" && k == 5 {
					continue
				}
				resetLab(t)
				v := copyables(1, 2, 3, 4)
				before := snapshotOf(v)
				lab.panics = panics
				failNext(k)

				if panics {
					assert.PanicsWithError(t, errInjected.Error(), func() {
						_ = op.run(v)
					}, "%s k=%d", op.name, k)
				} else {
					assert.ErrorIs(t, op.run(v), errInjected, "%s k=%d", op.name, k)
				}

				assert.Equal(t, before, snapshotOf(v), "%s k=%d panics=%v", op.name, k, panics)
				assert.Equal(t, 4, lab.live, "%s k=%d panics=%v", op.name, k, panics)

				lab.failAt = 0
				v.Release()
				assert.Equal(t, 0, lab.live, "%s k=%d panics=%v", op.name, k, panics)
				assert.Equal(t, 0, lab.deadDestroys, "%s k=%d panics=%v", op.name, k, panics)
			}
		}
	}
}

func TestInsertFailureWithSpareCapacity(t *testing.T) {
	t.Run("will leave the vector unchanged", func(t *testing.T) {
		t.Run("if building the new value fails", func(t *testing.T) {
			resetLab(t)
			v := copyables(1, 2, 3)
			before := snapshotOf(v)
			failNext(1)

			_, err := v.Insert(1, copyable{cell{val: 9}})
			require.ErrorIs(t, err, errInjected)

			assert.Equal(t, before, snapshotOf(v))
			assert.Equal(t, copyable{}, *v.data.Slot(3))
			assert.Equal(t, 3, lab.live)
		})

		t.Run("if the emplace constructor fails", func(t *testing.T) {
			resetLab(t)
			v := copyables(1, 2, 3)
			before := snapshotOf(v)

			_, err := v.Emplace(0, func(p *copyable) error {
				p.val = 7
				return errInjected
			})
			require.ErrorIs(t, err, errInjected)

			assert.Equal(t, before, snapshotOf(v))
			assert.Equal(t, copyable{}, *v.data.Slot(3))
		})

		t.Run("if constructing the new last slot fails", func(t *testing.T) {
			resetLab(t)
			v := copyables(1, 2, 3)
			before := snapshotOf(v)
			// The scratch value is built first, then the last element is
			// copied into the free slot.
			failNext(2)

			_, err := v.Insert(0, copyable{cell{val: 9}})
			require.ErrorIs(t, err, errInjected)

			assert.Equal(t, before, snapshotOf(v))
			assert.Equal(t, copyable{}, *v.data.Slot(3))
			assert.Equal(t, 3, lab.live, "scratch value destroyed")
			assert.Equal(t, 0, lab.deadDestroys)
		})

		t.Run("if the vector is empty", func(t *testing.T) {
			resetLab(t)
			v := &Vector[copyable]{}
			require.NoError(t, v.Reserve(2))
			failNext(1)

			_, err := v.Insert(0, copyable{cell{val: 9}})
			require.ErrorIs(t, err, errInjected)

			assert.Equal(t, 0, v.Size())
			assert.Equal(t, 2, v.Capacity())
			assert.Equal(t, copyable{}, *v.data.Slot(0))
			assert.Equal(t, 0, lab.live)
		})

		t.Run("if the constructor panics", func(t *testing.T) {
			resetLab(t)
			v := copyables(1, 2, 3)
			before := snapshotOf(v)
			lab.panics = true
			failNext(1)

			assert.PanicsWithError(t, errInjected.Error(), func() {
				_, _ = v.Insert(1, copyable{cell{val: 9}})
			})

			assert.Equal(t, before, snapshotOf(v))
			assert.Equal(t, 3, lab.live)
		})
	})

	t.Run("will keep every element alive", func(t *testing.T) {
		t.Run("if shifting fails", func(t *testing.T) {
			resetLab(t)
			v := copyables(1, 2, 3)
			lab.failMoveAssignAt = 1

			_, err := v.Insert(0, copyable{cell{val: 9}})
			require.ErrorIs(t, err, errInjected)

			assert.Equal(t, 4, v.Size())
			assert.Equal(t, 4, lab.live)

			v.Release()
			assert.Equal(t, 0, lab.live)
			assert.Equal(t, 0, lab.deadDestroys)
		})
	})
}

func TestEraseFailure(t *testing.T) {
	resetLab(t)
	v := copyables(1, 2, 3)
	lab.failMoveAssignAt = lab.moveAssignCalls + 1

	_, err := v.Erase(0)
	require.ErrorIs(t, err, errInjected)
	assert.Equal(t, 3, v.Size())
	assert.Equal(t, []int{1, 2, 3}, valuesOf(v))

	v.Release()
	assert.Equal(t, 0, lab.live)
}

// TestLifetimes drives random operations against a slice model and
// checks that every constructed element is destroyed exactly once.
func TestLifetimes(t *testing.T) {
	resetLab(t)
	rng := rand.New(rand.NewSource(7))
	v := &Vector[copyable]{}
	var model []int

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(7); {
		case op == 0 || op == 1:
			x := rng.Intn(1000)
			require.NoError(t, v.PushBack(copyable{cell{val: x}}))
			model = append(model, x)
		case op == 2:
			x := rng.Intn(1000)
			pos := rng.Intn(len(model) + 1)
			got, err := v.Insert(pos, copyable{cell{val: x}})
			require.NoError(t, err)
			require.Equal(t, pos, got)
			model = slices.Insert(model, pos, x)
		case op == 3 && len(model) > 0:
			pos := rng.Intn(len(model))
			_, err := v.Erase(pos)
			require.NoError(t, err)
			model = slices.Delete(model, pos, pos+1)
		case op == 4 && len(model) > 0:
			v.PopBack()
			model = model[:len(model)-1]
		case op == 5:
			n := rng.Intn(len(model) + 3)
			require.NoError(t, v.Resize(n))
			for len(model) < n {
				model = append(model, 0)
			}
			model = model[:n]
		case op == 6:
			require.NoError(t, v.Reserve(rng.Intn(64)))
		}
		require.Equal(t, len(model), v.Size(), "step %d", step)
		require.Equal(t, len(model), lab.live, "step %d", step)
		require.LessOrEqual(t, v.Size(), v.Capacity())
	}

	if len(model) == 0 {
		require.Empty(t, valuesOf(v))
	} else {
		require.Equal(t, model, valuesOf(v))
	}
	v.Release()
	assert.Equal(t, 0, lab.live)
	assert.Equal(t, 0, lab.deadDestroys)
}
