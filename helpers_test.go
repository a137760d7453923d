package vector

import (
	"errors"
	"testing"
)

var errInjected = errors.New("injected failure")

// probe counts lifecycle hook calls of the instrumented element types
// and injects failures. Tests using it must not run in parallel.
type probe struct {
	inits, copies, moves   int
	assigns, moveAssigns   int
	destroys, deadDestroys int
	constructions, live    int
	moveAssignCalls        int

	failAt           int  // fail the n-th construction; 0 never
	failMoveAssignAt int  // fail the n-th move assignment; 0 never
	panics           bool // fail by panicking instead of returning
}

var lab probe

func resetLab(t *testing.T) {
	t.Helper()
	lab = probe{}
	t.Cleanup(func() { lab = probe{} })
}

// failNext makes the k-th construction from now fail.
func failNext(k int) {
	lab.failAt = lab.constructions + k
}

func (p *probe) fail() error {
	if p.panics {
		panic(errInjected)
	}
	return errInjected
}

func (p *probe) construct(kind *int) error {
	p.constructions++
	if p.failAt > 0 && p.constructions == p.failAt {
		return p.fail()
	}
	*kind++
	p.live++
	return nil
}

// cell is the state shared by the instrumented element types.
type cell struct {
	val   int
	alive bool
}

func (c *cell) value() int { return c.val }

func (c *cell) initCell() error {
	if err := lab.construct(&lab.inits); err != nil {
		return err
	}
	c.alive = true
	return nil
}

func (c *cell) copyCell(src *cell) error {
	if err := lab.construct(&lab.copies); err != nil {
		return err
	}
	c.val = src.val
	c.alive = true
	return nil
}

func (c *cell) moveCell(src *cell) error {
	if err := lab.construct(&lab.moves); err != nil {
		return err
	}
	c.val = src.val
	c.alive = true
	src.val = 0
	return nil
}

func (c *cell) assignCell(src *cell) error {
	lab.assigns++
	c.val = src.val
	return nil
}

func (c *cell) moveAssignCell(src *cell) error {
	lab.moveAssignCalls++
	if lab.failMoveAssignAt > 0 && lab.moveAssignCalls == lab.failMoveAssignAt {
		return lab.fail()
	}
	lab.moveAssigns++
	c.val = src.val
	src.val = 0
	return nil
}

func (c *cell) destroyCell() {
	if !c.alive {
		lab.deadDestroys++
		return
	}
	lab.destroys++
	lab.live--
	c.alive = false
}

// copyable has a move that may fail, so it relocates by copying.
type copyable struct{ cell }

func (e *copyable) Init() error { return e.initCell() }
func (e *copyable) CopyFrom(src *copyable) error { return e.copyCell(&src.cell) }
func (e *copyable) MoveFrom(src *copyable) error { return e.moveCell(&src.cell) }
func (e *copyable) AssignFrom(src *copyable) error { return e.assignCell(&src.cell) }
func (e *copyable) MoveAssignFrom(src *copyable) error { return e.moveAssignCell(&src.cell) }
func (e *copyable) Destroy() { e.destroyCell() }

// nofail declares its move infallible, so it relocates by moving.
type nofail struct{ cell }

func (e *nofail) Init() error { return e.initCell() }
func (e *nofail) CopyFrom(src *nofail) error { return e.copyCell(&src.cell) }
func (e *nofail) MoveFrom(src *nofail) error { return e.moveCell(&src.cell) }
func (e *nofail) MoveNeverFails() {}
func (e *nofail) AssignFrom(src *nofail) error { return e.assignCell(&src.cell) }
func (e *nofail) MoveAssignFrom(src *nofail) error { return e.moveAssignCell(&src.cell) }
func (e *nofail) Destroy() { e.destroyCell() }

// moveonly cannot be copied, so it relocates by moving.
type moveonly struct{ cell }

func (e *moveonly) Init() error { return e.initCell() }
func (e *moveonly) MoveFrom(src *moveonly) error { return e.moveCell(&src.cell) }
func (e *moveonly) MoveOnly() {}
func (e *moveonly) MoveAssignFrom(src *moveonly) error { return e.moveAssignCell(&src.cell) }
func (e *moveonly) Destroy() { e.destroyCell() }

func valuesOf[T any, P interface {
	*T
	value() int
}](v *Vector[T]) []int {
	out := make([]int, 0, v.Size())
	for _, p := range v.All() {
		out = append(out, P(p).value())
	}
	return out
}

func copyables(vals ...int) *Vector[copyable] {
	v := &Vector[copyable]{}
	for _, val := range vals {
		if err := v.PushBack(copyable{cell{val: val}}); err != nil {
			panic(err)
		}
	}
	return v
}
