package cli

import (
	"fmt"
)

// PanicError carries a non-error value recovered from a panic.
type PanicError struct {
	Value any
}

func (e PanicError) Error() string {
	return fmt.Sprintf("vectrace: recovered from a panic caused by: %v", e.Value)
}

// errRecover turns a panic raised by an element hook into the error
// returned from a command. It must be deferred directly.
func errRecover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	rerr, ok := r.(error)
	if !ok {
		*err = PanicError{Value: r}
		return
	}
	*err = rerr
}
