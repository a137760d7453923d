package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pavanmanishd/vector"
)

// scenario builds [1 2 3], inserts 9 at 1, erases at 2 and pops the
// back, printing the sequence after each step.
func scenario(ctx context.Context, log *slog.Logger, out io.Writer) ([]int, error) {
	var v vector.Vector[int]
	defer v.Release()

	step := func(name string) {
		fmt.Fprintf(out, "%-12s %v\n", name, v.Slice())
		log.DebugContext(ctx, "step", slog.String("op", name), slog.Any("vector", v.Metrics()))
	}

	for _, x := range []int{1, 2, 3} {
		if err := v.PushBack(x); err != nil {
			return nil, err
		}
		step(fmt.Sprintf("push_back(%d)", x))
	}
	if _, err := v.Insert(1, 9); err != nil {
		return nil, err
	}
	step("insert(1, 9)")
	if _, err := v.Erase(2); err != nil {
		return nil, err
	}
	step("erase(2)")
	v.PopBack()
	step("pop_back")

	return append([]int(nil), v.Slice()...), nil
}
