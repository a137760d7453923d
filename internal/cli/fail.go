package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pavanmanishd/vector"
)

// ErrInjected is returned by element hooks when the configured
// construction is reached.
var ErrInjected = errors.New("injected failure")

// injector numbers fallible constructions and fails the failAt-th.
type injector struct {
	constructions int
	failAt        int // 0 never
}

func (in *injector) construct() error {
	if in == nil {
		return nil
	}
	in.constructions++
	if in.failAt > 0 && in.constructions == in.failAt {
		return fmt.Errorf("%w at construction %d", ErrInjected, in.constructions)
	}
	return nil
}

// item is the state shared by the traced element types. ID 0 marks a
// moved-from or never constructed element.
type item struct {
	ID int
	in *injector
}

func (e *item) id() int { return e.ID }

func (e *item) copyFrom(src *item) error {
	if err := src.in.construct(); err != nil {
		return err
	}
	*e = *src
	return nil
}

func (e *item) moveFrom(src *item, fallible bool) error {
	if fallible {
		if err := src.in.construct(); err != nil {
			return err
		}
	}
	*e = *src
	*src = item{}
	return nil
}

// copyItem has a move that may fail, so the vector relocates it by copying.
type copyItem struct{ item }

func (e *copyItem) CopyFrom(src *copyItem) error { return e.copyFrom(&src.item) }
func (e *copyItem) MoveFrom(src *copyItem) error { return e.moveFrom(&src.item, true) }

// noFailItem declares its move infallible.
type noFailItem struct{ item }

func (e *noFailItem) CopyFrom(src *noFailItem) error { return e.copyFrom(&src.item) }
func (e *noFailItem) MoveFrom(src *noFailItem) error { return e.moveFrom(&src.item, false) }
func (e *noFailItem) MoveNeverFails() {}

// moveOnlyItem cannot be copied and its move may fail.
type moveOnlyItem struct{ item }

func (e *moveOnlyItem) MoveFrom(src *moveOnlyItem) error { return e.moveFrom(&src.item, true) }
func (e *moveOnlyItem) MoveOnly() {}

// FailReport describes the vector around one failing append.
type FailReport struct {
	Policy    Policy
	Before    []int
	After     []int
	Capacity  [2]int // before, after
	Err       error
	Unchanged bool
}

// fail fills a vector with cfg.Count elements under cfg.Policy, then
// appends one more with the cfg.FailAt-th construction of that append
// failing, and reports whether the vector survived it unchanged.
func fail(ctx context.Context, log *slog.Logger, cfg Config) (FailReport, error) {
	switch cfg.Policy {
	case PolicyNoFail:
		return traceFailure(ctx, log, cfg,
			func(id int, in *injector) noFailItem { return noFailItem{item{ID: id, in: in}} },
			func(v *vector.Vector[noFailItem], e noFailItem) error { return v.PushBack(e) },
		)
	case PolicyMoveOnly:
		return traceFailure(ctx, log, cfg,
			func(id int, in *injector) moveOnlyItem { return moveOnlyItem{item{ID: id, in: in}} },
			func(v *vector.Vector[moveOnlyItem], e moveOnlyItem) error { return v.PushBackMove(&e) },
		)
	default:
		return traceFailure(ctx, log, cfg,
			func(id int, in *injector) copyItem { return copyItem{item{ID: id, in: in}} },
			func(v *vector.Vector[copyItem], e copyItem) error { return v.PushBack(e) },
		)
	}
}

func traceFailure[T any, P interface {
	*T
	id() int
}](
	ctx context.Context,
	log *slog.Logger,
	cfg Config,
	mk func(id int, in *injector) T,
	push func(v *vector.Vector[T], e T) error,
) (report FailReport, err error) {
	defer errRecover(&err)

	report.Policy = cfg.Policy
	in := &injector{}
	var v vector.Vector[T]
	defer v.Release()

	if err := v.Reserve(cfg.Reserve); err != nil {
		return report, err
	}
	for i := 1; i <= cfg.Count; i++ {
		if err := push(&v, mk(i, in)); err != nil {
			return report, err
		}
	}

	ids := func() []int {
		out := make([]int, 0, v.Size())
		for _, p := range v.All() {
			out = append(out, P(p).id())
		}
		return out
	}
	report.Before = ids()
	report.Capacity[0] = v.Capacity()

	in.failAt = in.constructions + cfg.FailAt
	if cfg.FailAt == 0 {
		in.failAt = 0
	}
	log.InfoContext(ctx, "appending with failure injected",
		slog.String("policy", string(cfg.Policy)),
		slog.Int("fail_at", cfg.FailAt),
		slog.Any("vector", v.Metrics()),
	)
	report.Err = push(&v, mk(cfg.Count+1, in))

	report.After = ids()
	report.Capacity[1] = v.Capacity()
	report.Unchanged = report.Err != nil &&
		slices.Equal(report.Before, report.After) &&
		report.Capacity[0] == report.Capacity[1]

	switch {
	case report.Err == nil:
		log.WarnContext(ctx, "no failure injected", slog.Int("constructions", in.constructions))
	case report.Unchanged:
		log.InfoContext(ctx, "vector unchanged after failure", slog.Any("error", report.Err))
	default:
		log.WarnContext(ctx, "vector changed after failure",
			slog.Any("error", report.Err),
			slog.Any("before", report.Before),
			slog.Any("after", report.After),
		)
	}
	return report, nil
}
