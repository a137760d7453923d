package cli

import (
	"context"
	"log/slog"

	"github.com/pavanmanishd/vector"
)

// grow appends cfg.Count ints, logging every reallocation, and returns
// the final metrics.
func grow(ctx context.Context, log *slog.Logger, cfg Config) (vector.VectorMetrics, error) {
	var v vector.Vector[int]
	defer v.Release()

	if cfg.Reserve > 0 {
		if err := v.Reserve(cfg.Reserve); err != nil {
			return vector.VectorMetrics{}, err
		}
		log.InfoContext(ctx, "reserved", slog.Int("capacity", v.Capacity()))
	}

	for i := 0; i < cfg.Count; i++ {
		if err := ctx.Err(); err != nil {
			return v.Metrics(), err
		}
		prev := v.Capacity()
		if err := v.PushBack(i); err != nil {
			return v.Metrics(), err
		}
		if v.Capacity() != prev {
			log.DebugContext(ctx, "grew",
				slog.Int("old_capacity", prev),
				slog.Int("new_capacity", v.Capacity()),
				slog.Int("size", v.Size()),
				slog.Int("allocations", v.Allocations()),
			)
		}
	}

	m := v.Metrics()
	log.InfoContext(ctx, "appended", slog.Any("vector", m))
	return m, nil
}
