package rowcast

// transform.go provides post-assembly bulk transforms over a Table's rows.
//
// Once the header is resolved, rows are independent, so map and filter fan
// out across a bounded worker pool. The contract is two-phase: the
// transform phase is order-agnostic (results land in completion order),
// and consumption goes through an explicit materialize-with-comparator
// step. Callers cannot accidentally depend on incidental ordering because
// no ordered view exists until they supply a comparator.

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Bulk is the unordered result of a parallel transform. Its element order
// is whatever completion order the workers produced and may differ between
// runs.
type Bulk[T any] struct {
	items []T
}

// Len returns the number of items.
func (b *Bulk[T]) Len() int { return len(b.items) }

// Items returns a copy of the items in their incidental order. Prefer
// Materialize when downstream code consumes the order.
func (b *Bulk[T]) Items() []T {
	return append([]T(nil), b.items...)
}

// Materialize eagerly sorts a copy of the items with the comparator and
// returns the stable ordered slice. Sorting is always materialize-then-sort,
// never streaming.
func (b *Bulk[T]) Materialize(cmp func(a, b T) int) []T {
	out := append([]T(nil), b.items...)
	slices.SortStableFunc(out, cmp)
	return out
}

// MapRows applies fn to every row of t using up to workers goroutines
// (GOMAXPROCS when workers <= 0). The first error cancels the remaining
// work and is returned.
func MapRows[T, U any](ctx context.Context, t *Table[T], workers int, fn func(context.Context, T) (U, error)) (*Bulk[U], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	out := make(chan U, t.Len())

	for _, row := range t.rows {
		g.Go(func() error {
			v, err := fn(ctx, row)
			if err != nil {
				return err
			}
			out <- v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)

	items := make([]U, 0, t.Len())
	for v := range out {
		items = append(items, v)
	}
	return &Bulk[U]{items: items}, nil
}

// FilterRows keeps the rows for which pred reports true, fanning out like
// MapRows.
func FilterRows[T any](ctx context.Context, t *Table[T], workers int, pred func(context.Context, T) (bool, error)) (*Bulk[T], error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	out := make(chan T, t.Len())

	for _, row := range t.rows {
		g.Go(func() error {
			keep, err := pred(ctx, row)
			if err != nil {
				return err
			}
			if keep {
				out <- row
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)

	items := make([]T, 0, len(out))
	for v := range out {
		items = append(items, v)
	}
	return &Bulk[T]{items: items}, nil
}
