package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// errNoResult marks a fetch that returned no result collection at all.
var errNoResult = errors.New("store returned no result")

// fetchPage runs the count and the fetch of one page concurrently and waits
// for both. A failure of either does not cancel the other.
func fetchPage[T any](
	ctx context.Context,
	count func(ctx context.Context) (int64, error),
	find func(ctx context.Context) ([]T, error),
) ([]T, int, error) {
	var (
		total int64
		items []T
		g     errgroup.Group
	)

	g.Go(func() error {
		n, err := count(ctx)
		total = n
		return err
	})
	g.Go(func() error {
		found, err := find(ctx)
		items = found
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		return nil, 0, errNoResult
	}

	return items, TotalPages(total), nil
}

// degradeToEmpty is the read failure policy of the listing use cases: a
// store failure or an absent result becomes zero pages and an empty list,
// so callers cannot tell "no data" from "store failed". onFailure sees
// store errors only.
func degradeToEmpty[T any](items []T, pages int, err error, onFailure func(error)) ([]T, int) {
	if err == nil {
		return items, pages
	}
	if !errors.Is(err, errNoResult) && onFailure != nil {
		onFailure(err)
	}
	return []T{}, 0
}
