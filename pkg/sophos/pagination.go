package sophos

import (
	"context"
	"fmt"
)

// Pagination defaults. MaxPages is a guard against a misbehaving upstream
// handing back a cursor chain that never terminates.
const (
	DefaultPageSize = 100
	DefaultMaxPages = 500
)

// PaginationOptions configures the page-accumulating helpers.
type PaginationOptions struct {
	// PageSize is the requested page size. Page funcs are expected to pass it
	// through as the pageSize query parameter.
	PageSize int

	// MaxPages caps the number of pages fetched before failing with
	// ErrTooManyPages.
	MaxPages int
}

// DefaultPaginationOptions returns the default pagination options.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: DefaultPageSize,
		MaxPages: DefaultMaxPages,
	}
}

func (o *PaginationOptions) withDefaults() PaginationOptions {
	opts := PaginationOptions{}
	if o != nil {
		opts = *o
	}

	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}

	return opts
}

// KeyedPageFunc fetches one page of a cursor-paginated listing. fromKey is
// empty for the first page. It returns the page's items and the next cursor,
// where an empty next cursor terminates the sequence.
type KeyedPageFunc[T any] func(ctx context.Context, fromKey string) (items []T, nextKey string, err error)

// FetchAllByKey accumulates every item of a cursor-paginated listing in
// arrival order. Items are not deduplicated. A cursor equal to any previously
// seen value fails with ErrRepeatedPageKey; exceeding the configured page cap
// fails with ErrTooManyPages.
func FetchAllByKey[T any](ctx context.Context, fetch KeyedPageFunc[T], opts *PaginationOptions) ([]T, error) {
	options := opts.withDefaults()

	var all []T

	seen := map[string]struct{}{"": {}}
	fromKey := ""

	for page := 1; ; page++ {
		if page > options.MaxPages {
			return nil, fmt.Errorf("%w (%d pages)", ErrTooManyPages, options.MaxPages)
		}

		items, nextKey, err := fetch(ctx, fromKey)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if nextKey == "" {
			return all, nil
		}

		if _, dup := seen[nextKey]; dup {
			return nil, fmt.Errorf("%w: %q", ErrRepeatedPageKey, nextKey)
		}

		seen[nextKey] = struct{}{}
		fromKey = nextKey
	}
}

// OffsetPageFunc fetches one page of a page-numbered listing. It returns the
// page's items and the total page count reported by the API.
type OffsetPageFunc[T any] func(ctx context.Context, page int) (items []T, totalPages int, err error)

// FetchAllByOffset accumulates every item of a page-numbered listing in
// arrival order. An empty page terminates early, so an upstream that shrinks
// between pages cannot make the loop request pages past the data.
func FetchAllByOffset[T any](ctx context.Context, fetch OffsetPageFunc[T], opts *PaginationOptions) ([]T, error) {
	options := opts.withDefaults()

	var all []T

	for page := 1; ; page++ {
		if page > options.MaxPages {
			return nil, fmt.Errorf("%w (%d pages)", ErrTooManyPages, options.MaxPages)
		}

		items, totalPages, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		if len(items) == 0 {
			return all, nil
		}

		all = append(all, items...)

		if totalPages <= page {
			return all, nil
		}
	}
}
