package sophos

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAllByKey(t *testing.T) {
	t.Run("accumulates all pages in arrival order", func(t *testing.T) {
		pages := map[string]struct {
			items   []string
			nextKey string
		}{
			"":   {items: []string{"a", "b"}, nextKey: "k1"},
			"k1": {items: []string{"c"}, nextKey: "k2"},
			"k2": {items: []string{"d", "e"}, nextKey: ""},
		}

		var calls []string

		items, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]string, string, error) {
			calls = append(calls, fromKey)
			page := pages[fromKey]
			return page.items, page.nextKey, nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
		assert.Equal(t, []string{"", "k1", "k2"}, calls)
	})

	t.Run("empty cursor on first page stops after one fetch", func(t *testing.T) {
		calls := 0

		items, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]int, string, error) {
			calls++
			return []int{1, 2, 3}, "", nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, items)
		assert.Equal(t, 1, calls)
	})

	t.Run("repeated cursor fails before the page cap", func(t *testing.T) {
		calls := 0

		_, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]int, string, error) {
			calls++
			return []int{calls}, "same", nil
		}, &PaginationOptions{MaxPages: 100})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRepeatedPageKey)
		assert.Equal(t, 2, calls)
	})

	t.Run("empty next cursor always terminates", func(t *testing.T) {
		keys := []string{"k1", ""}
		calls := 0

		_, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]int, string, error) {
			key := keys[calls]
			calls++
			return nil, key, nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("exceeding the page cap fails", func(t *testing.T) {
		counter := 0

		_, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]int, string, error) {
			counter++
			return []int{counter}, fmt.Sprintf("k%d", counter), nil
		}, &PaginationOptions{MaxPages: 5})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyPages)
		assert.Equal(t, 5, counter)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		fetchErr := errors.New("boom")

		_, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]int, string, error) {
			if fromKey == "k1" {
				return nil, "", fetchErr
			}
			return []int{1}, "k1", nil
		}, nil)

		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("does not deduplicate items", func(t *testing.T) {
		pages := [][]string{{"x", "x"}, {"x"}}
		calls := 0

		items, err := FetchAllByKey(context.Background(), func(ctx context.Context, fromKey string) ([]string, string, error) {
			page := pages[calls]
			calls++
			if calls < len(pages) {
				return page, "next", nil
			}
			return page, "", nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"x", "x", "x"}, items)
	})
}

func TestFetchAllByOffset(t *testing.T) {
	t.Run("accumulates all pages in arrival order", func(t *testing.T) {
		pages := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}

		var requested []int

		items, err := FetchAllByOffset(context.Background(), func(ctx context.Context, page int) ([]string, int, error) {
			requested = append(requested, page)
			return pages[page-1], len(pages), nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
		assert.Equal(t, []int{1, 2, 3}, requested)
	})

	t.Run("single page stops after one fetch", func(t *testing.T) {
		calls := 0

		items, err := FetchAllByOffset(context.Background(), func(ctx context.Context, page int) ([]int, int, error) {
			calls++
			return []int{7}, 1, nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []int{7}, items)
		assert.Equal(t, 1, calls)
	})

	t.Run("empty page terminates early", func(t *testing.T) {
		calls := 0

		items, err := FetchAllByOffset(context.Background(), func(ctx context.Context, page int) ([]int, int, error) {
			calls++
			if page == 2 {
				return nil, 10, nil
			}
			return []int{1}, 10, nil
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []int{1}, items)
		assert.Equal(t, 2, calls)
	})

	t.Run("exceeding the page cap fails", func(t *testing.T) {
		_, err := FetchAllByOffset(context.Background(), func(ctx context.Context, page int) ([]int, int, error) {
			return []int{page}, 1000, nil
		}, &PaginationOptions{MaxPages: 3})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyPages)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		fetchErr := errors.New("boom")

		_, err := FetchAllByOffset(context.Background(), func(ctx context.Context, page int) ([]int, int, error) {
			return nil, 0, fetchErr
		}, nil)

		assert.ErrorIs(t, err, fetchErr)
	})
}

func TestPaginationOptionsDefaults(t *testing.T) {
	t.Run("nil options get defaults", func(t *testing.T) {
		var opts *PaginationOptions

		resolved := opts.withDefaults()
		assert.Equal(t, DefaultPageSize, resolved.PageSize)
		assert.Equal(t, DefaultMaxPages, resolved.MaxPages)
	})

	t.Run("zero fields get defaults", func(t *testing.T) {
		resolved := (&PaginationOptions{PageSize: 25}).withDefaults()
		assert.Equal(t, 25, resolved.PageSize)
		assert.Equal(t, DefaultMaxPages, resolved.MaxPages)
	})
}
