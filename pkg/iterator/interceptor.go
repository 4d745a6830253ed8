package iterator

import (
	"context"
	"sync"
)

// Filter wraps an Iterator with a function that - when it returns true - will allow the return values of Next through.
// If the wrapped Iterator returns a non-nil error, then all values will be passed through regardless.
func Filter[T any](iter Iterator[T], filter func(item T, i int, err error) bool) Iterator[T] {
	return Func(func() (T, int, error) {
		for {
			item, idx, err := iter.Next()
			if err != nil {
				return item, idx, err
			}
			if filter(item, idx, err) {
				return item, idx, err
			}
		}
	})
}

// Cancellable wraps an iterator and makes it cancellable by context.
// When the context is cancelled and Next is called, all remaining items will be forwarded to Drain.
func Cancellable[T any](ctx context.Context, iter Iterator[T]) Iterator[T] {
	var (
		cancelled bool
		drain     sync.Once
	)
	go func() {
		<-ctx.Done()
		cancelled = true
	}()
	return Func(func() (T, int, error) {
		if cancelled {
			drain.Do(func() {
				Drain(iter)
			})
			return End[T]()
		}
		return iter.Next()
	})
}

// Concat will return items from next after base has been exhausted.
func Concat[T any](base, next Iterator[T]) Iterator[T] {
	var idx int
	return Func(func() (T, int, error) {
		item, i, err := base.Next()
		if err != nil {
			if IsEnd(err) {
				item, i, err := next.Next()
				if err != nil {
					return item, i, err
				}
				return item, i + idx, err
			}
			return item, i, err
		}
		idx++
		return item, i, err
	})
}
