package iterator

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"
)

var (
	// ErrAtEnd is returned from Next when an Iterator has no more items to produce.
	// Once an Iterator returns ErrAtEnd, all later calls to Next must return it too.
	ErrAtEnd = errors.New("iterator at end")
	// ErrStopIteration may be returned from an Iterate callback to stop iterating early without reporting an error.
	ErrStopIteration = errors.New("stop iterating")
)

// Iterator produces items of a stream one at a time until the stream is exhausted.
type Iterator[T any] interface {
	// Next returns the next item and its offset in the stream.
	// Returns ErrAtEnd once the end of the stream is reached.
	Next() (T, int, error)
	// Iterate will progress through all items in the stream, calling iter for each one along with its offset.
	// If iter returns ErrStopIteration, then iteration will cease, returning nil.
	// If any other error is returned, then iteration will cease, and the error will be returned.
	Iterate(iter func(item T, i int) error) error
}

// IsEnd reports whether err indicates normal end of iteration.
func IsEnd(err error) bool {
	return errors.Is(err, ErrAtEnd)
}

// End returns the Next values signalling the end of iteration.
func End[T any]() (T, int, error) {
	var none T
	return none, -1, ErrAtEnd
}

// Err returns the Next values reporting err.
func Err[T any](err error) (T, int, error) {
	var none T
	return none, -1, err
}

// Func adapts a plain function to the Iterator interface.
func Func[T any](fn func() (T, int, error)) Iterator[T] {
	return funcIterator[T](fn)
}

type funcIterator[T any] func() (T, int, error)

func (f funcIterator[T]) Next() (T, int, error) {
	return f()
}

func (f funcIterator[T]) Iterate(iter func(item T, i int) error) error {
	return iterate[T](f, iter)
}

// iterate is the common Iterate loop shared by the iterators in this package.
func iterate[T any](src Iterator[T], iter func(item T, i int) error) error {
	for {
		item, i, err := src.Next()
		if err != nil {
			if IsEnd(err) {
				return nil
			}
			return err
		}
		if err := iter(item, i); err != nil {
			if errors.Is(err, ErrStopIteration) {
				return nil
			}
			return err
		}
	}
}

// FromSlice returns an Iterator over the items of a slice.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIterator[T]{items: items}
}

// FromChannel returns an Iterator that produces items received from a channel until it's closed.
func FromChannel[T any](ch <-chan T) Iterator[T] {
	return &channelIterator[T]{ch: ch}
}

// AsChannel exposes an Iterator as a channel of its items.
// The returned channel is closed once the Iterator is exhausted.
func AsChannel[T any](iter Iterator[T]) <-chan T {
	if chi, ok := iter.(*channelIterator[T]); ok {
		return chi.ch
	}
	if sli, ok := iter.(*sliceIterator[T]); ok {
		ch := make(chan T, len(sli.items))
		defer close(ch)
		for i := sli.next; i < len(sli.items); i++ {
			ch <- sli.items[i]
		}
		return ch
	}
	ch := make(chan T)
	go func() {
		defer close(ch)
		_ = iter.Iterate(func(item T, i int) error {
			ch <- item
			return nil
		})
	}()
	return ch
}

// Merge will take over the passed in Iterators and forward all their items to the new Iterator.
// It's advised not to read from an iterator that has been passed to Merge.
func Merge[T any](a, b Iterator[T]) Iterator[T] {
	aCh := AsChannel(a)
	bCh := AsChannel(b)

	outCh := make(chan T)
	out := FromChannel(outCh)

	go func() {
		defer close(outCh)
		for aCh != nil || bCh != nil {
			select {
			case ae, ok := <-aCh:
				if !ok {
					aCh = nil
					continue
				}
				outCh <- ae
			case be, ok := <-bCh:
				if !ok {
					bCh = nil
					continue
				}
				outCh <- be
			}
		}
	}()
	return out
}

// Dupe will take control of and branch the duplicated Iterator into two identical Iterators.
// Any item produced by the source Iterator will be sent to both of the new Iterators.
// This is useful in a case similar to when you want to print items as well as write them to a file.
// It's not advised to read from an Iterator that has been passed to Dupe, use one of the returned Iterators instead.
func Dupe[T any](iter Iterator[T]) (Iterator[T], Iterator[T]) {
	if iter == nil {
		ch := make(chan T)
		close(ch)
		return FromChannel(ch), FromChannel(ch)
	}

	a := make(chan T)
	b := make(chan T)
	aiter := FromChannel(a)
	biter := FromChannel(b)

	go func() {
		sem := semaphore.NewWeighted(2)
		ctx := context.Background()

		defer func() {
			_ = sem.Acquire(ctx, 2)
			close(a)
			close(b)
		}()
		_ = iter.Iterate(func(item T, i int) error {
			_ = sem.Acquire(ctx, 1)
			go func() {
				defer sem.Release(1)
				a <- item
			}()
			_ = sem.Acquire(ctx, 1)
			go func() {
				defer sem.Release(1)
				b <- item
			}()
			return nil
		})
	}()
	return aiter, biter
}

// Drain will drain all items from an Iterator in a new goroutine.
// This can be useful as an error fallback in case of an iteration error to prevent upstream blocking.
func Drain[T any](iter Iterator[T]) {
	ch := AsChannel(iter)
	go func() {
		for range ch {
		}
	}()
}
