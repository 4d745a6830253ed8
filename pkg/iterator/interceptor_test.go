package iterator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	iter := FromSlice([]int{1, 2, 3, 4, 5, 6})
	iter = Filter(iter, func(item int, i int, err error) bool {
		return item%2 == 0
	})

	var got []int
	err := iter.Iterate(func(item int, i int) error {
		got = append(got, item)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, got)
}

func TestCancellable(t *testing.T) {
	iter := FromSlice([]int{1, 2, 3})
	ctx, cancel := context.WithCancel(context.Background())
	iter = Cancellable(ctx, iter)

	item, _, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 1, item)

	cancel()
	time.Sleep(200 * time.Millisecond)

	_, _, err = iter.Next()
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrAtEnd)
}

func TestConcat(t *testing.T) {
	iter := Concat(FromSlice([]string{"A"}), FromSlice([]string{"B"}))

	item, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "A", item)

	item, i, err = iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "B", item)

	_, _, err = iter.Next()
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrAtEnd)
}
