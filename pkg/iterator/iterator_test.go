package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSlice_Next(t *testing.T) {
	iter := FromSlice(_testItems())
	a, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "A", a)

	b, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "B", b)

	c, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, "C", c)

	z, i, err := iter.Next()
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrAtEnd)
	assert.Equal(t, -1, i)
	assert.Zero(t, z)
}

func TestFromChannel_Next(t *testing.T) {
	iter := FromChannel(_testItemChannel())
	a, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, "A", a)

	b, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, "B", b)

	c, i, err := iter.Next()
	assert.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, "C", c)

	_, i, err = iter.Next()
	assert.ErrorIs(t, err, ErrAtEnd)
	assert.Equal(t, -1, i)
}

func TestFromSlice_Iterate(t *testing.T) {
	iter := FromSlice(_testItems())
	count := 0

	err := iter.Iterate(func(item string, i int) error {
		count += 1
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIterate_StopEarly(t *testing.T) {
	iter := FromSlice(_testItems())
	count := 0

	err := iter.Iterate(func(item string, i int) error {
		count += 1
		return ErrStopIteration
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMerge(t *testing.T) {
	a := FromSlice(_testItems())
	b := FromChannel(_testItemChannel())
	c := Merge(a, b)
	count := 0

	err := c.Iterate(func(item string, i int) error {
		count += 1
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestDupe(t *testing.T) {
	a, b := Dupe(FromSlice(_testItems()))
	counts := make(chan int, 2)
	for _, iter := range []Iterator[string]{a, b} {
		iter := iter
		go func() {
			count := 0
			_ = iter.Iterate(func(item string, i int) error {
				count++
				return nil
			})
			counts <- count
		}()
	}
	assert.Equal(t, 3, <-counts)
	assert.Equal(t, 3, <-counts)
}

func TestFunc(t *testing.T) {
	remaining := 2
	iter := Func(func() (string, int, error) {
		if remaining == 0 {
			return End[string]()
		}
		remaining--
		return "item", 1 - remaining, nil
	})
	count := 0
	err := iter.Iterate(func(item string, i int) error {
		count++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}

func _testItems() []string {
	return []string{"A", "B", "C"}
}

func _testItemChannel() <-chan string {
	slice := _testItems()
	ch := make(chan string, len(slice))
	for _, s := range slice {
		ch <- s
	}
	close(ch)
	return ch
}
