package iterator

var _ Iterator[int] = (*channelIterator[int])(nil)

type channelIterator[T any] struct {
	ch   <-chan T
	next int
}

func (c *channelIterator[T]) Next() (T, int, error) {
	item, ok := <-c.ch
	if !ok {
		return End[T]()
	}
	cur := c.next
	c.next += 1
	return item, cur, nil
}

func (c *channelIterator[T]) Iterate(iter func(item T, i int) error) error {
	return iterate[T](c, iter)
}
