package iterator

var _ Iterator[int] = (*sliceIterator[int])(nil)

type sliceIterator[T any] struct {
	items []T
	next  int
}

func (s *sliceIterator[T]) Next() (T, int, error) {
	cur := s.next
	if len(s.items) > cur {
		s.next += 1
		return s.items[cur], cur, nil
	}
	return End[T]()
}

func (s *sliceIterator[T]) Iterate(iter func(item T, i int) error) error {
	return iterate[T](s, iter)
}
