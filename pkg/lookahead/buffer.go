// Package lookahead provides a fixed-capacity buffering adapter for any
// iterator.Iterator. It lets a consumer peek at one or more upcoming items
// without consuming them, and put a previously seen or synthetic item back
// so it becomes the next item produced, without requiring the wrapped
// source to support rewinding or multiple passes.
package lookahead

import (
	"errors"
	"fmt"
	"strings"

	"github.com/saylorsolutions/peeklog/pkg/iterator"
)

// ErrCapacity is returned from New when the requested capacity can't hold a single item.
var ErrCapacity = errors.New("buffer capacity must be at least 1")

// Item is one staged slot of source output: either a value drawn from the
// source, or the marker left behind once the source is exhausted.
type Item[T any] struct {
	Value T
	End   bool
}

// ValueOf stages v as a regular item.
func ValueOf[T any](v T) Item[T] {
	return Item[T]{Value: v}
}

// EndOf returns the end-of-sequence marker.
func EndOf[T any]() Item[T] {
	return Item[T]{End: true}
}

// Buffer wraps an iterator.Iterator with a fixed-capacity staging buffer.
// Slots before the cursor have already been delivered and hold stale data;
// slots from the cursor onward hold the upcoming items in delivery order,
// padded with end-of-sequence markers once the source runs dry.
//
// The Buffer takes exclusive ownership of the wrapped iterator, which must
// not be advanced by anything else afterward. A Buffer is itself an
// iterator.Iterator, so lookahead can be layered onto any stage of a
// pipeline. It is not safe for concurrent use.
type Buffer[T any] struct {
	src     iterator.Iterator[T]
	staging []Item[T]
	cursor  int
	idx     int
}

var _ iterator.Iterator[int] = (*Buffer[int])(nil)

// New wraps src in a Buffer staging up to capacity items. The full capacity
// is drawn from src up front, so every peek within range is satisfiable
// without touching the source again until the cursor nears the end of the
// staging buffer.
//
// The capacity bounds lookahead for the life of the Buffer: the widest PeekN
// ever requested must fit within it, and keeping one extra slot of headroom
// beyond that avoids refills on PutBack. Choose the maximum peek distance
// plus one.
func New[T any](src iterator.Iterator[T], capacity int) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w, have %d", ErrCapacity, capacity)
	}
	b := &Buffer[T]{
		src:     src,
		staging: make([]Item[T], capacity),
	}
	b.fill(0)
	return b, nil
}

// fill redraws slots [from, capacity) from the source, in order.
func (b *Buffer[T]) fill(from int) {
	for i := from; i < len(b.staging); i++ {
		b.staging[i] = b.draw()
	}
}

func (b *Buffer[T]) draw() Item[T] {
	v, _, err := b.src.Next()
	if err != nil {
		return EndOf[T]()
	}
	return ValueOf(v)
}

// demand guarantees that slots [cursor, cursor+k) are staged before
// returning. When the cursor has advanced too close to the end of the
// staging buffer, the undelivered tail slides down to slot 1 and the
// vacated slots are drawn fresh from the source. Staged items are never
// discarded by a refill, and slot 0 is kept free as look-behind headroom so
// that a PutBack directly after a refill stays cheap.
func (b *Buffer[T]) demand(k int) {
	if b.cursor+k <= len(b.staging) {
		return
	}
	if k > len(b.staging) {
		panic(fmt.Sprintf("lookahead: peek distance %d requires a buffer capacity of at least %d", k, k))
	}
	// The headroom slot is given up only when the full capacity is demanded.
	to := 1
	if k == len(b.staging) {
		to = 0
	}
	kept := copy(b.staging[to:], b.staging[b.cursor:])
	b.cursor = to
	b.fill(to + kept)
}

// Peek returns the next item without consuming it. Repeated calls with no
// intervening Next or PutBack return the same item.
func (b *Buffer[T]) Peek() Item[T] {
	b.demand(1)
	return b.staging[b.cursor]
}

// PeekN returns a read-only view of the next n items in delivery order,
// padded with end-of-sequence markers where the source has run dry. The
// returned slice aliases the staging buffer and is only valid until the
// next call on the Buffer; it must not be modified.
//
// Asking for more lookahead than the buffer's capacity is a
// misconfiguration and panics. See New for sizing guidance.
func (b *Buffer[T]) PeekN(n int) []Item[T] {
	b.demand(n)
	return b.staging[b.cursor : b.cursor+n]
}

// Next consumes and returns the next item. The offset counts deliveries
// from this Buffer, so an item delivered again after a PutBack gets a fresh
// offset. Once the source and all staged items are exhausted, Next keeps
// returning iterator.ErrAtEnd.
//
// A put back end-of-sequence marker makes only the very next call return
// iterator.ErrAtEnd; items staged behind the marker are still delivered
// after it. See PutBack.
func (b *Buffer[T]) Next() (T, int, error) {
	b.demand(1)
	slot := b.staging[b.cursor]
	b.staging[b.cursor] = Item[T]{}
	b.cursor++
	if slot.End {
		return iterator.End[T]()
	}
	cur := b.idx
	b.idx++
	return slot.Value, cur, nil
}

// Iterate consumes the remaining items, calling iter for each one.
// Returning iterator.ErrStopIteration from iter stops early without error.
func (b *Buffer[T]) Iterate(iter func(item T, i int) error) error {
	for {
		item, i, err := b.Next()
		if err != nil {
			if iterator.IsEnd(err) {
				return nil
			}
			return err
		}
		if err := iter(item, i); err != nil {
			if errors.Is(err, iterator.ErrStopIteration) {
				return nil
			}
			return err
		}
	}
}

// PutBack makes item the next value returned by Next and seen by Peek,
// providing one slot of look-behind relative to the current position.
// While anything has been consumed since the last refill, the most recently
// consumed slot is rewritten in place and no source interaction happens.
// With the cursor at the very start of the staging buffer - a freshly
// filled Buffer, or repeated PutBack calls with no Next between them - the
// staged slots shift right by one to make room, dropping the
// furthest-ahead slot to pay for it. The cursor can never underflow.
//
// Putting back an end-of-sequence marker inserts it like any other item:
// the next call to Next reports end, and consumption resumes with whatever
// was staged behind the marker. This is the one case where ErrAtEnd from a
// Buffer isn't sticky.
func (b *Buffer[T]) PutBack(item Item[T]) {
	if b.cursor > 0 {
		b.cursor--
		b.staging[b.cursor] = item
		return
	}
	copy(b.staging[1:], b.staging)
	b.staging[0] = item
}

// Len reports how many slots are staged ahead of the cursor, counting
// end-of-sequence markers.
func (b *Buffer[T]) Len() int {
	return len(b.staging) - b.cursor
}

// Cap reports the fixed staging capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.staging)
}

// String renders a snapshot of the staging buffer for debugging. Slots
// before the cursor hold leftovers of delivered items with no meaning, so
// they're masked instead of printed. The wrapped source is opaque.
func (b *Buffer[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "lookahead(cap=%d, cursor=%d)[", len(b.staging), b.cursor)
	for i, slot := range b.staging {
		if i > 0 {
			sb.WriteString(" ")
		}
		switch {
		case i < b.cursor:
			sb.WriteString("~")
		case slot.End:
			sb.WriteString("$")
		default:
			fmt.Fprintf(&sb, "%v", slot.Value)
		}
	}
	sb.WriteString("]")
	return sb.String()
}
