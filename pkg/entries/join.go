package entries

import (
	"regexp"

	"github.com/saylorsolutions/peeklog/pkg/iterator"
	"github.com/saylorsolutions/peeklog/pkg/lookahead"
)

// One peeked entry plus headroom for a PutBack is all these helpers need.
const joinCapacity = 2

// Join reassembles multiline log messages from iter. A start pattern
// defines what a @message value must look like to be interpreted as the
// start of a log message; entries that don't match any pattern have their
// @message appended to the most recent start entry. An entry at the head of
// the stream becomes a start regardless.
//
// The decision whether an entry continues the current message is made by
// peeking at it through a lookahead.Buffer, so each joined entry is
// returned as soon as its last line has been seen.
func Join(iter iterator.Iterator[LogEntry], startPatterns ...string) (iterator.Iterator[LogEntry], error) {
	patterns := make([]*regexp.Regexp, 0, len(startPatterns))
	for _, p := range startPatterns {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, r)
	}
	buf, err := lookahead.New(iter, joinCapacity)
	if err != nil {
		return nil, err
	}
	j := &joiner{buf: buf, patterns: patterns}
	return iterator.Func(j.next), nil
}

type joiner struct {
	buf      *lookahead.Buffer[LogEntry]
	patterns []*regexp.Regexp
}

func (j *joiner) isStart(entry LogEntry) bool {
	msg, ok := entry.AsString(StandardMessageField)
	if !ok {
		return false
	}
	for _, r := range j.patterns {
		if r.MatchString(msg) {
			return true
		}
	}
	return false
}

func (j *joiner) next() (LogEntry, int, error) {
	start, i, err := j.buf.Next()
	if err != nil {
		return iterator.Err[LogEntry](err)
	}
	msg, _ := start.AsString(StandardMessageField)
	for {
		peeked := j.buf.Peek()
		if peeked.End || j.isStart(peeked.Value) {
			break
		}
		cont, _, err := j.buf.Next()
		if err != nil {
			break
		}
		if m, ok := cont.AsString(StandardMessageField); ok {
			msg += "\n" + m
		}
	}
	start[StandardMessageField] = msg
	return start, i, nil
}

// SkipTo discards entries from iter until one has a @message matching
// pattern. The matching entry is not consumed: it's put back so it becomes
// the first entry produced by the returned iterator.
func SkipTo(iter iterator.Iterator[LogEntry], pattern string) (iterator.Iterator[LogEntry], error) {
	r, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	buf, err := lookahead.New(iter, joinCapacity)
	if err != nil {
		return nil, err
	}
	skipped := false
	return iterator.Func(func() (LogEntry, int, error) {
		if !skipped {
			for {
				entry, _, err := buf.Next()
				if err != nil {
					return iterator.Err[LogEntry](err)
				}
				if msg, ok := entry.AsString(StandardMessageField); ok && r.MatchString(msg) {
					buf.PutBack(lookahead.ValueOf(entry))
					break
				}
			}
			skipped = true
		}
		return buf.Next()
	}), nil
}
