// Package file provides log file sources and sinks, including tail support.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/nxadm/tail"
	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
)

const (
	readTimeField = "@read_timestamp"
	readLineField = "@read_line_number"
)

// Source reads each line of the named file, emitting a log entry for each
// one, and exhausts at the end of the file. Lines holding JSON objects are
// merged into the entry's fields; anything else populates the standard
// message field.
func Source(filename string) (iterator.Iterator[entries.LogEntry], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	ch := make(chan entries.LogEntry)
	go func() {
		defer func() {
			close(ch)
			_ = f.Close()
		}()
		scanner := bufio.NewScanner(f)
		line := 0
		for scanner.Scan() {
			line++
			entry := entries.FromString(scanner.Text())
			entry[readTimeField] = time.Now().Format(time.RFC3339)
			entry[readLineField] = line
			ch <- entry
		}
	}()
	return iterator.FromChannel(ch), nil
}

// TailSource behaves the same as CtxTailSource, except that it will use context.Background as the context.
func TailSource(filename string) (iterator.Iterator[entries.LogEntry], error) {
	_, i, err := ctxTailSource(context.Background(), filename)
	return i, err
}

// CtxTailSource watches the named file for changes, producing a new log
// entry for each appended line until the context is cancelled. Lines are
// parsed the same way as Source.
func CtxTailSource(ctx context.Context, filename string) (iterator.Iterator[entries.LogEntry], error) {
	_, i, err := ctxTailSource(ctx, filename)
	return i, err
}

func ctxTailSource(ctx context.Context, filename string) (*tail.Tail, iterator.Iterator[entries.LogEntry], error) {
	t, err := tail.TailFile(filename, tail.Config{
		ReOpen:    true,
		MustExist: true,
		Follow:    true,
	})
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan entries.LogEntry)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case l, ok := <-t.Lines:
				if !ok {
					return
				}
				entry := entries.FromString(l.Text)
				entry[readTimeField] = l.Time.Format(time.RFC3339)
				entry[readLineField] = l.Num
				ch <- entry
			}
		}
	}()
	return t, iterator.FromChannel(ch), nil
}

// Sink will append each entry in the iterator to the specified file as a
// JSON line, creating it if necessary. In case of an error, Sink will drain
// the iterator to prevent upstream blocking.
func Sink(iter iterator.Iterator[entries.LogEntry], filename string, perms os.FileMode) error {
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perms)
	if err != nil {
		iterator.Drain(iter)
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	err = iter.Iterate(func(entry entries.LogEntry, _ int) error {
		data, err := json.Marshal(entry)
		if err != nil {
			// Shouldn't ever happen, given the data type.
			return err
		}
		data = append(data, '\n')
		if _, err := f.Write(data); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		iterator.Drain(iter)
		return err
	}
	return nil
}
