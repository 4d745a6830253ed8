// Package stdstream provides sources and sinks for the standard streams.
package stdstream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
)

// SourceIn reads each line of STDIN as a log entry until EOF or the context
// is cancelled. The input may be valid JSON objects, or completely
// unstructured.
func SourceIn(ctx context.Context) iterator.Iterator[entries.LogEntry] {
	ch := make(chan entries.LogEntry)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			ch <- entries.FromString(scanner.Text())
		}
	}()
	return iterator.FromChannel(ch)
}

// SinkOut writes each log entry as a JSON line to STDOUT.
func SinkOut(ctx context.Context, src iterator.Iterator[entries.LogEntry]) error {
	return sink(ctx, os.Stdout, src)
}

// SinkErr writes each log entry as a JSON line to STDERR.
func SinkErr(ctx context.Context, src iterator.Iterator[entries.LogEntry]) error {
	return sink(ctx, os.Stderr, src)
}

func sink(ctx context.Context, w io.Writer, src iterator.Iterator[entries.LogEntry]) error {
	err := src.Iterate(func(entry entries.LogEntry, i int) error {
		if ctx.Err() != nil {
			return iterator.ErrStopIteration
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		iterator.Drain(src)
		return err
	}
	return nil
}
