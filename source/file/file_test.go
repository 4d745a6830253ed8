package file

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Structured(t *testing.T) {
	name := _tempLog(t, `{"@message":"A"}
{"@message":"B"}
{"@message":"C"}
`)
	iter, err := Source(name)
	require.NoError(t, err)

	count := 0
	want := []string{"A", "B", "C"}
	err = iter.Iterate(func(entry entries.LogEntry, i int) error {
		assert.True(t, entry.HasField("@read_timestamp"), "Entry should have '@read_timestamp' field")
		assert.True(t, entry.HasField("@read_line_number"), "Entry should have '@read_line_number' field")
		assert.Equal(t, want[count], entry[entries.StandardMessageField])
		count++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSource_Unstructured(t *testing.T) {
	name := _tempLog(t, "A\nB\nC\n")
	iter, err := Source(name)
	require.NoError(t, err)

	count := 0
	want := []string{"A", "B", "C"}
	err = iter.Iterate(func(entry entries.LogEntry, i int) error {
		assert.Equal(t, want[count], entry[entries.StandardMessageField])
		count++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTailSource(t *testing.T) {
	name := _tempLog(t, "A\nB\nC\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_tail, iter, err := ctxTailSource(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, _tail)
	defer func() {
		_ = _tail.Stop()
	}()

	for _, want := range []string{"A", "B", "C"} {
		entry, _, err := iter.Next()
		require.NoError(t, err)
		assert.Equal(t, want, entry[entries.StandardMessageField])
	}
}

func TestSink(t *testing.T) {
	td := t.TempDir()
	name := filepath.Join(td, "out.log")

	iter := iterator.FromSlice([]entries.LogEntry{
		{"A": "A"},
		{"B": "B"},
	})
	err := Sink(iter, name, 0o600)
	require.NoError(t, err)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	lines := _jsonLines(t, data)
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0]["A"])
	assert.Equal(t, "B", lines[1]["B"])
}

func _tempLog(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
	return name
}

func _jsonLines(t *testing.T, data []byte) []entries.LogEntry {
	t.Helper()
	var out []entries.LogEntry
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := entries.LogEntry{}
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}
