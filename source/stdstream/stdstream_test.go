package stdstream

import (
	"bytes"
	"context"
	"testing"

	"github.com/saylorsolutions/peeklog/pkg/entries"
	"github.com/saylorsolutions/peeklog/pkg/iterator"
	"github.com/stretchr/testify/assert"
)

func TestSink(t *testing.T) {
	var buf bytes.Buffer
	iter := iterator.FromSlice([]entries.LogEntry{
		{"@message": "A"},
		{"@message": "B"},
	})
	err := sink(context.Background(), &buf, iter)
	assert.NoError(t, err)
	assert.Equal(t, "{\"@message\":\"A\"}\n{\"@message\":\"B\"}\n", buf.String())
}

func TestSink_Cancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	iter := iterator.FromSlice([]entries.LogEntry{
		{"@message": "A"},
	})
	err := sink(ctx, &buf, iter)
	assert.NoError(t, err)
	assert.Zero(t, buf.Len(), "Nothing should be written after cancellation")
}
