// Package entries defines the structured log entry type flowing through the
// iterators and sources of this module.
package entries

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	StandardMessageField   = "@message"
	StandardTimestampField = "@timestamp"
	StandardLevelField     = "@level"
	StandardTagField       = "@tag"
)

// LogEntry is a single entry in a log, with potentially many fields.
type LogEntry map[string]any

func (e LogEntry) HasField(name string) bool {
	_, ok := e[name]
	return ok
}

// AsString returns a string representation of the named field, if present.
func (e LogEntry) AsString(name string) (string, bool) {
	if !e.HasField(name) {
		return "", false
	}
	switch v := e[name].(type) {
	case string:
		return v, true
	case interface{ String() string }:
		return v.String(), true
	case error:
		return v.Error(), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

// AsInt returns the named field as an int64 if it holds an integer type or a
// string parsable as one.
func (e LogEntry) AsInt(name string) (int64, bool) {
	if !e.HasField(name) {
		return 0, false
	}
	switch v := e[name].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		// json.Unmarshal produces float64 for all numbers.
		return int64(v), true
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// AsFloat returns the named field as a float64 if it holds a numeric type
// or a string parsable as one.
func (e LogEntry) AsFloat(name string) (float64, bool) {
	if !e.HasField(name) {
		return 0, false
	}
	switch v := e[name].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsTime returns the named field as a UTC time, parsing strings with the
// given formats, or RFC3339 when none are given.
func (e LogEntry) AsTime(name string, format ...string) (time.Time, bool) {
	var none time.Time
	if !e.HasField(name) {
		return none, false
	}
	if t, ok := e[name].(time.Time); ok {
		return t.UTC(), true
	}
	s, ok := e.AsString(name)
	if !ok {
		return none, false
	}
	if len(format) == 0 {
		format = []string{time.RFC3339}
	}
	for _, f := range format {
		t, err := time.Parse(f, s)
		if err == nil {
			return t.UTC(), true
		}
	}
	return none, false
}

// Format renders the given fields of the entry according to a fmt format string.
func (e LogEntry) Format(format string, fields ...string) string {
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = e[f]
	}
	return fmt.Sprintf(format, args...)
}

// Tag sets the standard tag field to the given value.
// If the entry is already tagged, then the new tag is appended with a period separator.
// Tags classify log information to make it easier to filter for later.
func (e LogEntry) Tag(tag string) {
	if existing, ok := e.AsString(StandardTagField); ok && len(existing) > 0 {
		e[StandardTagField] = existing + "." + tag
		return
	}
	e[StandardTagField] = tag
}

// FromString parses a log line into a LogEntry. A line holding a JSON object
// becomes an entry with its fields; anything else becomes the value of the
// standard message field.
func FromString(msg string) LogEntry {
	entry := LogEntry{}
	if err := json.Unmarshal([]byte(msg), &entry); err != nil {
		entry[StandardMessageField] = msg
	}
	return entry
}
