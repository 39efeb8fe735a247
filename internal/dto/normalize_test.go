package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_NilStaysNil(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	var due *time.Time
	assert.Nil(t, Normalize(due))
}

func TestNormalize_Primitives(t *testing.T) {
	assert.Equal(t, "hello", Normalize("hello"))
	assert.Equal(t, true, Normalize(true))
	assert.Equal(t, float64(42), Normalize(42))
	assert.Equal(t, float64(7), Normalize(uint64(7)))
	assert.Equal(t, 1.5, Normalize(1.5))
	assert.Equal(t, "raw bytes", Normalize([]byte("raw bytes")))
}

func TestNormalize_Time(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-09-01T10:30:00Z", Normalize(ts))
	assert.Equal(t, "2026-09-01T10:30:00Z", Normalize(&ts))
}

func TestNormalize_Struct(t *testing.T) {
	type record struct {
		Name    string     `json:"name"`
		Count   int        `json:"count"`
		DueAt   *time.Time `json:"due_at"`
		Created time.Time  `json:"created"`
	}

	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := Normalize(record{Name: "alpha", Count: 3, Created: created})

	m, ok := out.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "alpha", m["name"])
	assert.Equal(t, float64(3), m["count"])
	assert.Nil(t, m["due_at"])
	assert.Equal(t, "2026-09-01T00:00:00Z", m["created"])
}

func TestNormalize_Idempotent(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	inputs := []any{
		nil,
		"text",
		uint64(9),
		ts,
		map[string]any{"id": 1, "due": &ts, "tags": []any{"a", "b"}},
		[]any{1, "two", ts},
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_DeepCopy(t *testing.T) {
	original := map[string]any{"nested": map[string]any{"value": "before"}}

	out := Normalize(original)
	normalized, ok := out.(map[string]any)
	assert.True(t, ok)

	// Mutating the normalized copy must not touch the original record.
	normalized["nested"].(map[string]any)["value"] = "after"
	assert.Equal(t, "before", original["nested"].(map[string]any)["value"])
}
