package notify

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    Notification
	}{
		{name: "minimal", n: New("Ahoy", "Build finished")},
		{name: "empty body", n: New("Ahoy", "")},
		{name: "icon", n: New("Ahoy", "done").WithIcon("claude")},
		{name: "activate", n: New("Ahoy", "done").WithActivate("com.apple.Terminal")},
		{
			name: "metadata",
			n: Notification{
				Title:    "Ahoy",
				Body:     "done",
				Metadata: map[string]any{"agent": "claude", "attempt": float64(2)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Encode(tt.n)
			require.NoError(t, err)

			got, err := Decode(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.n, got)
		})
	}
}

func TestEncodeSingleTerminatingNewline(t *testing.T) {
	rec, err := Encode(New("Ahoy", "line one\nline two"))
	require.NoError(t, err)

	// The embedded newline must be escaped; only the terminator remains.
	assert.Equal(t, 1, bytes.Count(rec, []byte{'\n'}))
	assert.Equal(t, byte('\n'), rec[len(rec)-1])

	got, err := Decode(rec)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got.Body)
}

func TestEncodeOmitsAbsentOptionalFields(t *testing.T) {
	rec, err := Encode(New("Ahoy", "Build finished"))
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(rec, &keys))
	assert.Equal(t, map[string]any{"title": "Ahoy", "body": "Build finished"}, keys)
}

func TestEncodeIncludesPresentOptionalFields(t *testing.T) {
	rec, err := Encode(New("Ahoy", "done").WithIcon("claude"))
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(rec, &keys))
	assert.Contains(t, keys, "icon")
	assert.NotContains(t, keys, "activate")
	assert.NotContains(t, keys, "metadata")
}

func TestDecodeConcreteRecord(t *testing.T) {
	got, err := Decode([]byte(`{"title":"Ahoy","body":"Build finished"}`))
	require.NoError(t, err)

	assert.Equal(t, "Ahoy", got.Title)
	assert.Equal(t, "Build finished", got.Body)
	assert.Empty(t, got.Icon)
	assert.Empty(t, got.Activate)
	assert.Empty(t, got.Metadata)
	assert.NotNil(t, got.Metadata, "absent metadata decodes to an empty map")
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
	}{
		{name: "not json", line: "garbage"},
		{name: "truncated", line: `{"title":"Ahoy"`},
		{name: "title wrong kind", line: `{"title":5,"body":"x"}`},
		{name: "body wrong kind", line: `{"title":"Ahoy","body":[1]}`},
		{name: "missing title", line: `{"body":"x"}`},
		{name: "empty title", line: `{"title":"","body":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.line))
			require.Error(t, err)

			var de *DecodeError
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestDecodeToleratesUnknownKeys(t *testing.T) {
	got, err := Decode([]byte(`{"title":"Ahoy","body":"x","future_field":true}`))
	require.NoError(t, err)
	assert.Equal(t, "Ahoy", got.Title)
}
