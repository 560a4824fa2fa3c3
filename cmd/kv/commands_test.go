package kv

import (
	"testing"

	"github.com/IMvampireXD/MCBE-Storage-Database/lib/chunkdb"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want chunkdb.Value
	}{
		{"number", "42", chunkdb.NewScalar(42)},
		{"bool", "true", chunkdb.NewFlag(true)},
		{"quoted string", `"hi"`, chunkdb.NewText("hi")},
		{"vector object", `{"x":1,"y":2,"z":3}`, chunkdb.NewVector(1, 2, 3)},
		{"object", `{"a":1}`, chunkdb.NewStructured(map[string]any{"a": 1.0})},
		{"plain text", "not json at all", chunkdb.NewText("not json at all")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseValue(tt.arg); !got.Equal(tt.want) {
				t.Errorf("parseValue(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

// set must never delete: the null literal is rejected instead of being
// passed through as the absence sentinel.
func TestParseSetValueRejectsNull(t *testing.T) {
	if _, err := parseSetValue("null"); err == nil {
		t.Errorf("expected an error for null")
	}

	value, err := parseSetValue("0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Equal(chunkdb.NewScalar(0)) {
		t.Errorf("got %v, want Scalar(0)", value)
	}
}
