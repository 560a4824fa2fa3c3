package chunkdb

import (
	"strings"
	"testing"
)

func TestBuildAndParseIDs(t *testing.T) {
	prefix := dbPrefix("mydb")

	tests := []struct {
		id      string
		wantKey string
		wantOK  bool
	}{
		{buildID(prefix, tagNative, "score"), "score", true},
		{buildID(prefix, tagString, "name"), "name", true},
		{buildID(prefix, tagMeta, "blob"), "blob", true},
		// data chunks never contribute to the index
		{buildChunkID(prefix, "blob", 0), "", false},
		{buildChunkID(prefix, "blob", 12), "", false},
		// foreign ids and other databases are ignored
		{"unrelated", "", false},
		{buildID(dbPrefix("otherdb"), tagNative, "score"), "", false},
		// keys with underscores survive the round trip
		{buildID(prefix, tagString, "a_b_c"), "a_b_c", true},
	}

	for _, tt := range tests {
		key, ok := parseIndexedKey(prefix, tt.id)
		if ok != tt.wantOK || key != tt.wantKey {
			t.Errorf("parseIndexedKey(%q) = (%q, %t), want (%q, %t)", tt.id, key, ok, tt.wantKey, tt.wantOK)
		}
	}
}

func TestChunkIDsAreUnambiguous(t *testing.T) {
	prefix := dbPrefix("db")

	// chunk ids of different (key, index) pairs never collide, even with
	// underscores in the key
	ids := map[string]string{}
	for _, key := range []string{"a", "a_1", "a_1_2"} {
		for i := 0; i < 15; i++ {
			id := buildChunkID(prefix, key, i)
			if prev, ok := ids[id]; ok {
				t.Fatalf("id %q generated twice (%s and %s/%d)", id, prev, key, i)
			}
			ids[id] = key
		}
	}
}

func TestValidateIdentifier(t *testing.T) {
	if err := validateIdentifier("key", "valid_key-123"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	for name, bad := range map[string]string{
		"empty":           "",
		"marker":          reservedMarker,
		"marker embedded": "abc" + reservedMarker + "def",
	} {
		t.Run(name, func(t *testing.T) {
			err := validateIdentifier("key", bad)
			if err == nil {
				t.Fatalf("expected an error for %q", bad)
			}
			if err.Code != RetCInvalidIdentifier {
				t.Errorf("got code %d, want RetCInvalidIdentifier", err.Code)
			}
		})
	}
}

func TestSplitIntoChunks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		size     int
		wantLens []int
	}{
		{"empty", "", 4, []int{0}},
		{"smaller than size", "ab", 4, []int{2}},
		{"exact multiple", "abcdefgh", 4, []int{4, 4}},
		{"remainder", "abcdefghij", 4, []int{4, 4, 2}},
		{"single byte over", "abcde", 4, []int{4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := splitIntoChunks(tt.input, tt.size)
			if len(chunks) != len(tt.wantLens) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.wantLens))
			}
			for i, want := range tt.wantLens {
				if len(chunks[i]) != want {
					t.Errorf("chunk %d: got %d bytes, want %d", i, len(chunks[i]), want)
				}
			}
			if got := strings.Join(chunks, ""); got != tt.input {
				t.Errorf("chunks do not cover the input exactly")
			}
		})
	}
}

func TestSplitIntoChunksCount(t *testing.T) {
	// ceil(70000/32767) = 3
	chunks := splitIntoChunks(strings.Repeat("a", 70000), 32767)
	if len(chunks) != 3 {
		t.Errorf("got %d chunks, want 3", len(chunks))
	}
}
