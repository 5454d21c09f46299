package codec

import (
	"os"
	"testing"
)

func TestIsResource(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "res")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"string", "x", false},
		{"map", map[string]any{}, false},
		{"file", f, true},
		{"chan", make(chan struct{}), true},
	}
	for _, tt := range tests {
		if got := IsResource(tt.v); got != tt.want {
			t.Errorf("IsResource(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
