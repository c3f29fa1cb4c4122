package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		debug bool
		want  bool
	}{
		{true, true},
		{false, false},
	}
	for _, tt := range tests {
		log, err := New(tt.debug)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.debug, err)
		}
		if got := log.Core().Enabled(zap.DebugLevel); got != tt.want {
			t.Errorf("New(%v) debug enabled = %v, want %v", tt.debug, got, tt.want)
		}
	}
}

func TestCounts(t *testing.T) {
	fields := Counts(map[string]int{"races": 3, "results": 60})
	if len(fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(fields))
	}
	if fields[0].Key != "races" || fields[0].Integer != 3 || fields[1].Key != "results" {
		t.Errorf("fields = %+v", fields)
	}
}
