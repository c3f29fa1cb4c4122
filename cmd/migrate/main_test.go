package main

import (
	"database/sql"
	"testing"
)

func TestNullStr(t *testing.T) {
	tests := []struct {
		in   sql.NullString
		want string
		null bool
	}{
		{sql.NullString{}, "", true},
		{sql.NullString{String: "", Valid: true}, "", true},
		{sql.NullString{String: `\N`, Valid: true}, "", true},
		{sql.NullString{String: "1:27.097", Valid: true}, "1:27.097", false},
	}
	for _, tt := range tests {
		got := nullStr(tt.in)
		if (got == nil) != tt.null || (got != nil && *got != tt.want) {
			t.Errorf("nullStr(%+v) = %v", tt.in, got)
		}
	}
}

func TestParseFloatStr(t *testing.T) {
	if got := parseFloatStr(sql.NullString{String: " 218.300 ", Valid: true}); got == nil || *got != 218.3 {
		t.Errorf("got %v, want 218.3", got)
	}
	if got := parseFloatStr(sql.NullString{String: "fast", Valid: true}); got != nil {
		t.Errorf("got %v, want nil", *got)
	}
}
