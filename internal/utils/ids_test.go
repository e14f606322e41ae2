package utils

import (
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	id := NewID("kit")
	if !strings.HasPrefix(id, "kit_") {
		t.Errorf("expected kit_ prefix, got %q", id)
	}
	if len(id) != len("kit_")+12 {
		t.Errorf("expected 12 hex chars after the prefix, got %q", id)
	}
	if id == NewID("kit") {
		t.Errorf("two IDs collided")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Paris Saint-Germain", "paris-saint-germain"},
		{"  AC Milan  ", "ac-milan"},
		{"Borussia Mönchengladbach", "borussia-mnchengladbach"},
		{"1. FC Köln", "1-fc-kln"},
		{"Real   Madrid", "real-madrid"},
		{"--weird--input--", "weird-input"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
