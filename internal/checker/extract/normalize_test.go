package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Bedroom 1", "bedroom 1"},
		{"trims", "  Kitchen  ", "kitchen"},
		{"collapses inner whitespace", "Living\t\tRoom", "living room"},
		{"drops punctuation", "W.C. #2", "wc 2"},
		{"keeps digits", "room 101", "room 101"},
		{"empty", "", ""},
		{"only punctuation", "***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCleanTextIdempotent(t *testing.T) {
	inputs := []string{"Bedroom 1", "  Master   BEDROOM ", "w.c.", "комната 3"}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once))
	}
}
