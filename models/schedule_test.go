package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"monday", "monday", true},
		{"MONDAY", "monday", true},
		{"  Sunday ", "sunday", true},
		{"Wednesday", "wednesday", true},
		{"someday", "", false},
		{"", "", false},
		{"mon", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
