package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: " \t\n ", want: ""},
		{name: "trims and folds", raw: "  Ryan Majd ", want: "ryan majd"},
		{name: "digits untouched", raw: " 2024 ", want: "2024"},
		{name: "inner whitespace kept", raw: "Knowledge,  Tenacity", want: "knowledge,  tenacity"},
		{name: "unicode fold", raw: "ÉCOLE", want: "école"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizePair(t *testing.T) {
	assert.Equal(t, "ryan majd:president", normalizePair(" Ryan Majd : President "))
	assert.Equal(t, "no separator", normalizePair("No Separator"))
}
