package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10000", 10000},
		{"3.5", 3.5},
		{"  42abc", 42},
		{"-7.25%", -7.25},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"1e", 1},
		{"2.5e-1x", 0.25},
		{"+12", 12},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{"1,000", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNumber(tt.in))
		})
	}

	assert.True(t, math.IsInf(ParseNumber("Infinity"), 1))
	assert.True(t, math.IsInf(ParseNumber("-Infinity"), -1))
	assert.True(t, math.IsInf(ParseNumber("1e400"), 1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, 12, Truncate(12.9))
	assert.Equal(t, -3, Truncate(-3.7))
	assert.Equal(t, 0, Truncate(math.NaN()))
	assert.Equal(t, 0, Truncate(math.Inf(1)))
}
