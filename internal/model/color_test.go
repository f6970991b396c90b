package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Color
	}{
		{
			name:     "plain_triple",
			input:    "rgb(10,20,30)",
			expected: Color{R: 10, G: 20, B: 30},
		},
		{
			name:     "spaced_triple",
			input:    "rgb(255, 0, 128)",
			expected: Color{R: 255, G: 0, B: 128},
		},
		{
			name:     "extra_inner_whitespace",
			input:    "rgb( 1 , 2 , 3 )",
			expected: Color{R: 1, G: 2, B: 3},
		},
		{
			name:     "boundary_values",
			input:    "rgb(0,0,255)",
			expected: Color{R: 0, G: 0, B: 255},
		},
		{
			name:     "empty_string",
			input:    "",
			expected: DefaultColor,
		},
		{
			name:     "not_a_color",
			input:    "not-a-color",
			expected: DefaultColor,
		},
		{
			name:     "component_out_of_range",
			input:    "rgb(300,0,0)",
			expected: DefaultColor,
		},
		{
			name:     "hex_form_rejected",
			input:    "#87ceeb",
			expected: DefaultColor,
		},
		{
			name:     "rgba_rejected",
			input:    "rgba(1,2,3,0.5)",
			expected: DefaultColor,
		},
		{
			name:     "trailing_garbage",
			input:    "rgb(1,2,3) extra",
			expected: DefaultColor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseColor(tc.input))
		})
	}
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "rgb(10, 20, 30)", Color{R: 10, G: 20, B: 30}.String())
	assert.Equal(t, "rgb(135, 206, 235)", DefaultColor.String())
}
