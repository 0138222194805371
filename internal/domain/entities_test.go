package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectedRange_Normalized(t *testing.T) {
	tests := []struct {
		name  string
		input SelectedRange
		want  SelectedRange
	}{
		{
			name:  "already ordered",
			input: SelectedRange{StartLine: 10, EndLine: 20},
			want:  SelectedRange{StartLine: 10, EndLine: 20},
		},
		{
			name:  "reversed lines swap",
			input: SelectedRange{StartLine: 20, EndLine: 10},
			want:  SelectedRange{StartLine: 10, EndLine: 20},
		},
		{
			name:  "reversed lines carry their columns",
			input: SelectedRange{StartLine: 20, StartColumn: 3, EndLine: 10, EndColumn: 7},
			want:  SelectedRange{StartLine: 10, StartColumn: 7, EndLine: 20, EndColumn: 3},
		},
		{
			name:  "same line reversed columns swap",
			input: SelectedRange{StartLine: 5, StartColumn: 9, EndLine: 5, EndColumn: 2},
			want:  SelectedRange{StartLine: 5, StartColumn: 2, EndLine: 5, EndColumn: 9},
		},
		{
			name:  "same line ordered columns stay",
			input: SelectedRange{StartLine: 5, StartColumn: 2, EndLine: 5, EndColumn: 9},
			want:  SelectedRange{StartLine: 5, StartColumn: 2, EndLine: 5, EndColumn: 9},
		},
		{
			name:  "same line without columns stays",
			input: SelectedRange{StartLine: 5, EndLine: 5},
			want:  SelectedRange{StartLine: 5, EndLine: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.Normalized())
		})
	}
}

func TestSelectedRange_ZeroWidth(t *testing.T) {
	tests := []struct {
		name  string
		input SelectedRange
		want  bool
	}{
		{
			name:  "collapsed cursor is zero width",
			input: SelectedRange{StartLine: 10, StartColumn: 4, EndLine: 10, EndColumn: 4},
			want:  true,
		},
		{
			name:  "single line without columns is a whole-line range",
			input: SelectedRange{StartLine: 10, EndLine: 10},
			want:  false,
		},
		{
			name:  "single line with distinct columns",
			input: SelectedRange{StartLine: 10, StartColumn: 4, EndLine: 10, EndColumn: 9},
			want:  false,
		},
		{
			name:  "multi-line with equal columns",
			input: SelectedRange{StartLine: 10, StartColumn: 4, EndLine: 12, EndColumn: 4},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.input.ZeroWidth())
		})
	}
}

func TestSelectedRange_SingleLine(t *testing.T) {
	assert.True(t, SelectedRange{StartLine: 7, EndLine: 7}.SingleLine())
	assert.False(t, SelectedRange{StartLine: 7, EndLine: 9}.SingleLine())
}
