package utils

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{
			name:  "round to 2 decimals",
			input: 123.456789,
			want:  123.46,
		},
		{
			name:  "already 2 decimals",
			input: 123.45,
			want:  123.45,
		},
		{
			name:  "integer",
			input: 123.0,
			want:  123.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round2(tt.input)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Round2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  bool
	}{
		{name: "finite number", input: 123.45, want: true},
		{name: "infinity", input: math.Inf(1), want: false},
		{name: "negative infinity", input: math.Inf(-1), want: false},
		{name: "NaN", input: math.NaN(), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFinite(tt.input)
			if got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "zero", input: 0, want: "$0.00"},
		{name: "cents", input: 8.5, want: "$8.50"},
		{name: "thousands", input: 1234567.891, want: "$1,234,567.89"},
		{name: "negative", input: -1500.25, want: "-$1,500.25"},
		{name: "rounds half away from zero", input: 2.675, want: "$2.68"},
		{name: "NaN", input: math.NaN(), want: "NaN"},
		{name: "infinity", input: math.Inf(1), want: "∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.input); got != tt.want {
				t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{input: 0.15, want: "15.00%"},
		{input: 0.29, want: "29.00%"},
		{input: 0.1234, want: "12.34%"},
		{input: -0.05, want: "-5.00%"},
		{input: 12.5, want: "1,250.00%"},
	}

	for _, tt := range tests {
		if got := FormatPercentage(tt.input); got != tt.want {
			t.Errorf("FormatPercentage(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
