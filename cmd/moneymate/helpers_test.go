package main

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole number", input: "1500", want: 150000},
		{name: "two decimal places", input: "12.34", want: 1234},
		{name: "one decimal place", input: "0.5", want: 50},
		{name: "surrounding whitespace", input: " 10.00 ", want: 1000},
		{name: "three decimal places", input: "1.999", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinor(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "round amount", amount: 150000, want: "1500.00"},
		{name: "with cents", amount: 1234, want: "12.34"},
		{name: "zero", amount: 0, want: "0.00"},
		{name: "negative", amount: -5000, want: "-50.00"},
		{name: "sub-unit", amount: 7, want: "0.07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMinor(tt.amount); got != tt.want {
				t.Errorf("formatMinor(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-03-15")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate = %v, want %v", got, want)
	}

	for _, input := range []string{"15-03-2024", "2024/03/15", "tomorrow", ""} {
		if _, err := parseDate(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}
