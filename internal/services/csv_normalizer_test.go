package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate_Formatos(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
		day   int
	}{
		{"15/03/2024", 2024, time.March, 15},
		{"15-03-2024", 2024, time.March, 15},
		{"2024-03-15", 2024, time.March, 15},
		{"15 March 2024", 2024, time.March, 15},
		{"15 mar 2024", 2024, time.March, 15},
		{"1/1/2024", 2024, time.January, 1},
		{" 15/03/2024 ", 2024, time.March, 15},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			date := ParseFlexibleDate(tt.input)
			require.NotNil(t, date)
			assert.Equal(t, tt.year, date.Year())
			assert.Equal(t, tt.month, date.Month())
			assert.Equal(t, tt.day, date.Day())
		})
	}
}

func TestParseFlexibleDate_Invalidas(t *testing.T) {
	invalid := []string{
		"31/02/2024", // no existe en el calendario
		"2024-02-31",
		"32/01/2024",
		"15/13/2024",
		"15 Marzo 2024", // mes no inglés
		"not a date",
		"",
	}

	for _, input := range invalid {
		t.Run(input, func(t *testing.T) {
			assert.Nil(t, ParseFlexibleDate(input))
		})
	}
}

func TestParseFlexibleNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1.234,56", 1234.56}, // europeo
		{"1,234.56", 1234.56}, // anglosajón
		{"1234,56", 1234.56},  // coma decimal
		{"1.234", 1234},       // punto de miles
		{"1234.56", 1234.56},
		{"1.234.567,89", 1234567.89},
		{"€ 1.500,00", 1500},
		{"$99.99", 99.99},
		{"-42,5", -42.5},
		{"0,5", 0.5},
		{"1000", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, ok := ParseFlexibleNumber(tt.input)
			require.True(t, ok)
			assert.InDelta(t, tt.expected, value, 1e-9)
		})
	}
}

func TestParseFlexibleNumber_Invalidos(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "€"} {
		t.Run(input, func(t *testing.T) {
			_, ok := ParseFlexibleNumber(input)
			assert.False(t, ok)
		})
	}
}
