package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingCostFor(t *testing.T) {
	tests := []struct {
		city string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"Bogotá", 8000},
		{"bogotá", 8000},
		{"MEDELLÍN", 9000},
		{"Cali", 9000},
		{"Barranquilla", 10000},
		{"Cartagena", 10000},
		{"Pereira", 12000},
		{"Bogota", 12000}, // without the accent it is an unknown city here
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShippingCostFor(tt.city), "city %q", tt.city)
	}
}

func TestCustomShippingCostFor(t *testing.T) {
	tests := []struct {
		city string
		want float64
	}{
		{"", 12000}, // no free empty-city case on the instructions view
		{"Bogota", 8000},
		{"Bogotá", 8000},
		{"medellin", 9000},
		{"Cali", 9000},
		{"Leticia", 12000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CustomShippingCostFor(tt.city), "city %q", tt.city)
	}
}
