package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateShippingPrice(t *testing.T) {
	tests := []struct {
		name        string
		weightGrams int
		want        int64
	}{
		{name: "zero_weight_pays_base_rate", weightGrams: 0, want: 10000},
		{name: "one_gram_rounds_up_to_one_kg", weightGrams: 1, want: 15000},
		{name: "exact_kilogram", weightGrams: 1000, want: 15000},
		{name: "just_over_a_kilogram", weightGrams: 1001, want: 20000},
		{name: "twenty_kilograms", weightGrams: 20000, want: 110000},
		{name: "fifty_kilograms", weightGrams: 50000, want: 260000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateShippingPrice(tt.weightGrams))
		})
	}
}

func TestCalculateShippingPrice_Deterministic(t *testing.T) {
	// same weight must always price the same
	assert.Equal(t, CalculateShippingPrice(12345), CalculateShippingPrice(12345))
}
