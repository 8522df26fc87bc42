package checkout

// Shipping is a flat base charge plus a per-started-kilogram surcharge.
// 5000/kg is the canonical business rate; there is no carrier or distance
// tiering.
const (
	shippingBaseRate  int64 = 10000
	shippingRatePerKg int64 = 5000
)

// CalculateShippingPrice prices shipping for a total cart weight in grams.
// Weight 0 still pays the base rate (minimum charge). Callers reject
// negative weights before getting here.
func CalculateShippingPrice(totalWeightGrams int) int64 {
	weightKg := int64(totalWeightGrams) / 1000
	if int64(totalWeightGrams)%1000 != 0 {
		weightKg++
	}

	return shippingBaseRate + weightKg*shippingRatePerKg
}
