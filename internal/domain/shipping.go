package domain

import "strings"

// Flat shipping fee per city; anything not listed pays the rest-of-country
// rate.
var cityRates = map[string]float64{
	"Bogotá":       8000,
	"Medellín":     9000,
	"Cali":         9000,
	"Barranquilla": 10000,
	"Cartagena":    10000,
}

const restOfCountryRate = 12000

// ShippingCostFor resolves the shipping fee for a destination city with an
// exact case-insensitive match. An empty city means shipping hasn't been
// chosen yet and costs nothing; an unknown non-empty city pays the default.
func ShippingCostFor(city string) float64 {
	c := strings.ToLower(strings.TrimSpace(city))
	if c == "" {
		return 0
	}
	for name, rate := range cityRates {
		if strings.ToLower(name) == c {
			return rate
		}
	}
	return restOfCountryRate
}

// The personalization payment-instructions view historically shipped with its
// own table (accent-less aliases included) and charges the default even for an
// empty city. Kept separate from ShippingCostFor on purpose.
var customCityRates = map[string]float64{
	"Bogota":       8000,
	"Bogotá":       8000,
	"Medellin":     9000,
	"Medellín":     9000,
	"Cali":         9000,
	"Barranquilla": 10000,
	"Cartagena":    10000,
}

const customDefaultRate = 12000

func CustomShippingCostFor(city string) float64 {
	c := strings.ToLower(strings.TrimSpace(city))
	for name, rate := range customCityRates {
		if strings.ToLower(name) == c {
			return rate
		}
	}
	return customDefaultRate
}
