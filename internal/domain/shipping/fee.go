package shipping

import "github.com/shopspring/decimal"

// Flat delivery rates in OMR.
var (
	feeOmanOffice      = decimal.RequireFromString("1.000")
	feeOmanHome        = decimal.RequireFromString("2.000")
	feeOmanHomeSpecial = decimal.RequireFromString("3.000")
	feeUAE             = decimal.RequireFromString("4.000")
	feeGCC             = decimal.RequireFromString("5.000")
)

// specialRateWilayahs are the remote wilayahs that carry the higher home
// delivery rate. Marmul and Shalim are absent from the geography data and
// therefore not listed.
var specialRateWilayahs = map[string]struct{}{
	"khasab":   {}, // Musandam
	"thumrait": {}, // Dhofar
	"al_jazer": {}, // Al Wusta
	"masirah":  {}, // South Sharqiyah
	"duqm":     {}, // Al Wusta
	"mahoot":   {}, // Al Wusta
}

// SpecialRateWilayah reports whether the wilayah carries the higher home rate.
func SpecialRateWilayah(wilayah string) bool {
	_, ok := specialRateWilayahs[wilayah]
	return ok
}

// Fee returns the flat delivery fee for a destination.
//
// Unmatched input falls through to zero: an Oman destination without a
// delivery type and a country outside the table both ship for free. Checkout
// validation keeps well-formed requests out of the fallback, but the fee
// itself stays permissive.
func Fee(dest Destination) decimal.Decimal {
	switch d := dest.(type) {
	case Oman:
		switch d.DeliveryType {
		case DeliveryOffice:
			return feeOmanOffice
		case DeliveryHome:
			if SpecialRateWilayah(d.Wilayah) {
				return feeOmanHomeSpecial
			}
			return feeOmanHome
		}
		return decimal.Zero

	case International:
		switch d.CountryKey {
		case CountryUAE:
			return feeUAE
		case CountrySaudiArabia, CountryQatar, CountryBahrain, CountryKuwait:
			return feeGCC
		}
		return decimal.Zero

	default:
		return decimal.Zero
	}
}
