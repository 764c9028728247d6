package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// CurrencyCode identifies a display currency.
type CurrencyCode string

const (
	OMR CurrencyCode = "OMR"
	USD CurrencyCode = "USD"
	AED CurrencyCode = "AED"
	SAR CurrencyCode = "SAR"
	QAR CurrencyCode = "QAR"
	BHD CurrencyCode = "BHD"
	KWD CurrencyCode = "KWD"
)

// ErrUnknownCurrency is returned for a code outside the supported set.
var ErrUnknownCurrency = errors.New("unknown currency code")

type currencyInfo struct {
	rate          decimal.Decimal // conversion rate from OMR
	decimalPlaces int32
}

// Static display rates from the base currency. Conversion is presentation
// only; stored totals are always OMR.
var currencies = map[CurrencyCode]currencyInfo{
	OMR: {rate: decimal.NewFromInt(1), decimalPlaces: 3},
	USD: {rate: decimal.RequireFromString("2.60"), decimalPlaces: 2},
	AED: {rate: decimal.RequireFromString("9.53"), decimalPlaces: 2},
	SAR: {rate: decimal.RequireFromString("9.74"), decimalPlaces: 2},
	QAR: {rate: decimal.RequireFromString("9.45"), decimalPlaces: 2},
	BHD: {rate: decimal.RequireFromString("0.976"), decimalPlaces: 3},
	KWD: {rate: decimal.RequireFromString("0.797"), decimalPlaces: 3},
}

// Display converts a base-currency amount into the given display currency,
// rounded to that currency's decimal places.
func Display(amount decimal.Decimal, code CurrencyCode) (decimal.Decimal, error) {
	info, ok := currencies[code]
	if !ok {
		return decimal.Decimal{}, ErrUnknownCurrency
	}
	return amount.Mul(info.rate).Round(info.decimalPlaces), nil
}
