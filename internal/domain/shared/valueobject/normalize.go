package valueobject

import "github.com/shopspring/decimal"

// exchangeRates is a static table of USD conversion rates.
// Live rates belong to an external rates collaborator; these constants keep
// cross-currency comparisons consistent within a single process.
var exchangeRates = map[Currency]decimal.Decimal{
	USD: decimal.NewFromFloat(1.0),
	EUR: decimal.NewFromFloat(1.1),
	GBP: decimal.NewFromFloat(1.27),
	INR: decimal.NewFromFloat(0.012),
	CNY: decimal.NewFromFloat(0.14),
	JPY: decimal.NewFromFloat(0.0067),
	AED: decimal.NewFromFloat(0.27),
}

// ExchangeRate returns the USD rate for a currency.
// Unknown codes fall back to 1.0: comparisons stay consistent within one
// currency, and upstream validation restricts inputs to the supported set.
func ExchangeRate(currency Currency) decimal.Decimal {
	if rate, ok := exchangeRates[currency]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// ToBaseCurrency converts an amount in the given currency to USD
func ToBaseCurrency(amount decimal.Decimal, currency Currency) decimal.Decimal {
	return amount.Mul(ExchangeRate(currency))
}

// ToBase converts a Money value to its USD equivalent
func ToBase(m Money) Money {
	return NewMoneyUSD(ToBaseCurrency(m.Amount(), m.Currency()))
}

// DeliveryTimeUnit represents the unit a bid's delivery time is quoted in
type DeliveryTimeUnit string

const (
	UnitDays   DeliveryTimeUnit = "days"
	UnitWeeks  DeliveryTimeUnit = "weeks"
	UnitMonths DeliveryTimeUnit = "months"
)

// IsValid checks if the unit is a recognized DeliveryTimeUnit
func (u DeliveryTimeUnit) IsValid() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths:
		return true
	}
	return false
}

// String returns the string representation of the unit
func (u DeliveryTimeUnit) String() string {
	return string(u)
}

// daysPerUnit maps delivery time units to their day multiplier
var daysPerUnit = map[DeliveryTimeUnit]int{
	UnitDays:   1,
	UnitWeeks:  7,
	UnitMonths: 30,
}

// ToBaseDays converts a delivery duration to days.
// Unrecognized units use multiplier 1, mirroring the currency fallback.
func ToBaseDays(duration int, unit DeliveryTimeUnit) int {
	if mult, ok := daysPerUnit[unit]; ok {
		return duration * mult
	}
	return duration
}
