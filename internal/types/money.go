// README: Common money value object used across modules. Amounts are MAD centimes.
package types

import "math"

const CurrencyMAD = "MAD"

type Money struct {
	Amount   int64
	Currency string
}

// MAD returns an amount of centimes in the platform currency.
func MAD(centimes int64) Money {
	return Money{Amount: centimes, Currency: CurrencyMAD}
}

// MADFromFloat converts a decimal dirham value, rounding half-up to the centime.
func MADFromFloat(v float64) Money {
	return MAD(int64(RoundHalfUp(v*100, 0)))
}

// Float returns the amount in dirhams.
func (m Money) Float() float64 {
	return float64(m.Amount) / 100
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount, Currency: m.currency()}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount - o.Amount, Currency: m.currency()}
}

// MulRate scales the amount by rate, rounding half-up to the centime.
func (m Money) MulRate(rate float64) Money {
	return Money{Amount: int64(RoundHalfUp(float64(m.Amount)*rate, 0)), Currency: m.currency()}
}

func (m Money) IsPositive() bool {
	return m.Amount > 0
}

func (m Money) currency() string {
	if m.Currency == "" {
		return CurrencyMAD
	}
	return m.Currency
}

// tieULPs is how close, in units in the last place, a scaled value must be to
// .5 to count as a tie.
const tieULPs = 8

// RoundHalfUp rounds x to the given number of decimal places with ties going
// away from zero. A value within a few ulps of a tie counts as the tie, so
// 1.005 rounds to 1.01 although its binary form sits just below it, while
// 0.004999995 still rounds down to 0.00.
func RoundHalfUp(x float64, places int) float64 {
	v := math.Abs(x * math.Pow10(places))
	whole, frac := math.Modf(v)
	tol := tieULPs * (math.Nextafter(v, math.Inf(1)) - v)
	if frac >= 0.5-tol {
		whole++
	}
	return math.Copysign(whole, x) / math.Pow10(places)
}
