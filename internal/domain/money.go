package domain

import (
	"fmt"
	"math"
	"strings"
)

// DefaultCurrency is used whenever a currency code is not supplied.
const DefaultCurrency = "EUR"

// maxCents is the largest cent amount a float64 holds exactly.
const maxCents = 1<<53 - 1

// Money is a non-negative amount in minor units (cents) of a single currency.
type Money struct {
	cents    int64
	currency string
}

// NewMoney builds Money from an amount in cents.
func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents, currency: currencyOrDefault(currency)}, nil
}

// MoneyFromAmount converts a major-unit amount (e.g. 10.50) to cents, rounding to the nearest cent.
func MoneyFromAmount(amount float64, currency string) (Money, error) {
	scaled := amount * 100
	if scaled < 0 {
		return Money{}, ErrNegativeAmount
	}
	if math.IsNaN(scaled) || math.IsInf(scaled, 0) {
		return Money{}, ErrNonFiniteAmount
	}
	if scaled > maxCents {
		return Money{}, ErrAmountOutOfRange
	}
	return Money{cents: int64(math.Round(scaled)), currency: currencyOrDefault(currency)}, nil
}

// ZeroMoney returns an empty balance.
func ZeroMoney(currency string) Money {
	return Money{currency: currencyOrDefault(currency)}
}

func currencyOrDefault(currency string) string {
	if c := strings.TrimSpace(currency); c != "" {
		return c
	}
	return DefaultCurrency
}

func (m Money) Cents() int64 {
	return m.cents
}

// Amount returns the value in major units.
func (m Money) Amount() float64 {
	return float64(m.cents) / 100
}

func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}
	return m.currency
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	if other.cents > math.MaxInt64-m.cents {
		return Money{}, ErrAmountOutOfRange
	}
	return NewMoney(m.cents+other.cents, m.Currency())
}

// Subtract fails with ErrNegativeAmount when other exceeds m.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.cents-other.cents, m.Currency())
}

func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.cents > other.cents, nil
}

func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.sameCurrency(other); err != nil {
		return false, err
	}
	return m.cents < other.cents, nil
}

// validate rejects a Money that did not come from a constructor.
func (m Money) validate() error {
	if m.currency == "" {
		return ErrEmptyCurrency
	}
	if m.cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents && m.Currency() == other.Currency()
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.Amount(), m.Currency())
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency() != other.Currency() {
		return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	return nil
}
