package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used for sums over an empty cart.
var DefaultCurrency = currency.EUR

var ErrCurrencyMismatch = errors.New("currency mismatch")

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// symbols maps display prefixes to currency units.
var symbols = []struct {
	prefix string
	unit   currency.Unit
}{
	{"€", currency.EUR},
	{"$", currency.USD},
	{"£", currency.GBP},
}

func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

// ParseMoney parses a display price such as "€25.00" or an ISO form such
// as "EUR 25.00".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("price is empty")
	}

	for _, sym := range symbols {
		if rest, ok := strings.CutPrefix(s, sym.prefix); ok {
			return parseAmount(strings.TrimSpace(rest), sym.unit)
		}
	}

	code, rest, ok := strings.Cut(s, " ")
	if !ok {
		return Money{}, fmt.Errorf("price[%s] has no currency", s)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return parseAmount(strings.TrimSpace(rest), unit)
}

func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func parseAmount(s string, unit currency.Unit) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("decimal.NewFromString[%s]: %w", s, err)
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("amount[%s] is negative", s)
	}

	return Money{Amount: amount, Currency: unit}, nil
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

// String renders the amount with two decimals behind the currency symbol,
// falling back to the ISO code for currencies without a known symbol.
func (m Money) String() string {
	amount := m.Amount.StringFixed(2)

	for _, sym := range symbols {
		if sym.unit == m.Currency {
			return sym.prefix + amount
		}
	}

	return m.Currency.String() + " " + amount
}
