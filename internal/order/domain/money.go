package domain

import "github.com/shopspring/decimal"

const defaultCurrency = "BRL"

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = defaultCurrency
	}
	return Money{Amount: amount, Currency: currency}
}

func Zero(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) Sub(other Money) Money {
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}
}
