// Package stablecoin implements the 1:1 pegged spending token.
// Every unit in circulation was minted against cash and is burned when spent,
// so a participant's burns can never exceed their mints.
package stablecoin

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

type account struct {
	minted decimal.Decimal
	burned decimal.Decimal
}

func (a account) balance() decimal.Decimal {
	return a.minted.Sub(a.burned)
}

// Ledger tracks stablecoin mints and categorized burns for one run
type Ledger struct {
	accounts   map[string]*account
	categories map[domain.SpendCategory]decimal.Decimal
	minted     decimal.Decimal
	burned     decimal.Decimal
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		accounts:   make(map[string]*account),
		categories: make(map[domain.SpendCategory]decimal.Decimal),
		minted:     decimal.Zero,
		burned:     decimal.Zero,
	}
}

func (l *Ledger) get(id string) *account {
	a, ok := l.accounts[id]
	if !ok {
		a = &account{minted: decimal.Zero, burned: decimal.Zero}
		l.accounts[id] = a
	}
	return a
}

// Mint issues amount to id against the same amount of cash
func (l *Ledger) Mint(id string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: mint %s to %s", domain.ErrNonPositiveAmount, amount, id)
	}
	a := l.get(id)
	a.minted = a.minted.Add(amount)
	l.minted = l.minted.Add(amount)
	return nil
}

// TopUp mints whatever id is missing to hold at least amount.
// It returns the amount minted, zero when the balance already covers it.
func (l *Ledger) TopUp(id string, amount decimal.Decimal) (decimal.Decimal, error) {
	missing := amount.Sub(l.BalanceOf(id))
	if !missing.IsPositive() {
		return decimal.Zero, nil
	}
	if err := l.Mint(id, missing); err != nil {
		return decimal.Zero, err
	}
	return missing, nil
}

// Burn spends amount from id in category. A burn larger than the balance is
// rejected with ErrNegativeBalance and leaves the ledger unchanged.
func (l *Ledger) Burn(id string, category domain.SpendCategory, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: burn %s from %s", domain.ErrNonPositiveAmount, amount, id)
	}
	a := l.get(id)
	if a.balance().LessThan(amount) {
		return fmt.Errorf("%w: %s has %s, burn of %s (%s)", domain.ErrNegativeBalance, id, a.balance(), amount, category)
	}
	a.burned = a.burned.Add(amount)
	l.burned = l.burned.Add(amount)
	l.categories[category] = l.categoryTotal(category).Add(amount)
	return nil
}

func (l *Ledger) categoryTotal(category domain.SpendCategory) decimal.Decimal {
	if total, ok := l.categories[category]; ok {
		return total
	}
	return decimal.Zero
}

// BalanceOf returns minted minus burned for id
func (l *Ledger) BalanceOf(id string) decimal.Decimal {
	a, ok := l.accounts[id]
	if !ok {
		return decimal.Zero
	}
	return a.balance()
}

// MintedBy returns the cumulative amount minted to id
func (l *Ledger) MintedBy(id string) decimal.Decimal {
	if a, ok := l.accounts[id]; ok {
		return a.minted
	}
	return decimal.Zero
}

// BurnedBy returns the cumulative amount burned by id
func (l *Ledger) BurnedBy(id string) decimal.Decimal {
	if a, ok := l.accounts[id]; ok {
		return a.burned
	}
	return decimal.Zero
}

// CategoryTotal returns cumulative burns in category
func (l *Ledger) CategoryTotal(category domain.SpendCategory) decimal.Decimal {
	return l.categoryTotal(category)
}

// CategoryTotals returns a copy of all cumulative category burns
func (l *Ledger) CategoryTotals() map[domain.SpendCategory]decimal.Decimal {
	out := make(map[domain.SpendCategory]decimal.Decimal, len(l.categories))
	for k, v := range l.categories {
		out[k] = v
	}
	return out
}

// TotalMinted returns all stablecoin ever minted
func (l *Ledger) TotalMinted() decimal.Decimal {
	return l.minted
}

// TotalBurned returns all stablecoin ever burned
func (l *Ledger) TotalBurned() decimal.Decimal {
	return l.burned
}

// Spend describes one participant's categorized purchases for a week
type Spend struct {
	ParticipantID string
	ByCategory    []CategoryAmount
}

// CategoryAmount is an amount spent in one category
type CategoryAmount struct {
	Category domain.SpendCategory
	Amount   decimal.Decimal
}

// Total sums the spend across categories
func (s Spend) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.ByCategory {
		total = total.Add(c.Amount)
	}
	return total
}

// TickResult reports one week of stablecoin activity
type TickResult struct {
	Minted decimal.Decimal
	Burned decimal.Decimal
}

// WeeklyTick mints each participant's spend 1:1 and burns it by category.
// Balances left over from refunds are spent before anything new is minted.
func (l *Ledger) WeeklyTick(spends []Spend) (TickResult, error) {
	result := TickResult{Minted: decimal.Zero, Burned: decimal.Zero}
	for _, s := range spends {
		minted, err := l.TopUp(s.ParticipantID, s.Total())
		if err != nil {
			return result, err
		}
		result.Minted = result.Minted.Add(minted)
		for _, c := range s.ByCategory {
			if err := l.Burn(s.ParticipantID, c.Category, c.Amount); err != nil {
				return result, err
			}
			result.Burned = result.Burned.Add(c.Amount)
		}
	}
	return result, nil
}

// Amount converts a cash amount to stablecoin precision
func Amount(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value).Round(CurrencyPrecision)
}
