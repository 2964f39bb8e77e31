// Package grouppurchase pools participant contributions into bulk orders.
// An order either executes in full, paying savings proportional to each
// contribution, or refunds every contribution unchanged.
package grouppurchase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

// Config controls order sizing and evaluation
type Config struct {
	MinContributors         int     `json:"min_contributors" validate:"gte=1"`
	SavingsRate             float64 `json:"savings_rate" validate:"gte=0,lte=1"`
	ContributionShare       float64 `json:"contribution_share" validate:"gte=0,lte=1"`
	JoinProbability         float64 `json:"join_probability" validate:"gte=0,lte=1"`
	EvaluationIntervalWeeks int     `json:"evaluation_interval_weeks" validate:"gte=1"`
}

// DefaultConfig returns the standard order parameters
func DefaultConfig() Config {
	return Config{
		MinContributors:         DefaultMinContributors,
		SavingsRate:             DefaultSavingsRate,
		ContributionShare:       DefaultContributionShare,
		JoinProbability:         DefaultJoinProbability,
		EvaluationIntervalWeeks: DefaultEvaluationIntervalWeeks,
	}
}

// Order is one pooled purchase
type Order struct {
	ID         string
	OpenedWeek int
	State      OrderState

	contributors  []string
	contributions map[string]decimal.Decimal
}

// Contribute adds amount from participant to an open order
func (o *Order) Contribute(participantID string, amount decimal.Decimal) error {
	if o.State != OrderOpen {
		return fmt.Errorf("%w: order %s is %s", domain.ErrOrderNotOpen, o.ID, o.State)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: contribution %s to order %s", domain.ErrNonPositiveAmount, amount, o.ID)
	}
	prev, ok := o.contributions[participantID]
	if !ok {
		o.contributors = append(o.contributors, participantID)
		prev = decimal.Zero
	}
	o.contributions[participantID] = prev.Add(amount)
	return nil
}

// ContributorCount returns the number of distinct contributors
func (o *Order) ContributorCount() int {
	return len(o.contributors)
}

// ContributionOf returns what participant has put into the order
func (o *Order) ContributionOf(participantID string) decimal.Decimal {
	if c, ok := o.contributions[participantID]; ok {
		return c
	}
	return decimal.Zero
}

// Volume sums all contributions
func (o *Order) Volume() decimal.Decimal {
	total := decimal.Zero
	for _, id := range o.contributors {
		total = total.Add(o.contributions[id])
	}
	return total
}

// Payout is money returned to a contributor at settlement
type Payout struct {
	ParticipantID string
	Amount        decimal.Decimal
}

// Settlement is the outcome of evaluating an order.
// Refunded settlements carry Shortfall wrapping ErrInsufficientParticipants.
type Settlement struct {
	OrderID   string
	State     OrderState
	Volume    decimal.Decimal
	Payouts   []Payout
	Shortfall error
}

// Total sums all payouts
func (s Settlement) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payouts {
		total = total.Add(p.Amount)
	}
	return total
}

// Book owns the orders of one run
type Book struct {
	cfg       Config
	namespace uuid.UUID
	current   *Order
	seq       int
	executed  int
	refunded  int
	savings   decimal.Decimal
}

// NewBook creates an order book whose order IDs derive from namespace
func NewBook(cfg Config, namespace uuid.UUID) *Book {
	return &Book{cfg: cfg, namespace: namespace, savings: decimal.Zero}
}

// Config returns the book's configuration
func (b *Book) Config() Config {
	return b.cfg
}

// Current returns the open order, opening one for week if needed
func (b *Book) Current(week int) *Order {
	if b.current == nil {
		b.seq++
		id := uuid.NewSHA1(b.namespace, []byte(fmt.Sprintf(orderNameFormat, b.seq)))
		b.current = &Order{
			ID:            id.String(),
			OpenedWeek:    week,
			State:         OrderOpen,
			contributions: make(map[string]decimal.Decimal),
		}
	}
	return b.current
}

// Due reports whether week is an evaluation boundary
func (b *Book) Due(week int) bool {
	return week%b.cfg.EvaluationIntervalWeeks == 0
}

// Evaluate settles o. No partial execution: with fewer than the minimum
// contributors every contribution is refunded as-is.
func (b *Book) Evaluate(o *Order) (Settlement, error) {
	if o.State != OrderOpen {
		return Settlement{}, fmt.Errorf("%w: order %s is %s", domain.ErrOrderNotOpen, o.ID, o.State)
	}

	s := Settlement{OrderID: o.ID, Volume: o.Volume()}
	if o.ContributorCount() < b.cfg.MinContributors {
		o.State = OrderRefunded
		s.State = OrderRefunded
		s.Shortfall = fmt.Errorf("%w: order %s has %d of %d contributors",
			domain.ErrInsufficientParticipants, o.ID, o.ContributorCount(), b.cfg.MinContributors)
		for _, id := range o.contributors {
			s.Payouts = append(s.Payouts, Payout{ParticipantID: id, Amount: o.contributions[id]})
		}
		b.refunded++
	} else {
		o.State = OrderExecuted
		s.State = OrderExecuted
		rate := decimal.NewFromFloat(b.cfg.SavingsRate)
		for _, id := range o.contributors {
			saving := o.contributions[id].Mul(rate).Round(2)
			if saving.IsPositive() {
				s.Payouts = append(s.Payouts, Payout{ParticipantID: id, Amount: saving})
			}
		}
		b.savings = b.savings.Add(s.Total())
		b.executed++
	}

	if b.current == o {
		b.current = nil
	}
	return s, nil
}

// Tick evaluates the open order when week is a boundary.
// It returns nil when nothing was settled.
func (b *Book) Tick(week int) (*Settlement, error) {
	if !b.Due(week) || b.current == nil {
		return nil, nil
	}
	s, err := b.Evaluate(b.current)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Executed returns the number of executed orders
func (b *Book) Executed() int { return b.executed }

// Refunded returns the number of refunded orders
func (b *Book) Refunded() int { return b.refunded }

// SavingsDistributed returns cumulative savings paid by executed orders
func (b *Book) SavingsDistributed() decimal.Decimal { return b.savings }
