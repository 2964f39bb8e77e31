package grouppurchase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

var testNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// contribute adds amounts in order, one contributor per amount
func contribute(t *testing.T, o *Order, amounts ...string) {
	t.Helper()
	for i, amount := range amounts {
		require.NoError(t, o.Contribute(domain.ParticipantID(i), decimal.RequireFromString(amount)))
	}
}

func TestBook_ExecuteWhenThresholdMet(t *testing.T) {
	// ARRANGE
	book := NewBook(DefaultConfig(), testNamespace)
	order := book.Current(1)
	contribute(t, order, "10", "20", "30", "40", "100")

	// ACT
	s, err := book.Evaluate(order)

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, OrderExecuted, s.State)
	assert.Equal(t, OrderExecuted, order.State)
	assert.NoError(t, s.Shortfall)
	assert.Equal(t, "200", s.Volume.String())
	require.Len(t, s.Payouts, 5)
	assert.Equal(t, "1.5", s.Payouts[0].Amount.String())
	assert.Equal(t, "15", s.Payouts[4].Amount.String())
	assert.Equal(t, "30", s.Total().String())
	assert.Equal(t, "30", book.SavingsDistributed().String())
	assert.Equal(t, 1, book.Executed())
}

func TestBook_RefundBelowThreshold(t *testing.T) {
	book := NewBook(DefaultConfig(), testNamespace)
	order := book.Current(1)
	contribute(t, order, "12.34", "5", "7.5", "1")

	s, err := book.Evaluate(order)

	require.NoError(t, err)
	assert.Equal(t, OrderRefunded, s.State)
	require.Error(t, s.Shortfall)
	assert.ErrorIs(t, s.Shortfall, domain.ErrInsufficientParticipants)
	assert.Contains(t, s.Shortfall.Error(), order.ID)

	// Every contribution comes back unchanged
	require.Len(t, s.Payouts, 4)
	for _, p := range s.Payouts {
		assert.True(t, p.Amount.Equal(order.ContributionOf(p.ParticipantID)), p.ParticipantID)
	}
	assert.True(t, s.Total().Equal(s.Volume))
	assert.True(t, book.SavingsDistributed().IsZero())
	assert.Equal(t, 1, book.Refunded())
}

func TestOrder_RepeatContributionsCountOnce(t *testing.T) {
	book := NewBook(DefaultConfig(), testNamespace)
	order := book.Current(1)
	for i := 0; i < 6; i++ {
		require.NoError(t, order.Contribute("M_0", decimal.NewFromInt(1)))
	}

	assert.Equal(t, 1, order.ContributorCount())
	assert.Equal(t, "6", order.ContributionOf("M_0").String())

	s, err := book.Evaluate(order)
	require.NoError(t, err)
	assert.Equal(t, OrderRefunded, s.State)
}

func TestOrder_ClosedOrderRejectsContributions(t *testing.T) {
	book := NewBook(DefaultConfig(), testNamespace)
	order := book.Current(1)
	_, err := book.Evaluate(order)
	require.NoError(t, err)

	err = order.Contribute("M_0", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)

	_, err = book.Evaluate(order)
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}

func TestBook_TickOnBoundary(t *testing.T) {
	book := NewBook(DefaultConfig(), testNamespace)
	first := book.Current(1)

	for week := 1; week < DefaultEvaluationIntervalWeeks; week++ {
		s, err := book.Tick(week)
		require.NoError(t, err)
		assert.Nil(t, s, "week %d", week)
	}

	s, err := book.Tick(DefaultEvaluationIntervalWeeks)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, first.ID, s.OrderID)

	second := book.Current(DefaultEvaluationIntervalWeeks + 1)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBook_DeterministicIDs(t *testing.T) {
	a := NewBook(DefaultConfig(), testNamespace).Current(1)
	b := NewBook(DefaultConfig(), testNamespace).Current(1)
	c := NewBook(DefaultConfig(), uuid.New()).Current(1)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
}
