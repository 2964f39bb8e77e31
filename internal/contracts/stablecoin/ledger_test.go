package stablecoin

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestLedger_MintBurn(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Mint("M_0", d("100")))
	require.NoError(t, ledger.Burn("M_0", domain.CategoryGroupBuy, d("30")))
	require.NoError(t, ledger.Burn("M_0", domain.CategoryExternal, d("20.5")))

	assert.Equal(t, "49.5", ledger.BalanceOf("M_0").String())
	assert.Equal(t, "100", ledger.MintedBy("M_0").String())
	assert.Equal(t, "50.5", ledger.BurnedBy("M_0").String())
	assert.Equal(t, "30", ledger.CategoryTotal(domain.CategoryGroupBuy).String())
	assert.Equal(t, "20.5", ledger.CategoryTotal(domain.CategoryExternal).String())
	assert.True(t, ledger.CategoryTotal(domain.CategoryLocalProduction).IsZero())
}

func TestLedger_BurnExceedingBalance(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Mint("M_1", d("10")))

	err := ledger.Burn("M_1", domain.CategoryExternal, d("10.01"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
	assert.Contains(t, err.Error(), "M_1")
	assert.Equal(t, "10", ledger.BalanceOf("M_1").String())
	assert.True(t, ledger.TotalBurned().IsZero())
	assert.Empty(t, ledger.CategoryTotals())
}

func TestLedger_BurnWithoutMint(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Burn("nobody", domain.CategoryExternal, d("1"))
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)
}

func TestLedger_TopUp(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Mint("M_0", d("4")))

	minted, err := ledger.TopUp("M_0", d("10"))
	require.NoError(t, err)
	assert.Equal(t, "6", minted.String())

	minted, err = ledger.TopUp("M_0", d("3"))
	require.NoError(t, err)
	assert.True(t, minted.IsZero())
	assert.Equal(t, "10", ledger.BalanceOf("M_0").String())
}

func TestLedger_WeeklyTickPeg(t *testing.T) {
	ledger := NewLedger()
	spends := []Spend{
		{ParticipantID: "M_0", ByCategory: []CategoryAmount{
			{Category: domain.CategoryGroupBuy, Amount: d("12.5")},
			{Category: domain.CategoryLocalProduction, Amount: d("12.5")},
			{Category: domain.CategoryExternal, Amount: d("40")},
		}},
		{ParticipantID: "M_1", ByCategory: []CategoryAmount{
			{Category: domain.CategoryExternal, Amount: d("70")},
		}},
	}

	for week := 0; week < 3; week++ {
		result, err := ledger.WeeklyTick(spends)
		require.NoError(t, err)
		assert.True(t, result.Minted.Equal(result.Burned))
	}

	assert.Equal(t, "405", ledger.TotalMinted().String())
	assert.True(t, ledger.TotalMinted().Equal(ledger.TotalBurned()))
	for _, id := range []string{"M_0", "M_1"} {
		assert.False(t, ledger.BurnedBy(id).GreaterThan(ledger.MintedBy(id)), id)
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "12.35", Amount(12.345678).String())
	assert.Equal(t, "0", Amount(0.001).String())
}
