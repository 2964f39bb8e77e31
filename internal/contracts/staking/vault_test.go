package staking

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/contracts/reward"
	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

func setupVault(t *testing.T, balances map[string]int64) (*Vault, *reward.Ledger) {
	t.Helper()
	tokens := reward.NewLedger(reward.DefaultConfig())
	for _, id := range []string{"M_0", "M_1", "M_2"} {
		tokens.Open(id)
		if amount, ok := balances[id]; ok {
			require.NoError(t, tokens.Mint(id, decimal.NewFromInt(amount)))
		}
	}
	return NewVault(DefaultConfig(), tokens, uuid.NewSHA1(uuid.NameSpaceOID, []byte("staking-test"))), tokens
}

func TestConfig_APR(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		lockYears int
		want      float64
	}{
		{1, 0.02},
		{2, 0.03},
		{3, 0.04},
		{4, 0.05},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, cfg.APR(tt.lockYears), 1e-12, "lock %d", tt.lockYears)
	}
}

func TestVotingPower_Monotonic(t *testing.T) {
	amounts := []int64{1, 4, 9, 100, 1000}
	for lock := MinLockYears; lock <= MaxLockYears; lock++ {
		prev := 0.0
		for _, a := range amounts {
			vp := VotingPower(decimal.NewFromInt(a), lock)
			assert.Greater(t, vp, prev, "amount %d lock %d", a, lock)
			prev = vp
		}
	}

	for _, a := range amounts {
		prev := 0.0
		for lock := MinLockYears; lock <= MaxLockYears; lock++ {
			vp := VotingPower(decimal.NewFromInt(a), lock)
			assert.Greater(t, vp, prev, "amount %d lock %d", a, lock)
			prev = vp
		}
	}

	assert.InDelta(t, 3.0, VotingPower(decimal.NewFromInt(9), 1), 1e-12)
	assert.InDelta(t, 7.5, VotingPower(decimal.NewFromInt(9), 4), 1e-12)
	assert.Zero(t, VotingPower(decimal.Zero, 2))
}

func TestVault_StakeValidation(t *testing.T) {
	vault, tokens := setupVault(t, map[string]int64{"M_0": 10})

	tests := []struct {
		name    string
		amount  int64
		lock    int
		freq    Frequency
		wantErr error
	}{
		{"lock too short", 5, 0, Yearly, domain.ErrInvalidConfiguration},
		{"lock too long", 5, 5, Yearly, domain.ErrInvalidConfiguration},
		{"unknown frequency", 5, 2, Frequency("daily"), domain.ErrInvalidConfiguration},
		{"more than balance", 11, 2, Yearly, domain.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vault.Stake("M_0", decimal.NewFromInt(tt.amount), tt.lock, tt.freq, 1)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "10", tokens.BalanceOf("M_0").String())
			assert.Zero(t, vault.ActivePositions())
		})
	}
}

func TestVault_YearlyCompoundingAndWithdraw(t *testing.T) {
	// ARRANGE
	vault, tokens := setupVault(t, map[string]int64{"M_0": 150})
	pos, err := vault.Stake("M_0", decimal.NewFromInt(100), 2, Yearly, 0)
	require.NoError(t, err)
	powerAtStake := pos.VotingPower()

	// ACT / ASSERT: locked for two years
	_, err = vault.WeeklyTick(52, nil, utils.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, "3", pos.Accrued.String())
	assert.Equal(t, powerAtStake, pos.VotingPower())

	_, _, err = vault.Withdraw(pos.ID, 103)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockedPosition)
	assert.Equal(t, "50", tokens.BalanceOf("M_0").String())
	assert.Equal(t, "100", tokens.BalanceOf(VaultAccount).String())
	assert.False(t, pos.Closed)

	result, err := vault.WeeklyTick(104, nil, utils.NewRand(1))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Matured)
	assert.Equal(t, "6.09", result.Interest.String())
	assert.Equal(t, "156.09", tokens.BalanceOf("M_0").String())
	assert.True(t, tokens.BalanceOf(VaultAccount).IsZero())
	assert.True(t, tokens.TotalSupply().Equal(tokens.SumBalances()))
	assert.Equal(t, "6.09", vault.InterestPaid().String())
	assert.True(t, pos.Closed)
	assert.Zero(t, vault.VotingPowerOf("M_0"))

	_, _, err = vault.Withdraw(pos.ID, 200)
	assert.ErrorIs(t, err, domain.ErrPositionNotFound)
}

func TestVault_CompoundingSchedules(t *testing.T) {
	tests := []struct {
		freq    Frequency
		periods float64
	}{
		{Weekly, 52},
		{Monthly, 12},
		{Yearly, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			vault, _ := setupVault(t, map[string]int64{"M_1": 1000})
			pos, err := vault.Stake("M_1", decimal.NewFromInt(1000), 1, tt.freq, 0)
			require.NoError(t, err)

			for week := 1; week <= 51; week++ {
				_, err := vault.WeeklyTick(week, nil, utils.NewRand(1))
				require.NoError(t, err)
			}
			vault.accrue(pos, 52)

			want := 1000 * (math.Pow(1+0.02/tt.periods, tt.periods) - 1)
			assert.InDelta(t, want, pos.Accrued.InexactFloat64(), 1e-4)
		})
	}
}

func TestVault_AccruedNeverDecreases(t *testing.T) {
	vault, _ := setupVault(t, map[string]int64{"M_0": 100})
	pos, err := vault.Stake("M_0", decimal.NewFromInt(100), 3, Monthly, 0)
	require.NoError(t, err)

	prev := decimal.Zero
	for week := 1; week < pos.MaturityWeek(); week++ {
		vault.accrue(pos, week)
		assert.False(t, pos.Accrued.LessThan(prev), "week %d", week)
		prev = pos.Accrued
	}
}

func TestVault_AutoStake(t *testing.T) {
	vault, tokens := setupVault(t, map[string]int64{"M_0": 20, "M_1": 4})
	vault.cfg.StakeProbability = 1
	participants := []*domain.Participant{{ID: "M_0"}, {ID: "M_1"}, {ID: "M_2"}}

	result, err := vault.WeeklyTick(10, participants, utils.NewRand(3))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Opened)
	assert.Equal(t, "10", result.Staked.String())
	assert.Equal(t, "10", tokens.BalanceOf("M_0").String())
	assert.Equal(t, "4", tokens.BalanceOf("M_1").String())

	h := vault.HoldingOf("M_0")
	assert.Equal(t, "10", h.Staked.String())
	assert.GreaterOrEqual(t, h.LockYears, MinLockYears)
	assert.LessOrEqual(t, h.LockYears, MaxLockYears)
	assert.InDelta(t, VotingPower(decimal.NewFromInt(10), h.LockYears), h.VotingPower, 1e-12)

	// An open position blocks a second automatic stake
	result, err = vault.WeeklyTick(11, participants, utils.NewRand(4))
	require.NoError(t, err)
	assert.Zero(t, result.Opened)
	assert.Equal(t, 1, vault.ActivePositions())
	assert.Equal(t, "10", vault.TotalStaked().String())
}
