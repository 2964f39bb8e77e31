package governance

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

type staticPower map[string]float64

func (s staticPower) VotingPowerOf(owner string) float64 {
	return s[owner]
}

func newTestBoard(power staticPower) *Board {
	return NewBoard(DefaultConfig(), power, uuid.NewSHA1(uuid.NameSpaceOID, []byte("governance-test")))
}

func activeProposal(t *testing.T, b *Board, voters ...string) *Proposal {
	t.Helper()
	p := b.Draft(1, "test")
	require.NoError(t, b.Activate(p, 1, voters))
	return p
}

func TestBoard_QuadraticCost(t *testing.T) {
	board := newTestBoard(staticPower{"alice": 10})
	p := activeProposal(t, board, "alice")

	// 3 votes cost 9 of 10
	require.NoError(t, board.Vote(p.ID, "alice", 3, true))
	assert.Equal(t, 9.0, p.SpentPower("alice"))

	// A 4th vote would bring cumulative cost to 16
	err := board.Vote(p.ID, "alice", 1, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientVotingPower)
	assert.Contains(t, err.Error(), "alice")
	assert.Equal(t, 9.0, p.SpentPower("alice"))
	assert.Equal(t, 3, p.VotesFor)
}

func TestBoard_CumulativeCostNeverExceedsBudget(t *testing.T) {
	power := staticPower{"bob": 30}
	board := newTestBoard(power)
	p := activeProposal(t, board, "bob")

	for i := 0; i < 10; i++ {
		_ = board.Vote(p.ID, "bob", 1, false)
		assert.LessOrEqual(t, p.SpentPower("bob"), power["bob"])
	}
	assert.Equal(t, 5, p.VotesAgainst)
}

func TestBoard_HugeVoteCountsRejected(t *testing.T) {
	board := newTestBoard(staticPower{"mallory": 1, "eve": 1})
	p := activeProposal(t, board, "mallory", "eve")

	// 2^32 squared wraps to zero in int arithmetic
	err := board.Vote(p.ID, "mallory", 1<<32, true)
	assert.ErrorIs(t, err, domain.ErrInsufficientVotingPower)

	require.NoError(t, board.Vote(p.ID, "eve", 1, true))
	err = board.Vote(p.ID, "eve", math.MaxInt, true)
	assert.ErrorIs(t, err, domain.ErrInsufficientVotingPower)

	assert.Equal(t, 1, p.VotesFor)
	assert.Zero(t, p.SpentPower("mallory"))
	assert.LessOrEqual(t, p.SpentPower("eve"), 1.0)
}

func TestBoard_SpentPowerLargeBallot(t *testing.T) {
	board := newTestBoard(staticPower{"whale": 1 << 62})
	p := activeProposal(t, board, "whale")

	require.NoError(t, board.Vote(p.ID, "whale", 1<<31, true))

	assert.InDelta(t, float64(1<<62), p.SpentPower("whale"), 1)
}

func TestBoard_VoteRejections(t *testing.T) {
	board := newTestBoard(staticPower{"alice": 25, "bob": 4})
	p := activeProposal(t, board, "alice", "bob")
	require.NoError(t, board.Vote(p.ID, "alice", 2, true))

	tests := []struct {
		name     string
		id       string
		voter    string
		votes    int
		inFavour bool
		wantErr  error
	}{
		{"switching direction", p.ID, "alice", 1, false, domain.ErrConflictingVote},
		{"zero votes", p.ID, "bob", 0, true, domain.ErrNonPositiveAmount},
		{"no power", p.ID, "carol", 1, true, domain.ErrInsufficientVotingPower},
		{"unknown proposal", "missing", "bob", 1, true, domain.ErrProposalNotActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := board.Vote(tt.id, tt.voter, tt.votes, tt.inFavour)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 2, p.VotesFor)
	assert.Zero(t, p.VotesAgainst)
}

func TestBoard_DraftRejectsVotes(t *testing.T) {
	board := newTestBoard(staticPower{"alice": 25})
	p := board.Draft(1, "draft")

	err := board.Vote(p.ID, "alice", 1, true)
	assert.ErrorIs(t, err, domain.ErrProposalNotActive)
}

func TestBoard_Close(t *testing.T) {
	tests := []struct {
		name  string
		power staticPower
		votes map[string]int // positive for, negative against
		want  ProposalState
	}{
		{
			name:  "no votes expires",
			power: staticPower{"a": 100},
			want:  ProposalExpired,
		},
		{
			name:  "quorum and majority passes",
			power: staticPower{"a": 100, "b": 50},
			votes: map[string]int{"a": 10, "b": -7},
			want:  ProposalPassed,
		},
		{
			name:  "majority against fails",
			power: staticPower{"a": 100, "b": 50},
			votes: map[string]int{"a": -10, "b": 7},
			want:  ProposalFailed,
		},
		{
			name:  "below quorum fails",
			power: staticPower{"a": 900, "b": 100}, // quorum needs 100 votes
			votes: map[string]int{"b": 10},
			want:  ProposalFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(tt.power)
			p := activeProposal(t, board, "a", "b")
			for _, voter := range []string{"a", "b"} {
				v, ok := tt.votes[voter]
				if !ok {
					continue
				}
				inFavour := v > 0
				if v < 0 {
					v = -v
				}
				require.NoError(t, board.Vote(p.ID, voter, v, inFavour))
			}

			require.NoError(t, board.Close(p))
			assert.Equal(t, tt.want, p.State)

			assert.ErrorIs(t, board.Close(p), domain.ErrProposalNotActive)
		})
	}
}

func TestBoard_WeeklyTickLifecycle(t *testing.T) {
	power := staticPower{}
	participants := make([]*domain.Participant, 30)
	for i := range participants {
		participants[i] = &domain.Participant{ID: domain.ParticipantID(i)}
		power[participants[i].ID] = float64(4 + i)
	}
	board := newTestBoard(power)
	rng := utils.NewRand(21)

	var opened *Proposal
	for week := 1; week <= DefaultProposalIntervalWeeks+DefaultVotingWindowWeeks; week++ {
		result, err := board.WeeklyTick(week, participants, rng)
		require.NoError(t, err)
		if result.Opened != nil {
			opened = result.Opened
			assert.Equal(t, DefaultProposalIntervalWeeks, week)
			assert.Equal(t, ProposalActive, opened.State)
		}
	}

	require.NotNil(t, opened)
	assert.NotEqual(t, ProposalActive, opened.State)
	assert.Equal(t, DefaultProposalIntervalWeeks+DefaultVotingWindowWeeks-1, opened.Deadline)
	assert.Equal(t, 30, opened.EligibleCount)
	assert.Greater(t, opened.VotesCast(), 0)
	assert.Greater(t, board.LastTurnout(), 0.0)
	assert.Equal(t, 1, board.Passed()+board.Failed()+board.Expired())

	for _, p := range participants {
		assert.LessOrEqual(t, opened.SpentPower(p.ID), opened.Budget(p.ID)+powerTolerance, p.ID)
	}
}

func TestBoard_NoEligiblePowerExpires(t *testing.T) {
	board := newTestBoard(staticPower{})
	participants := []*domain.Participant{{ID: "M_0"}, {ID: "M_1"}}
	rng := utils.NewRand(1)

	for week := DefaultProposalIntervalWeeks; week < DefaultProposalIntervalWeeks+DefaultVotingWindowWeeks; week++ {
		_, err := board.WeeklyTick(week, participants, rng)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, board.Expired())
}
