// Package governance runs quadratic votes over staked voting power.
// Casting v votes on a proposal costs v squared, cumulatively per voter.
package governance

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/osse101/CoopTokenSim_Go/internal/domain"
	"github.com/osse101/CoopTokenSim_Go/internal/utils"
)

// PowerSource reports the voting power an account holds
type PowerSource interface {
	VotingPowerOf(owner string) float64
}

// Config controls proposal cadence and simulated voter behaviour
type Config struct {
	ProposalIntervalWeeks int     `json:"proposal_interval_weeks" validate:"gte=1"`
	VotingWindowWeeks     int     `json:"voting_window_weeks" validate:"gte=1"`
	QuorumFraction        float64 `json:"quorum_fraction" validate:"gte=0,lte=1"`
	TurnoutProbability    float64 `json:"turnout_probability" validate:"gte=0,lte=1"`
	SupportProbability    float64 `json:"support_probability" validate:"gte=0,lte=1"`
	TopUpProbability      float64 `json:"top_up_probability" validate:"gte=0,lte=1"`
}

// DefaultConfig returns the standard governance parameters
func DefaultConfig() Config {
	return Config{
		ProposalIntervalWeeks: DefaultProposalIntervalWeeks,
		VotingWindowWeeks:     DefaultVotingWindowWeeks,
		QuorumFraction:        DefaultQuorumFraction,
		TurnoutProbability:    DefaultTurnoutProbability,
		SupportProbability:    DefaultSupportProbability,
		TopUpProbability:      DefaultTopUpProbability,
	}
}

type ballot struct {
	votes    int
	inFavour bool
}

// Proposal is one governance decision
type Proposal struct {
	ID           string
	Title        string
	CreatedWeek  int
	Deadline     int
	State        ProposalState
	VotesFor     int
	VotesAgainst int

	// Voting power budgets captured at activation
	EligiblePower float64
	EligibleCount int
	budgets       map[string]float64
	ballots       map[string]*ballot
	voterOrder    []string
}

// VotesCast is the total number of votes on the proposal
func (p *Proposal) VotesCast() int {
	return p.VotesFor + p.VotesAgainst
}

// QuorumMet reports whether votes cast reach fraction of eligible power
func (p *Proposal) QuorumMet(fraction float64) bool {
	return p.VotesCast() > 0 && float64(p.VotesCast()) >= fraction*p.EligiblePower
}

// Turnout is the share of eligible voters who voted
func (p *Proposal) Turnout() float64 {
	if p.EligibleCount == 0 {
		return 0
	}
	return float64(len(p.voterOrder)) / float64(p.EligibleCount)
}

// SpentPower returns the cumulative cost of voter's votes on the proposal
func (p *Proposal) SpentPower(voter string) float64 {
	b, ok := p.ballots[voter]
	if !ok {
		return 0
	}
	v := float64(b.votes)
	return v * v
}

// Budget returns the voting power voter held when the proposal opened
func (p *Proposal) Budget(voter string) float64 {
	return p.budgets[voter]
}

// Board owns the proposals of one run
type Board struct {
	cfg       Config
	power     PowerSource
	namespace uuid.UUID
	proposals []*Proposal
	byID      map[string]*Proposal

	passed   int
	failed   int
	expired  int
	rejected int
	turnout  float64
}

// NewBoard creates a board reading voting power from power
func NewBoard(cfg Config, power PowerSource, namespace uuid.UUID) *Board {
	return &Board{
		cfg:       cfg,
		power:     power,
		namespace: namespace,
		byID:      make(map[string]*Proposal),
	}
}

// Draft creates a proposal that does not yet accept votes
func (b *Board) Draft(week int, title string) *Proposal {
	id := uuid.NewSHA1(b.namespace, []byte(fmt.Sprintf(proposalNameFormat, len(b.proposals)+1)))
	p := &Proposal{
		ID:          id.String(),
		Title:       title,
		CreatedWeek: week,
		State:       ProposalDraft,
		budgets:     make(map[string]float64),
		ballots:     make(map[string]*ballot),
	}
	b.proposals = append(b.proposals, p)
	b.byID[p.ID] = p
	return p
}

// Activate opens voting for the window starting at week.
// Each voter's budget is their voting power at this moment.
func (b *Board) Activate(p *Proposal, week int, voters []string) error {
	if p.State != ProposalDraft {
		return fmt.Errorf("%w: proposal %s is %s, cannot activate", domain.ErrProposalNotActive, p.ID, p.State)
	}
	for _, voter := range voters {
		power := b.power.VotingPowerOf(voter)
		if power <= 0 {
			continue
		}
		p.budgets[voter] = power
		p.EligiblePower += power
		p.EligibleCount++
	}
	p.State = ProposalActive
	p.Deadline = week + b.cfg.VotingWindowWeeks - 1
	return nil
}

// Vote casts votes on a proposal for or against. The cumulative cost
// (total votes squared) may not exceed the voter's budget; a rejected vote
// changes nothing.
func (b *Board) Vote(proposalID, voter string, votes int, inFavour bool) error {
	p, ok := b.byID[proposalID]
	if !ok {
		return fmt.Errorf("%w: unknown proposal %s", domain.ErrProposalNotActive, proposalID)
	}
	if p.State != ProposalActive {
		return fmt.Errorf("%w: proposal %s is %s", domain.ErrProposalNotActive, p.ID, p.State)
	}
	if votes <= 0 {
		return fmt.Errorf("%w: %d votes from %s", domain.ErrNonPositiveAmount, votes, voter)
	}

	prev := p.ballots[voter]
	total := votes
	if prev != nil {
		if prev.inFavour != inFavour {
			return fmt.Errorf("%w: %s already voted %s on %s", domain.ErrConflictingVote, voter, direction(prev.inFavour), p.ID)
		}
		if votes > math.MaxInt-prev.votes {
			return fmt.Errorf("%w: %s cannot add %d votes on %s", domain.ErrInsufficientVotingPower, voter, votes, p.ID)
		}
		total += prev.votes
	}

	// Square in float64 so large vote counts cannot wrap
	t := float64(total)
	cost := t * t
	budget := p.budgets[voter]
	if cost > budget+powerTolerance {
		return fmt.Errorf("%w: %s needs %.2f for %d votes on %s, has %.2f",
			domain.ErrInsufficientVotingPower, voter, cost, total, p.ID, budget)
	}

	if prev == nil {
		prev = &ballot{inFavour: inFavour}
		p.ballots[voter] = prev
		p.voterOrder = append(p.voterOrder, voter)
	}
	prev.votes = total
	if inFavour {
		p.VotesFor += votes
	} else {
		p.VotesAgainst += votes
	}
	return nil
}

func direction(inFavour bool) string {
	if inFavour {
		return "for"
	}
	return "against"
}

// Close tallies an active proposal. No votes means Expired; quorum and a
// majority in favour means Passed; anything else Failed.
func (b *Board) Close(p *Proposal) error {
	if p.State != ProposalActive {
		return fmt.Errorf("%w: proposal %s is %s, cannot close", domain.ErrProposalNotActive, p.ID, p.State)
	}
	switch {
	case p.VotesCast() == 0:
		p.State = ProposalExpired
		b.expired++
	case p.QuorumMet(b.cfg.QuorumFraction) && p.VotesFor > p.VotesAgainst:
		p.State = ProposalPassed
		b.passed++
	default:
		p.State = ProposalFailed
		b.failed++
	}
	b.turnout = p.Turnout()
	return nil
}

// Proposal looks up a proposal by ID
func (b *Board) Proposal(id string) (*Proposal, bool) {
	p, ok := b.byID[id]
	return p, ok
}

// TickResult reports one week of governance activity
type TickResult struct {
	Opened    *Proposal
	Closed    []*Proposal
	VotesCast int
	Rejected  int
}

// WeeklyTick opens a proposal on the cadence, lets eligible participants vote
// on every active proposal and tallies proposals whose window ends this week
func (b *Board) WeeklyTick(week int, participants []*domain.Participant, rng *utils.Rand) (TickResult, error) {
	var result TickResult

	if week%b.cfg.ProposalIntervalWeeks == 0 {
		voters := make([]string, len(participants))
		for i, p := range participants {
			voters[i] = p.ID
		}
		p := b.Draft(week, fmt.Sprintf(proposalTitleFormat, week))
		if err := b.Activate(p, week, voters); err != nil {
			return result, err
		}
		result.Opened = p
	}

	for _, p := range b.proposals {
		if p.State != ProposalActive {
			continue
		}
		cast, rejected, err := b.simulateVoting(p, participants, rng)
		if err != nil {
			return result, err
		}
		result.VotesCast += cast
		result.Rejected += rejected

		if week >= p.Deadline {
			if err := b.Close(p); err != nil {
				return result, err
			}
			result.Closed = append(result.Closed, p)
		}
	}
	b.rejected += result.Rejected
	return result, nil
}

// simulateVoting has new voters spend their whole budget on floor(sqrt(power))
// votes; earlier voters sometimes try to add one more, which the quadratic
// cost always rejects.
func (b *Board) simulateVoting(p *Proposal, participants []*domain.Participant, rng *utils.Rand) (cast, rejected int, err error) {
	for _, participant := range participants {
		budget := p.budgets[participant.ID]
		if budget <= 0 {
			continue
		}

		if prev, voted := p.ballots[participant.ID]; voted {
			if !rng.Chance(b.cfg.TopUpProbability) {
				continue
			}
			err := b.Vote(p.ID, participant.ID, 1, prev.inFavour)
			switch {
			case err == nil:
				cast++
			case errors.Is(err, domain.ErrInsufficientVotingPower):
				rejected++
			default:
				return cast, rejected, err
			}
			continue
		}

		if !rng.Chance(b.cfg.TurnoutProbability) {
			continue
		}
		votes := int(math.Floor(math.Sqrt(budget + powerTolerance)))
		inFavour := rng.Chance(b.cfg.SupportProbability)
		if votes < 1 {
			continue
		}
		if err := b.Vote(p.ID, participant.ID, votes, inFavour); err != nil {
			return cast, rejected, err
		}
		cast += votes
	}
	return cast, rejected, nil
}

// Passed returns the number of proposals that passed
func (b *Board) Passed() int { return b.passed }

// Failed returns the number of proposals that failed
func (b *Board) Failed() int { return b.failed }

// Expired returns the number of proposals that expired without votes
func (b *Board) Expired() int { return b.expired }

// Rejected returns the number of votes rejected for insufficient power
func (b *Board) Rejected() int { return b.rejected }

// LastTurnout is the turnout of the most recently closed proposal
func (b *Board) LastTurnout() float64 { return b.turnout }
