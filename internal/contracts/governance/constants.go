package governance

// Board defaults
const (
	DefaultProposalIntervalWeeks = 13
	DefaultVotingWindowWeeks     = 2
	DefaultQuorumFraction        = 0.10
	DefaultTurnoutProbability    = 0.6
	DefaultSupportProbability    = 0.6
	DefaultTopUpProbability      = 0.1
)

// ProposalState is the lifecycle state of a proposal
type ProposalState string

const (
	ProposalDraft   ProposalState = "draft"
	ProposalActive  ProposalState = "active"
	ProposalPassed  ProposalState = "passed"
	ProposalFailed  ProposalState = "failed"
	ProposalExpired ProposalState = "expired"
)

// powerTolerance absorbs float error when comparing vote cost with power
const powerTolerance = 1e-9

const (
	proposalNameFormat  = "proposal/%d"
	proposalTitleFormat = "Quarterly budget review, week %d"
)
