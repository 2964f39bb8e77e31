package coordinator

// DefaultLocalProductionShare is the part of internal spend bought from local production
const DefaultLocalProductionShare = 0.5

// runNamespaceFormat seeds the namespace that order, position and proposal IDs derive from
const runNamespaceFormat = "coop-token-sim/run/%s"

const (
	LogMsgOrderSettled    = "Group purchase order settled"
	LogMsgProposalClosed  = "Governance proposal closed"
	LogMsgContractsTicked = "Contracts ticked"
)
