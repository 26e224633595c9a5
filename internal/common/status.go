package common

// Tender lifecycle statuses.
const (
	TenderDraft        = "draft"
	TenderOpen         = "open"
	TenderInEvaluation = "in_evaluation"
	TenderAwarded      = "awarded"
	TenderCancelled    = "cancelled"
)

// Proposal statuses. A proposal never leaves won/not_selected.
const (
	ProposalDraft       = "draft"
	ProposalSubmitted   = "submitted"
	ProposalUnderReview = "under_review"
	ProposalWon         = "won"
	ProposalNotSelected = "not_selected"
)

// Contract operational statuses.
const (
	ContractActive    = "active"
	ContractCompleted = "completed"
	ContractCancelled = "cancelled"
	ContractExpired   = "expired"
)

// Contract acceptance statuses. pending is the only legal initial value.
const (
	AcceptancePending        = "pending"
	AcceptanceBidderAccepted = "bidder_accepted"
	AcceptanceInForce        = "in_force"
)

// Service categories a tender can be published under.
const (
	CategoryCleaning       = "cleaning"
	CategoryMaintenance    = "maintenance"
	CategorySecurity       = "security"
	CategoryGardening      = "gardening"
	CategoryElevators      = "elevators"
	CategoryAdministration = "administration"
)

func ValidCategory(c string) bool {
	switch c {
	case CategoryCleaning, CategoryMaintenance, CategorySecurity,
		CategoryGardening, CategoryElevators, CategoryAdministration:
		return true
	default:
		return false
	}
}

// Score provenance tags.
const (
	ScoredByAI       = "ai"
	ScoredByFallback = "fallback"
)

// Notification kinds handed to the dispatcher.
const (
	NotifyProposalReceived = "proposal_received"
	NotifyTenderAwarded    = "tender_awarded"
	NotifyProposalWon      = "proposal_won"
	NotifyProposalRejected = "proposal_not_selected"
	NotifyContractAccepted = "contract_accepted"
)
