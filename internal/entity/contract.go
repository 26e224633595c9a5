package entity

import (
	"github.com/google/uuid"
)

// db model
type Contract struct {
	Id               uuid.UUID `json:"id" db:"id"`
	TenderId         uuid.UUID `json:"tenderId" db:"tender_id"`
	ProposalId       uuid.UUID `json:"proposalId" db:"proposal_id"`
	BuyerId          uuid.UUID `json:"buyerId" db:"buyer_id"`
	BidderId         uuid.UUID `json:"bidderId" db:"bidder_id"`
	AnnualValue      float64   `json:"annualValue" db:"annual_value"`
	MonthlyValue     *float64  `json:"monthlyValue" db:"monthly_value"`
	StartDate        string    `json:"startDate" db:"start_date"`
	EndDate          string    `json:"endDate" db:"end_date"`
	PaymentModality  string    `json:"paymentModality" db:"payment_modality"`
	PenaltyPercent   *float64  `json:"penaltyPercent" db:"penalty_percent"`
	SpecialTerms     string    `json:"specialTerms" db:"special_terms"`
	Notes            string    `json:"notes" db:"notes"`
	Status           string    `json:"status" db:"status"`
	AcceptanceStatus string    `json:"acceptanceStatus" db:"acceptance_status"`
	CreatedAt        string    `json:"createdAt" db:"created_at"`
}

// service input model for adjudication terms
type ContractTerms struct {
	StartDate       *string // civil date, YYYY-MM-DD
	PaymentModality string
	PenaltyPercent  *float64
	SpecialTerms    string
	Notes           string
}

// service input model for the adjudication transaction
type AdjudicateInput struct {
	TenderId   string
	BuyerId    string
	ProposalId string
	Terms      ContractTerms
}

// controller model. Contract is nil when the award committed but the
// contract row could not be persisted; the award itself is never reverted.
type AdjudicationOutputModel struct {
	TenderId        string               `json:"tenderId"`
	Status          string               `json:"status"`
	WinningBidderId string               `json:"winningBidderId"`
	AwardedAt       string               `json:"awardedAt"`
	Contract        *ContractOutputModel `json:"contract,omitempty"`
}

// controller model
type ContractOutputModel struct {
	Id               string   `json:"id"`
	TenderId         string   `json:"tenderId"`
	ProposalId       string   `json:"proposalId"`
	BuyerId          string   `json:"buyerId"`
	BidderId         string   `json:"bidderId"`
	AnnualValue      float64  `json:"annualValue"`
	MonthlyValue     *float64 `json:"monthlyValue,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Status           string   `json:"status"`
	AcceptanceStatus string   `json:"acceptanceStatus"`
	CreatedAt        string   `json:"createdAt"`
}
