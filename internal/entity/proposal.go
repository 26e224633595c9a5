package entity

import (
	"github.com/google/uuid"
)

// db model
type Proposal struct {
	Id               uuid.UUID       `json:"id" db:"id"`
	TenderId         uuid.UUID       `json:"tenderId" db:"tender_id"`
	BidderId         uuid.UUID       `json:"bidderId" db:"bidder_id"`
	AnnualPrice      float64         `json:"annualPrice" db:"annual_price"`
	Description      string          `json:"description" db:"description"`
	TechnicalText    string          `json:"technicalText" db:"technical_text"`
	PaymentModality  string          `json:"paymentModality" db:"payment_modality"`
	AcceptGeneral    bool            `json:"acceptGeneral" db:"accept_general"`
	AcceptInspection bool            `json:"acceptInspection" db:"accept_inspection"`
	AcceptPenalties  bool            `json:"acceptPenalties" db:"accept_penalties"`
	Score            *float64        `json:"score" db:"score"`
	Breakdown        *ScoreBreakdown `json:"scoreBreakdown" db:"score_breakdown"`
	Status           string          `json:"status" db:"status"`
	SubmittedAt      string          `json:"submittedAt" db:"submitted_at"`
}

// service + repo input model
type SubmitProposalInput struct {
	TenderId         string
	BidderId         string
	AnnualPrice      float64
	Description      string
	TechnicalText    string
	PaymentModality  string
	AcceptGeneral    bool
	AcceptInspection bool
	AcceptPenalties  bool
	// Status is set by the service: submitted
	// Score and Breakdown are attached by the scoring engine
}

// controller model
type ProposalOutputModel struct {
	Id          string          `json:"id"`
	TenderId    string          `json:"tenderId"`
	BidderId    string          `json:"bidderId"`
	AnnualPrice float64         `json:"annualPrice"`
	Score       *float64        `json:"score,omitempty"`
	Breakdown   *ScoreBreakdown `json:"scoreBreakdown,omitempty"`
	Status      string          `json:"status"`
	SubmittedAt string          `json:"submittedAt"`
}
