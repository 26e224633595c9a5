package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Tender struct {
	Id              uuid.UUID  `json:"id" db:"id"`
	BuyerId         uuid.UUID  `json:"buyerId" db:"buyer_id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	Category        string     `json:"category" db:"category"`
	BudgetMin       *float64   `json:"budgetMin" db:"budget_min"`
	BudgetMax       *float64   `json:"budgetMax" db:"budget_max"`
	ClosingDate     *string    `json:"closingDate" db:"closing_date"` // civil date, YYYY-MM-DD
	DurationMonths  int        `json:"durationMonths" db:"duration_months"`
	Status          string     `json:"status" db:"status"`
	WinningBidderId *uuid.UUID `json:"winningBidderId" db:"winning_bidder_id"`
	AwardedAt       *string    `json:"awardedAt" db:"awarded_at"`
	PublishedAt     *string    `json:"publishedAt" db:"published_at"`
	CreatedAt       string     `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateTenderInput struct {
	BuyerId        string
	Title          string
	Description    string
	Category       string
	BudgetMin      *float64
	BudgetMax      *float64
	ClosingDate    *string
	DurationMonths int
	// Status is set by the service: draft
	// Id and CreatedAt are set automatically
}

// adjudication transaction input/result, service + repo
type AwardInput struct {
	TenderId   uuid.UUID
	ProposalId uuid.UUID
	BidderId   uuid.UUID
}

type AwardResult struct {
	AwardedAt time.Time

	// FirstAward is true when the tender had no winning bidder before this
	// transaction; the win counter is incremented only then.
	FirstAward bool
}

// controller model for the scheduled close sweep
type CloseExpiredOutputModel struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
}

// controller model
type TenderOutputModel struct {
	Id              string   `json:"id"`
	BuyerId         string   `json:"buyerId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	BudgetMin       *float64 `json:"budgetMin,omitempty"`
	BudgetMax       *float64 `json:"budgetMax,omitempty"`
	ClosingDate     *string  `json:"closingDate,omitempty"`
	DurationMonths  int      `json:"durationMonths"`
	Status          string   `json:"status"`
	WinningBidderId *string  `json:"winningBidderId,omitempty"`
	AwardedAt       *string  `json:"awardedAt,omitempty"`
	PublishedAt     *string  `json:"publishedAt,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}
