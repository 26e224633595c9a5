package entity

import "github.com/google/uuid"

// BuyerProfile is the property-management entity publishing tenders.
type BuyerProfile struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

// BidderProfile is the service company submitting proposals. TenderWins is
// the denormalized lifetime win counter maintained by the award transaction.
type BidderProfile struct {
	Id              uuid.UUID `json:"id" db:"id"`
	CompanyName     string    `json:"companyName" db:"company_name"`
	YearsExperience int       `json:"yearsExperience" db:"years_experience"`
	DocumentCount   int       `json:"documentCount" db:"document_count"`
	PaymentModality string    `json:"paymentModality" db:"payment_modality"`
	TenderWins      int       `json:"tenderWins" db:"tender_wins"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
}
