package service

import (
	"time"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
)

const (
	defaultDurationMonths = 12
	defaultStartDelayDays = 7
	civilDateLayout       = "2006-01-02"
	timestampLayout       = time.RFC3339
)

// buildContract derives the contract from the tender and the winning
// proposal. Pure function of its inputs and the clock.
func buildContract(tender *entity.Tender, proposal *entity.Proposal, terms entity.ContractTerms, now time.Time) entity.Contract {
	start := now.AddDate(0, 0, defaultStartDelayDays)
	if terms.StartDate != nil {
		if parsed, err := time.Parse(civilDateLayout, *terms.StartDate); err == nil {
			start = parsed
		}
	}

	months := tender.DurationMonths
	if months <= 0 {
		months = defaultDurationMonths
	}
	end := start.AddDate(0, months, 0)

	contract := entity.Contract{
		TenderId:         tender.Id,
		ProposalId:       proposal.Id,
		BuyerId:          tender.BuyerId,
		BidderId:         proposal.BidderId,
		AnnualValue:      proposal.AnnualPrice,
		StartDate:        start.Format(civilDateLayout),
		EndDate:          end.Format(civilDateLayout),
		PaymentModality:  terms.PaymentModality,
		PenaltyPercent:   terms.PenaltyPercent,
		SpecialTerms:     terms.SpecialTerms,
		Notes:            terms.Notes,
		Status:           common.ContractActive,
		AcceptanceStatus: common.AcceptancePending,
	}

	if proposal.AnnualPrice > 0 {
		monthly := proposal.AnnualPrice / 12
		contract.MonthlyValue = &monthly
	}

	if contract.PaymentModality == "" {
		contract.PaymentModality = proposal.PaymentModality
	}

	return contract
}
