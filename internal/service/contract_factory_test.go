package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
)

func TestBuildContract_Defaults(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tender := &entity.Tender{Id: uuid.New(), BuyerId: uuid.New(), DurationMonths: 12}
	proposal := &entity.Proposal{Id: uuid.New(), BidderId: uuid.New(), AnnualPrice: 24000, PaymentModality: "monthly"}

	contract := buildContract(tender, proposal, entity.ContractTerms{}, now)

	require.Equal(t, tender.Id, contract.TenderId)
	require.Equal(t, proposal.Id, contract.ProposalId)
	require.Equal(t, tender.BuyerId, contract.BuyerId)
	require.Equal(t, proposal.BidderId, contract.BidderId)

	// No explicit start date: a week from now, running for the tender's
	// duration.
	require.Equal(t, "2025-06-22", contract.StartDate)
	require.Equal(t, "2026-06-22", contract.EndDate)

	require.Equal(t, 24000.0, contract.AnnualValue)
	require.NotNil(t, contract.MonthlyValue)
	require.Equal(t, 2000.0, *contract.MonthlyValue)

	// Payment modality falls back to the proposal's when terms omit it.
	require.Equal(t, "monthly", contract.PaymentModality)

	require.Equal(t, common.ContractActive, contract.Status)
	require.Equal(t, common.AcceptancePending, contract.AcceptanceStatus)
}

func TestBuildContract_ExplicitTerms(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tender := &entity.Tender{Id: uuid.New(), BuyerId: uuid.New(), DurationMonths: 6}
	proposal := &entity.Proposal{Id: uuid.New(), BidderId: uuid.New(), AnnualPrice: 36000}

	start := "2025-09-01"
	penalty := 2.5
	contract := buildContract(tender, proposal, entity.ContractTerms{
		StartDate:       &start,
		PaymentModality: "quarterly",
		PenaltyPercent:  &penalty,
		SpecialTerms:    "materials included",
	}, now)

	require.Equal(t, "2025-09-01", contract.StartDate)
	require.Equal(t, "2026-03-01", contract.EndDate)
	require.Equal(t, "quarterly", contract.PaymentModality)
	require.Equal(t, 2.5, *contract.PenaltyPercent)
	require.Equal(t, "materials included", contract.SpecialTerms)
}

func TestBuildContract_ZeroDurationDefaultsToAYear(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	tender := &entity.Tender{Id: uuid.New(), BuyerId: uuid.New()}
	proposal := &entity.Proposal{Id: uuid.New(), BidderId: uuid.New(), AnnualPrice: 15000}

	contract := buildContract(tender, proposal, entity.ContractTerms{}, now)

	require.Equal(t, "2025-01-17", contract.StartDate)
	require.Equal(t, "2026-01-17", contract.EndDate)
	require.Equal(t, 1250.0, *contract.MonthlyValue)
}
