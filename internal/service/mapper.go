package service

import (
	"tender-adjudication-api/internal/entity"
)

func mapTender(t *entity.Tender) *entity.TenderOutputModel {
	out := &entity.TenderOutputModel{
		Id:             t.Id.String(),
		BuyerId:        t.BuyerId.String(),
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		BudgetMin:      t.BudgetMin,
		BudgetMax:      t.BudgetMax,
		ClosingDate:    t.ClosingDate,
		DurationMonths: t.DurationMonths,
		Status:         t.Status,
		AwardedAt:      t.AwardedAt,
		PublishedAt:    t.PublishedAt,
		CreatedAt:      t.CreatedAt,
	}
	if t.WinningBidderId != nil {
		winner := t.WinningBidderId.String()
		out.WinningBidderId = &winner
	}

	return out
}

func mapTenders(t []entity.Tender) []entity.TenderOutputModel {
	s := make([]entity.TenderOutputModel, 0)
	for _, tender := range t {
		s = append(s, *mapTender(&tender))
	}

	return s
}

func mapProposal(p *entity.Proposal) *entity.ProposalOutputModel {
	return &entity.ProposalOutputModel{
		Id:          p.Id.String(),
		TenderId:    p.TenderId.String(),
		BidderId:    p.BidderId.String(),
		AnnualPrice: p.AnnualPrice,
		Score:       p.Score,
		Breakdown:   p.Breakdown,
		Status:      p.Status,
		SubmittedAt: p.SubmittedAt,
	}
}

func mapProposals(p []entity.Proposal) []entity.ProposalOutputModel {
	s := make([]entity.ProposalOutputModel, 0)
	for _, proposal := range p {
		s = append(s, *mapProposal(&proposal))
	}

	return s
}

func mapContract(c *entity.Contract) *entity.ContractOutputModel {
	return &entity.ContractOutputModel{
		Id:               c.Id.String(),
		TenderId:         c.TenderId.String(),
		ProposalId:       c.ProposalId.String(),
		BuyerId:          c.BuyerId.String(),
		BidderId:         c.BidderId.String(),
		AnnualValue:      c.AnnualValue,
		MonthlyValue:     c.MonthlyValue,
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		Status:           c.Status,
		AcceptanceStatus: c.AcceptanceStatus,
		CreatedAt:        c.CreatedAt,
	}
}

func mapContracts(c []entity.Contract) []entity.ContractOutputModel {
	s := make([]entity.ContractOutputModel, 0)
	for _, contract := range c {
		s = append(s, *mapContract(&contract))
	}

	return s
}
