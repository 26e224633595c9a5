package service

import (
	"context"
	"errors"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/lifecycle"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo/repo_errors"
)

const notifyFanoutLimit = 500

// Adjudicate closes a tender on a winning proposal. The status flip, the
// proposal markings and the win counter commit atomically in the repo; the
// contract and the notifications follow and are allowed to fail without
// reverting the award.
func (s *TenderService) Adjudicate(ctx context.Context, input *entity.AdjudicateInput) (*entity.AdjudicationOutputModel, error) {
	tender, err := s.tenderRepo.GetTenderById(ctx, input.TenderId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, err
	}

	if tender.BuyerId.String() != input.BuyerId {
		return nil, ErrNotTenderOwner
	}

	if tender.Status == common.TenderAwarded {
		return nil, ErrTenderAlreadyAwarded
	}

	proposal, err := s.proposalRepo.GetProposalById(ctx, input.ProposalId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProposalNotFound
		}

		return nil, err
	}
	if proposal.TenderId != tender.Id {
		return nil, ErrProposalNotFound
	}
	if !lifecycle.ProposalSelectable(proposal.Status) {
		return nil, ErrProposalNotSelectable
	}

	result, err := s.tenderRepo.Award(ctx, entity.AwardInput{
		TenderId:   tender.Id,
		ProposalId: proposal.Id,
		BidderId:   proposal.BidderId,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo_errors.ErrConflict):
			return nil, ErrTenderAlreadyAwarded
		case errors.Is(err, repo_errors.ErrNotFound):
			return nil, ErrTenderNotFound
		default:
			return nil, err
		}
	}

	if !result.FirstAward {
		// Status said not awarded but a winner was already recorded; the win
		// counter was left unchanged. Worth a look at the tender row.
		s.log.Warn("tender carried a prior winning bidder",
			"tender_id", tender.Id.String())
	}

	out := &entity.AdjudicationOutputModel{
		TenderId:        tender.Id.String(),
		Status:          common.TenderAwarded,
		WinningBidderId: proposal.BidderId.String(),
		AwardedAt:       result.AwardedAt.Format(timestampLayout),
	}

	// The award is committed; a contract persistence failure is a
	// recoverable inconsistency reconciled manually, not a rollback.
	contract := buildContract(tender, proposal, input.Terms, s.now())
	contractId, err := s.contractRepo.CreateContract(ctx, &contract)
	if err != nil {
		s.log.Error("contract creation failed after award",
			"tender_id", tender.Id.String(),
			"proposal_id", proposal.Id.String(),
			"error", err,
		)
	} else {
		persisted, err := s.contractRepo.GetContractById(ctx, contractId.String())
		if err != nil {
			s.log.Error("contract read-back failed after award",
				"tender_id", tender.Id.String(), "error", err)
		} else {
			out.Contract = mapContract(persisted)
		}
	}

	s.notifyAdjudication(ctx, tender, proposal)

	return out, nil
}

func (s *TenderService) notifyAdjudication(ctx context.Context, tender *entity.Tender, winner *entity.Proposal) {
	s.notifier.Notify(ctx, notify.Notification{
		UserId:  tender.BuyerId,
		Kind:    common.NotifyTenderAwarded,
		Title:   "Tender awarded",
		Message: "The tender " + tender.Title + " has been adjudicated.",
		Link:    "/tenders/" + tender.Id.String(),
	})
	s.notifier.Notify(ctx, notify.Notification{
		UserId:  winner.BidderId,
		Kind:    common.NotifyProposalWon,
		Title:   "Proposal selected",
		Message: "Your proposal for " + tender.Title + " was selected.",
		Link:    "/proposals/" + winner.Id.String(),
	})

	proposals, err := s.proposalRepo.GetTenderProposals(ctx, tender.Id.String(), entity.NewPaginationInput(notifyFanoutLimit, 0))
	if err != nil {
		s.log.Warn("could not load proposals for rejection notices",
			"tender_id", tender.Id.String(), "error", err)
		return
	}

	for _, p := range proposals {
		if p.Status != common.ProposalNotSelected {
			continue
		}
		s.notifier.Notify(ctx, notify.Notification{
			UserId:  p.BidderId,
			Kind:    common.NotifyProposalRejected,
			Title:   "Proposal not selected",
			Message: "Your proposal for " + tender.Title + " was not selected.",
			Link:    "/proposals/" + p.Id.String(),
		})
	}
}
