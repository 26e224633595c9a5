package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/deadline"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/lifecycle"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo"
	"tender-adjudication-api/internal/repo/repo_errors"
	"tender-adjudication-api/internal/scoring"
)

type ProposalService struct {
	proposalRepo repo.Proposal
	tenderRepo   repo.Tender
	profileRepo  repo.Profile
	deadlines    *deadline.Resolver
	scorer       scoring.Scorer
	notifier     notify.Dispatcher
	log          *slog.Logger
	now          func() time.Time
}

func NewProposalService(d Deps) *ProposalService {
	return &ProposalService{
		proposalRepo: d.Repos.Proposal,
		tenderRepo:   d.Repos.Tender,
		profileRepo:  d.Repos.Profile,
		deadlines:    d.Deadlines,
		scorer:       d.Scorer,
		notifier:     d.Notifier,
		log:          d.Log,
		now:          d.Now,
	}
}

// SubmitProposal is the submission guard. Preconditions run in order and the
// first failure wins; the duplicate check is the insert itself, so two
// concurrent submissions from one bidder race on the unique index and the
// loser gets a conflict, never a silent overwrite.
func (s *ProposalService) SubmitProposal(ctx context.Context, input *entity.SubmitProposalInput) (*entity.ProposalOutputModel, error) {
	tender, err := s.tenderRepo.GetTenderById(ctx, input.TenderId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, err
	}

	if !lifecycle.CanReceiveProposals(tender.Status) {
		return nil, ErrTenderNotOpen
	}

	if tender.ClosingDate != nil {
		passed, err := s.deadlines.Passed(*tender.ClosingDate, s.now())
		if err != nil {
			return nil, err
		}
		if passed {
			return nil, ErrDeadlinePassed
		}
	}

	if !input.AcceptGeneral || !input.AcceptInspection || !input.AcceptPenalties {
		return nil, ErrTermsNotAccepted
	}

	if input.AnnualPrice <= 0 || math.IsInf(input.AnnualPrice, 0) || math.IsNaN(input.AnnualPrice) {
		return nil, ErrInvalidPrice
	}

	bidder, err := s.profileRepo.GetBidderById(ctx, input.BidderId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidderNotFound
		}

		return nil, err
	}

	id, err := s.proposalRepo.CreateSubmitted(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrProposalAlreadySubmitted
		}

		return nil, err
	}

	// Scored synchronously before the call returns. The selector falls back
	// to the rubric on any AI failure, so a degraded collaborator can't
	// fail the submission.
	breakdown, err := s.scorer.Score(ctx, scoring.Input{
		TenderTitle:     tender.Title,
		Category:        tender.Category,
		BudgetMin:       tender.BudgetMin,
		BudgetMax:       tender.BudgetMax,
		AnnualPrice:     input.AnnualPrice,
		Description:     input.Description,
		TechnicalText:   input.TechnicalText,
		YearsExperience: bidder.YearsExperience,
		DocumentCount:   bidder.DocumentCount,
		PaymentModality: input.PaymentModality,
	})
	if err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SetProposalScore(ctx, id, breakdown); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notify.Notification{
		UserId:  tender.BuyerId,
		Kind:    common.NotifyProposalReceived,
		Title:   "New proposal received",
		Message: bidder.CompanyName + " submitted a proposal for " + tender.Title,
		Link:    "/tenders/" + tender.Id.String() + "/proposals",
	})

	proposal, err := s.proposalRepo.GetProposalById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapProposal(proposal), nil
}

func (s *ProposalService) GetTenderProposals(ctx context.Context, tenderId, buyerId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error) {
	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, err
	}

	if tender.BuyerId.String() != buyerId {
		return nil, ErrNotTenderOwner
	}

	proposals, err := s.proposalRepo.GetTenderProposals(ctx, tenderId, pg)
	if err != nil {
		return nil, err
	}

	return mapProposals(proposals), nil
}

func (s *ProposalService) GetBidderProposals(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error) {
	if _, err := s.profileRepo.GetBidderById(ctx, bidderId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidderNotFound
		}

		return nil, err
	}

	proposals, err := s.proposalRepo.GetBidderProposals(ctx, bidderId, pg)
	if err != nil {
		return nil, err
	}

	return mapProposals(proposals), nil
}
