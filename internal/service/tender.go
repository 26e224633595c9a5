package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/deadline"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/lifecycle"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo"
	"tender-adjudication-api/internal/repo/repo_errors"
)

type TenderService struct {
	tenderRepo   repo.Tender
	proposalRepo repo.Proposal
	contractRepo repo.Contract
	profileRepo  repo.Profile
	deadlines    *deadline.Resolver
	notifier     notify.Dispatcher
	log          *slog.Logger
	now          func() time.Time
}

func NewTenderService(d Deps) *TenderService {
	return &TenderService{
		tenderRepo:   d.Repos.Tender,
		proposalRepo: d.Repos.Proposal,
		contractRepo: d.Repos.Contract,
		profileRepo:  d.Repos.Profile,
		deadlines:    d.Deadlines,
		notifier:     d.Notifier,
		log:          d.Log,
		now:          d.Now,
	}
}

func (s *TenderService) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (*entity.TenderOutputModel, error) {
	if _, err := s.profileRepo.GetBuyerById(ctx, input.BuyerId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBuyerNotFound
		}

		return nil, err
	}

	if input.DurationMonths == 0 {
		input.DurationMonths = defaultDurationMonths
	}

	id, err := s.tenderRepo.CreateTender(ctx, input)
	if err != nil {
		return nil, err
	}

	tender, err := s.tenderRepo.GetTenderById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

func (s *TenderService) PublishTender(ctx context.Context, tenderId, buyerId string) (*entity.TenderOutputModel, error) {
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

	if tender.Title == "" || !common.ValidCategory(tender.Category) {
		return nil, ErrTenderIncomplete
	}

	if _, err := s.profileRepo.GetBuyerById(ctx, buyerId); err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBuyerNotFound
		}

		return nil, err
	}

	if _, err := lifecycle.NextTenderStatus(tender.Status, lifecycle.EventPublish); err != nil {
		return nil, ErrInvalidTransition
	}

	if err := s.tenderRepo.PublishTender(ctx, tenderId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrInvalidTransition
		}

		return nil, err
	}

	tender, err = s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

func (s *TenderService) CancelTender(ctx context.Context, tenderId, buyerId string) (*entity.TenderOutputModel, error) {
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

	if _, err := lifecycle.NextTenderStatus(tender.Status, lifecycle.EventCancel); err != nil {
		return nil, ErrInvalidTransition
	}

	if err := s.tenderRepo.CancelTender(ctx, tenderId); err != nil {
		if errors.Is(err, repo_errors.ErrConflict) {
			return nil, ErrInvalidTransition
		}

		return nil, err
	}

	tender, err = s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		return nil, err
	}

	return mapTender(tender), nil
}

func (s *TenderService) GetTenderStatusById(ctx context.Context, tenderId string) (string, error) {
	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return "", ErrTenderNotFound
		}

		return "", err
	}

	return tender.Status, nil
}

func (s *TenderService) GetOpenTenders(ctx context.Context, categories []string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error) {
	tenders, err := s.tenderRepo.GetOpenTenders(ctx, categories, pg)
	if err != nil {
		return nil, err
	}

	return mapTenders(tenders), nil
}

func (s *TenderService) GetBuyerTenders(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error) {
	tenders, err := s.tenderRepo.GetTendersByBuyerId(ctx, buyerId, pg)
	if err != nil {
		return nil, err
	}

	return mapTenders(tenders), nil
}

// CloseExpiredTenders moves every open tender whose resolved deadline has
// passed to in_evaluation. The per-tender update carries its own status
// guard, so concurrent sweeps and buyer-triggered closes stay idempotent.
func (s *TenderService) CloseExpiredTenders(ctx context.Context) (*entity.CloseExpiredOutputModel, error) {
	tenders, err := s.tenderRepo.GetOpenTendersWithDeadline(ctx)
	if err != nil {
		return nil, err
	}

	out := &entity.CloseExpiredOutputModel{Errors: []string{}}
	now := s.now()
	for _, tender := range tenders {
		if tender.ClosingDate == nil {
			continue
		}

		passed, err := s.deadlines.Passed(*tender.ClosingDate, now)
		if err != nil {
			out.Errors = append(out.Errors, tender.Id.String()+": "+err.Error())
			continue
		}
		if !passed {
			continue
		}

		closed, err := s.tenderRepo.CloseTender(ctx, tender.Id.String())
		if err != nil {
			out.Errors = append(out.Errors, tender.Id.String()+": "+err.Error())
			continue
		}
		if closed {
			out.Processed++
		}
	}

	return out, nil
}
