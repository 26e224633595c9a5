package service

import (
	"context"
	"log/slog"
	"time"

	"tender-adjudication-api/internal/deadline"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo"
	"tender-adjudication-api/internal/scoring"
)

type Diagnostics interface {
	Ping() error
}

type Tender interface {
	CreateTender(ctx context.Context, input *entity.CreateTenderInput) (*entity.TenderOutputModel, error)
	PublishTender(ctx context.Context, tenderId, buyerId string) (*entity.TenderOutputModel, error)
	CancelTender(ctx context.Context, tenderId, buyerId string) (*entity.TenderOutputModel, error)

	GetTenderStatusById(ctx context.Context, tenderId string) (string, error)
	GetOpenTenders(ctx context.Context, categories []string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error)
	GetBuyerTenders(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error)

	CloseExpiredTenders(ctx context.Context) (*entity.CloseExpiredOutputModel, error)
	Adjudicate(ctx context.Context, input *entity.AdjudicateInput) (*entity.AdjudicationOutputModel, error)
}

type Proposal interface {
	SubmitProposal(ctx context.Context, input *entity.SubmitProposalInput) (*entity.ProposalOutputModel, error)
	GetTenderProposals(ctx context.Context, tenderId, buyerId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error)
	GetBidderProposals(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.ProposalOutputModel, error)
}

type Contract interface {
	AcceptContract(ctx context.Context, contractId, bidderId string) (*entity.ContractOutputModel, error)
	CountersignContract(ctx context.Context, contractId, buyerId string) (*entity.ContractOutputModel, error)
	GetPartyContracts(ctx context.Context, partyId string, pg *entity.PaginationInput) ([]entity.ContractOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Tender      Tender
	Proposal    Proposal
	Contract    Contract
}

type Deps struct {
	Repos     *repo.Repositories
	Deadlines *deadline.Resolver
	Scorer    scoring.Scorer
	Notifier  notify.Dispatcher
	Log       *slog.Logger

	// Now is the clock used for deadline checks and contract dates. Tests
	// pin it; nil means time.Now.
	Now func() time.Time
}

func NewServices(d Deps) *Services {
	if d.Now == nil {
		d.Now = time.Now
	}

	return &Services{
		Diagnostics: NewDiagnosticsService(d.Repos),
		Tender:      NewTenderService(d),
		Proposal:    NewProposalService(d),
		Contract:    NewContractService(d),
	}
}
