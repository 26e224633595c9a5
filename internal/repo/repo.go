package repo

import (
	"context"

	"github.com/google/uuid"

	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/repo/pgdb"
	"tender-adjudication-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

type Profile interface {
	GetBuyerById(ctx context.Context, id string) (*entity.BuyerProfile, error)
	GetBidderById(ctx context.Context, id string) (*entity.BidderProfile, error)
}

type Tender interface {
	CreateTender(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error)
	GetTenderById(ctx context.Context, id string) (*entity.Tender, error)
	GetOpenTenders(ctx context.Context, categories []string, pg *entity.PaginationInput) ([]entity.Tender, error)
	GetTendersByBuyerId(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.Tender, error)

	// PublishTender moves draft->open and stamps published_at. The guard is
	// in the statement; a tender not in draft yields ErrConflict.
	PublishTender(ctx context.Context, id string) error

	// CloseTender moves open->in_evaluation. Returns false without error
	// when the tender already left open, making the sweep idempotent.
	CloseTender(ctx context.Context, id string) (bool, error)

	CancelTender(ctx context.Context, id string) error

	GetOpenTendersWithDeadline(ctx context.Context) ([]entity.Tender, error)

	// Award runs the adjudication transaction: lock the tender row, verify
	// it is not already awarded, mark the winner won and the other
	// selectable proposals not_selected, stamp the award, and increment the
	// bidder's win counter when this is the tender's first award.
	Award(ctx context.Context, input entity.AwardInput) (*entity.AwardResult, error)
}

type Proposal interface {
	// CreateSubmitted inserts a proposal with status submitted. A concurrent
	// duplicate for the same (tender, bidder) surfaces as ErrConflict via
	// the partial unique index, never as a silent overwrite.
	CreateSubmitted(ctx context.Context, input *entity.SubmitProposalInput) (uuid.UUID, error)
	GetProposalById(ctx context.Context, id string) (*entity.Proposal, error)
	GetTenderProposals(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Proposal, error)
	GetBidderProposals(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.Proposal, error)

	// SetProposalScore attaches the breakdown once; a proposal that already
	// carries a score is left untouched.
	SetProposalScore(ctx context.Context, id uuid.UUID, breakdown entity.ScoreBreakdown) error
}

type Contract interface {
	CreateContract(ctx context.Context, input *entity.Contract) (uuid.UUID, error)
	GetContractById(ctx context.Context, id string) (*entity.Contract, error)
	GetContractByTenderId(ctx context.Context, tenderId string) (*entity.Contract, error)
	GetPartyContracts(ctx context.Context, partyId string, pg *entity.PaginationInput) ([]entity.Contract, error)

	// AdvanceAcceptance moves the acceptance sub-state with a status guard
	// in the statement; a stale `from` yields ErrConflict.
	AdvanceAcceptance(ctx context.Context, id string, from, to string) error
}

type Repositories struct {
	Diagnostics
	Profile
	Tender
	Proposal
	Contract
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Profile:     pgdb.NewProfileRepo(p),
		Tender:      pgdb.NewTenderRepo(p),
		Proposal:    pgdb.NewProposalRepo(p),
		Contract:    pgdb.NewContractRepo(p),
	}
}
