package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/deadline"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/notify"
	"tender-adjudication-api/internal/repo"
	"tender-adjudication-api/internal/repo/repo_errors"
	"tender-adjudication-api/internal/scoring"
)

// mockTenderRepo implements repo.Tender
type mockTenderRepo struct {
	tender *entity.Tender

	CreateTenderFunc               func(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error)
	GetTenderByIdFunc              func(ctx context.Context, id string) (*entity.Tender, error)
	GetOpenTendersFunc             func(ctx context.Context, categories []string, pg *entity.PaginationInput) ([]entity.Tender, error)
	GetTendersByBuyerIdFunc        func(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.Tender, error)
	PublishTenderFunc              func(ctx context.Context, id string) error
	CloseTenderFunc                func(ctx context.Context, id string) (bool, error)
	CancelTenderFunc               func(ctx context.Context, id string) error
	GetOpenTendersWithDeadlineFunc func(ctx context.Context) ([]entity.Tender, error)
	AwardFunc                      func(ctx context.Context, input entity.AwardInput) (*entity.AwardResult, error)
}

func (m *mockTenderRepo) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error) {
	if m.CreateTenderFunc != nil {
		return m.CreateTenderFunc(ctx, input)
	}
	return uuid.New(), nil
}

func (m *mockTenderRepo) GetTenderById(ctx context.Context, id string) (*entity.Tender, error) {
	if m.GetTenderByIdFunc != nil {
		return m.GetTenderByIdFunc(ctx, id)
	}
	if m.tender != nil && m.tender.Id.String() == id {
		copied := *m.tender
		return &copied, nil
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockTenderRepo) GetOpenTenders(ctx context.Context, categories []string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	if m.GetOpenTendersFunc != nil {
		return m.GetOpenTendersFunc(ctx, categories, pg)
	}
	return []entity.Tender{}, nil
}

func (m *mockTenderRepo) GetTendersByBuyerId(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	if m.GetTendersByBuyerIdFunc != nil {
		return m.GetTendersByBuyerIdFunc(ctx, buyerId, pg)
	}
	return []entity.Tender{}, nil
}

func (m *mockTenderRepo) PublishTender(ctx context.Context, id string) error {
	if m.PublishTenderFunc != nil {
		return m.PublishTenderFunc(ctx, id)
	}
	if m.tender != nil {
		m.tender.Status = common.TenderOpen
	}
	return nil
}

func (m *mockTenderRepo) CloseTender(ctx context.Context, id string) (bool, error) {
	if m.CloseTenderFunc != nil {
		return m.CloseTenderFunc(ctx, id)
	}
	return true, nil
}

func (m *mockTenderRepo) CancelTender(ctx context.Context, id string) error {
	if m.CancelTenderFunc != nil {
		return m.CancelTenderFunc(ctx, id)
	}
	if m.tender != nil {
		m.tender.Status = common.TenderCancelled
	}
	return nil
}

func (m *mockTenderRepo) GetOpenTendersWithDeadline(ctx context.Context) ([]entity.Tender, error) {
	if m.GetOpenTendersWithDeadlineFunc != nil {
		return m.GetOpenTendersWithDeadlineFunc(ctx)
	}
	return []entity.Tender{}, nil
}

func (m *mockTenderRepo) Award(ctx context.Context, input entity.AwardInput) (*entity.AwardResult, error) {
	if m.AwardFunc != nil {
		return m.AwardFunc(ctx, input)
	}
	return &entity.AwardResult{AwardedAt: time.Now().UTC(), FirstAward: true}, nil
}

// mockProposalRepo implements repo.Proposal
type mockProposalRepo struct {
	proposal *entity.Proposal

	CreateSubmittedFunc    func(ctx context.Context, input *entity.SubmitProposalInput) (uuid.UUID, error)
	GetProposalByIdFunc    func(ctx context.Context, id string) (*entity.Proposal, error)
	GetTenderProposalsFunc func(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Proposal, error)
	GetBidderProposalsFunc func(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.Proposal, error)
	SetProposalScoreFunc   func(ctx context.Context, id uuid.UUID, breakdown entity.ScoreBreakdown) error
}

func (m *mockProposalRepo) CreateSubmitted(ctx context.Context, input *entity.SubmitProposalInput) (uuid.UUID, error) {
	if m.CreateSubmittedFunc != nil {
		return m.CreateSubmittedFunc(ctx, input)
	}
	if m.proposal != nil {
		return m.proposal.Id, nil
	}
	return uuid.New(), nil
}

func (m *mockProposalRepo) GetProposalById(ctx context.Context, id string) (*entity.Proposal, error) {
	if m.GetProposalByIdFunc != nil {
		return m.GetProposalByIdFunc(ctx, id)
	}
	if m.proposal != nil && m.proposal.Id.String() == id {
		copied := *m.proposal
		return &copied, nil
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockProposalRepo) GetTenderProposals(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	if m.GetTenderProposalsFunc != nil {
		return m.GetTenderProposalsFunc(ctx, tenderId, pg)
	}
	return []entity.Proposal{}, nil
}

func (m *mockProposalRepo) GetBidderProposals(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	if m.GetBidderProposalsFunc != nil {
		return m.GetBidderProposalsFunc(ctx, bidderId, pg)
	}
	return []entity.Proposal{}, nil
}

func (m *mockProposalRepo) SetProposalScore(ctx context.Context, id uuid.UUID, breakdown entity.ScoreBreakdown) error {
	if m.SetProposalScoreFunc != nil {
		return m.SetProposalScoreFunc(ctx, id, breakdown)
	}
	if m.proposal != nil && m.proposal.Id == id {
		b := breakdown
		m.proposal.Score = &b.Total
		m.proposal.Breakdown = &b
	}
	return nil
}

// mockProfileRepo implements repo.Profile
type mockProfileRepo struct {
	buyer  *entity.BuyerProfile
	bidder *entity.BidderProfile
}

func (m *mockProfileRepo) GetBuyerById(ctx context.Context, id string) (*entity.BuyerProfile, error) {
	if m.buyer != nil && m.buyer.Id.String() == id {
		return m.buyer, nil
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockProfileRepo) GetBidderById(ctx context.Context, id string) (*entity.BidderProfile, error) {
	if m.bidder != nil && m.bidder.Id.String() == id {
		return m.bidder, nil
	}
	return nil, repo_errors.ErrNotFound
}

// mockContractRepo implements repo.Contract
type mockContractRepo struct {
	contract *entity.Contract

	CreateContractFunc        func(ctx context.Context, input *entity.Contract) (uuid.UUID, error)
	GetContractByIdFunc       func(ctx context.Context, id string) (*entity.Contract, error)
	GetContractByTenderIdFunc func(ctx context.Context, tenderId string) (*entity.Contract, error)
	GetPartyContractsFunc     func(ctx context.Context, partyId string, pg *entity.PaginationInput) ([]entity.Contract, error)
	AdvanceAcceptanceFunc     func(ctx context.Context, id string, from, to string) error
}

func (m *mockContractRepo) CreateContract(ctx context.Context, input *entity.Contract) (uuid.UUID, error) {
	if m.CreateContractFunc != nil {
		return m.CreateContractFunc(ctx, input)
	}
	id := uuid.New()
	stored := *input
	stored.Id = id
	stored.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	m.contract = &stored
	return id, nil
}

func (m *mockContractRepo) GetContractById(ctx context.Context, id string) (*entity.Contract, error) {
	if m.GetContractByIdFunc != nil {
		return m.GetContractByIdFunc(ctx, id)
	}
	if m.contract != nil && m.contract.Id.String() == id {
		copied := *m.contract
		return &copied, nil
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockContractRepo) GetContractByTenderId(ctx context.Context, tenderId string) (*entity.Contract, error) {
	if m.GetContractByTenderIdFunc != nil {
		return m.GetContractByTenderIdFunc(ctx, tenderId)
	}
	if m.contract != nil && m.contract.TenderId.String() == tenderId {
		copied := *m.contract
		return &copied, nil
	}
	return nil, repo_errors.ErrNotFound
}

func (m *mockContractRepo) GetPartyContracts(ctx context.Context, partyId string, pg *entity.PaginationInput) ([]entity.Contract, error) {
	if m.GetPartyContractsFunc != nil {
		return m.GetPartyContractsFunc(ctx, partyId, pg)
	}
	return []entity.Contract{}, nil
}

func (m *mockContractRepo) AdvanceAcceptance(ctx context.Context, id string, from, to string) error {
	if m.AdvanceAcceptanceFunc != nil {
		return m.AdvanceAcceptanceFunc(ctx, id, from, to)
	}
	if m.contract != nil && m.contract.Id.String() == id && m.contract.AcceptanceStatus == from {
		m.contract.AcceptanceStatus = to
		return nil
	}
	return repo_errors.ErrConflict
}

// recordingNotifier captures dispatched notifications for assertions.
type recordingNotifier struct {
	sent []notify.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Notification) {
	n.sent = append(n.sent, msg)
}

func (n *recordingNotifier) kinds() []string {
	kinds := make([]string, 0, len(n.sent))
	for _, msg := range n.sent {
		kinds = append(kinds, msg.Kind)
	}
	return kinds
}

// scorerFunc adapts a function to scoring.Scorer.
type scorerFunc func(ctx context.Context, in scoring.Input) (entity.ScoreBreakdown, error)

func (f scorerFunc) Score(ctx context.Context, in scoring.Input) (entity.ScoreBreakdown, error) {
	return f(ctx, in)
}

type fixture struct {
	tenders   *mockTenderRepo
	proposals *mockProposalRepo
	profiles  *mockProfileRepo
	contracts *mockContractRepo
	notifier  *recordingNotifier
	scorer    scoring.Scorer
	now       time.Time
}

func newFixture() *fixture {
	return &fixture{
		tenders:   &mockTenderRepo{},
		proposals: &mockProposalRepo{},
		profiles:  &mockProfileRepo{},
		contracts: &mockContractRepo{},
		notifier:  &recordingNotifier{},
		scorer: scorerFunc(func(ctx context.Context, in scoring.Input) (entity.ScoreBreakdown, error) {
			return entity.ScoreBreakdown{Total: 50, Provenance: common.ScoredByFallback}, nil
		}),
		now: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) deps() Deps {
	resolver, err := deadline.NewResolver("UTC")
	if err != nil {
		panic(err)
	}

	return Deps{
		Repos: &repo.Repositories{
			Tender:   f.tenders,
			Proposal: f.proposals,
			Profile:  f.profiles,
			Contract: f.contracts,
		},
		Deadlines: resolver,
		Scorer:    f.scorer,
		Notifier:  f.notifier,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       func() time.Time { return f.now },
	}
}
