package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/repo/repo_errors"
	"tender-adjudication-api/pkg/postgres"
)

const uniqueViolation = "23505"

type ProposalRepo struct {
	*postgres.Postgres
}

func NewProposalRepo(pgdb *postgres.Postgres) *ProposalRepo {
	return &ProposalRepo{pgdb}
}

var proposalColumns = []string{
	"id", "tender_id", "bidder_id", "annual_price", "description",
	"technical_text", "payment_modality", "accept_general", "accept_inspection",
	"accept_penalties", "score", "score_breakdown", "status", "submitted_at",
}

func scanProposal(row scannable) (*entity.Proposal, error) {
	var proposal entity.Proposal
	var score sql.NullFloat64
	var breakdownRaw []byte
	var submittedAt time.Time

	err := row.Scan(&proposal.Id, &proposal.TenderId, &proposal.BidderId,
		&proposal.AnnualPrice, &proposal.Description, &proposal.TechnicalText,
		&proposal.PaymentModality, &proposal.AcceptGeneral, &proposal.AcceptInspection,
		&proposal.AcceptPenalties, &score, &breakdownRaw, &proposal.Status, &submittedAt)
	if err != nil {
		return nil, err
	}

	if score.Valid {
		proposal.Score = &score.Float64
	}
	if len(breakdownRaw) > 0 {
		var breakdown entity.ScoreBreakdown
		if err := json.Unmarshal(breakdownRaw, &breakdown); err != nil {
			return nil, err
		}
		proposal.Breakdown = &breakdown
	}
	proposal.SubmittedAt = submittedAt.Format(time.RFC3339)

	return &proposal, nil
}

func (r *ProposalRepo) CreateSubmitted(ctx context.Context, input *entity.SubmitProposalInput) (uuid.UUID, error) {
	createProposalSql, args, _ := r.SqlBuilder.
		Insert("proposal").
		Columns("tender_id", "bidder_id", "annual_price", "description",
			"technical_text", "payment_modality", "accept_general",
			"accept_inspection", "accept_penalties", "status").
		Values(input.TenderId, input.BidderId, input.AnnualPrice, input.Description,
			input.TechnicalText, input.PaymentModality, input.AcceptGeneral,
			input.AcceptInspection, input.AcceptPenalties, common.ProposalSubmitted).
		Suffix("RETURNING id").
		ToSql()

	var proposalId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createProposalSql, args...).Scan(&proposalId)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, repo_errors.ErrConflict
		}

		return uuid.Nil, err
	}

	return proposalId, nil
}

func (r *ProposalRepo) GetProposalById(ctx context.Context, id string) (*entity.Proposal, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getProposalSql, args, _ := r.SqlBuilder.
		Select(proposalColumns...).
		From("proposal").
		Where("id = ?", uuidForm).
		ToSql()

	proposal, err := scanProposal(r.Database.QueryRowContext(ctx, getProposalSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return proposal, nil
}

func (r *ProposalRepo) GetTenderProposals(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	uuidForm, err := uuid.Parse(tenderId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getProposalsSql, args, _ := r.SqlBuilder.
		Select(proposalColumns...).
		From("proposal").
		Where("tender_id = ?", uuidForm).
		Where("status <> ?", common.ProposalDraft).
		OrderBy("score DESC NULLS LAST").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	return r.queryProposals(ctx, getProposalsSql, args)
}

func (r *ProposalRepo) GetBidderProposals(ctx context.Context, bidderId string, pg *entity.PaginationInput) ([]entity.Proposal, error) {
	uuidForm, err := uuid.Parse(bidderId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getProposalsSql, args, _ := r.SqlBuilder.
		Select(proposalColumns...).
		From("proposal").
		Where("bidder_id = ?", uuidForm).
		OrderBy("submitted_at DESC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	return r.queryProposals(ctx, getProposalsSql, args)
}

func (r *ProposalRepo) queryProposals(ctx context.Context, query string, args []any) ([]entity.Proposal, error) {
	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := make([]entity.Proposal, 0)
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *proposal)
	}

	return proposals, rows.Err()
}

func (r *ProposalRepo) SetProposalScore(ctx context.Context, id uuid.UUID, breakdown entity.ScoreBreakdown) error {
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return err
	}

	// The score IS NULL guard keeps the breakdown write-once.
	setScoreSql, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("score", breakdown.Total).
		Set("score_breakdown", raw).
		Where("id = ?", id).
		Where("score IS NULL").
		ToSql()

	_, err = r.Database.ExecContext(ctx, setScoreSql, args...)

	return err
}
