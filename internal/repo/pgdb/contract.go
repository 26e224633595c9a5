package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/repo/repo_errors"
	"tender-adjudication-api/pkg/postgres"
)

type ContractRepo struct {
	*postgres.Postgres
}

func NewContractRepo(pgdb *postgres.Postgres) *ContractRepo {
	return &ContractRepo{pgdb}
}

var contractColumns = []string{
	"id", "tender_id", "proposal_id", "buyer_id", "bidder_id",
	"annual_value", "monthly_value", "start_date", "end_date",
	"payment_modality", "penalty_percent", "special_terms", "notes",
	"status", "acceptance_status", "created_at",
}

func scanContract(row scannable) (*entity.Contract, error) {
	var contract entity.Contract
	var monthlyValue, penaltyPercent sql.NullFloat64
	var startDate, endDate, createdAt time.Time

	err := row.Scan(&contract.Id, &contract.TenderId, &contract.ProposalId,
		&contract.BuyerId, &contract.BidderId, &contract.AnnualValue, &monthlyValue,
		&startDate, &endDate, &contract.PaymentModality, &penaltyPercent,
		&contract.SpecialTerms, &contract.Notes, &contract.Status,
		&contract.AcceptanceStatus, &createdAt)
	if err != nil {
		return nil, err
	}

	if monthlyValue.Valid {
		contract.MonthlyValue = &monthlyValue.Float64
	}
	if penaltyPercent.Valid {
		contract.PenaltyPercent = &penaltyPercent.Float64
	}
	contract.StartDate = startDate.Format(civilDateLayout)
	contract.EndDate = endDate.Format(civilDateLayout)
	contract.CreatedAt = createdAt.Format(time.RFC3339)

	return &contract, nil
}

func (r *ContractRepo) CreateContract(ctx context.Context, input *entity.Contract) (uuid.UUID, error) {
	createContractSql, args, _ := r.SqlBuilder.
		Insert("contract").
		Columns("tender_id", "proposal_id", "buyer_id", "bidder_id",
			"annual_value", "monthly_value", "start_date", "end_date",
			"payment_modality", "penalty_percent", "special_terms", "notes",
			"status", "acceptance_status").
		Values(input.TenderId, input.ProposalId, input.BuyerId, input.BidderId,
			input.AnnualValue, input.MonthlyValue, input.StartDate, input.EndDate,
			input.PaymentModality, input.PenaltyPercent, input.SpecialTerms, input.Notes,
			input.Status, input.AcceptanceStatus).
		Suffix("RETURNING id").
		ToSql()

	var contractId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createContractSql, args...).Scan(&contractId)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// At most one contract per tender.
			return uuid.Nil, repo_errors.ErrConflict
		}

		return uuid.Nil, err
	}

	return contractId, nil
}

func (r *ContractRepo) GetContractById(ctx context.Context, id string) (*entity.Contract, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getContractSql, args, _ := r.SqlBuilder.
		Select(contractColumns...).
		From("contract").
		Where("id = ?", uuidForm).
		ToSql()

	contract, err := scanContract(r.Database.QueryRowContext(ctx, getContractSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return contract, nil
}

func (r *ContractRepo) GetContractByTenderId(ctx context.Context, tenderId string) (*entity.Contract, error) {
	uuidForm, err := uuid.Parse(tenderId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getContractSql, args, _ := r.SqlBuilder.
		Select(contractColumns...).
		From("contract").
		Where("tender_id = ?", uuidForm).
		ToSql()

	contract, err := scanContract(r.Database.QueryRowContext(ctx, getContractSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return contract, nil
}

func (r *ContractRepo) GetPartyContracts(ctx context.Context, partyId string, pg *entity.PaginationInput) ([]entity.Contract, error) {
	uuidForm, err := uuid.Parse(partyId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getContractsSql, args, _ := r.SqlBuilder.
		Select(contractColumns...).
		From("contract").
		Where("buyer_id = ? OR bidder_id = ?", uuidForm, uuidForm).
		OrderBy("created_at DESC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getContractsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := make([]entity.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, *contract)
	}

	return contracts, rows.Err()
}

func (r *ContractRepo) AdvanceAcceptance(ctx context.Context, id string, from, to string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	advanceSql, args, _ := r.SqlBuilder.
		Update("contract").
		Set("acceptance_status", to).
		Where("id = ?", uuidForm).
		Where("acceptance_status = ?", from).
		ToSql()

	result, err := r.Database.ExecContext(ctx, advanceSql, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrConflict
	}

	return nil
}
