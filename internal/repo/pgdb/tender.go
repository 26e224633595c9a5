package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/repo/repo_errors"
	"tender-adjudication-api/pkg/postgres"
)

const civilDateLayout = "2006-01-02"

type TenderRepo struct {
	*postgres.Postgres
}

func NewTenderRepo(pgdb *postgres.Postgres) *TenderRepo {
	return &TenderRepo{pgdb}
}

var tenderColumns = []string{
	"id", "buyer_id", "title", "description", "category",
	"budget_min", "budget_max", "closing_date", "duration_months",
	"status", "winning_bidder_id", "awarded_at", "published_at", "created_at",
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTender(row scannable) (*entity.Tender, error) {
	var tender entity.Tender
	var budgetMin, budgetMax sql.NullFloat64
	var closingDate, awardedAt, publishedAt sql.NullTime
	var winner uuid.NullUUID
	var createdAt time.Time

	err := row.Scan(&tender.Id, &tender.BuyerId, &tender.Title, &tender.Description,
		&tender.Category, &budgetMin, &budgetMax, &closingDate, &tender.DurationMonths,
		&tender.Status, &winner, &awardedAt, &publishedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	if budgetMin.Valid {
		tender.BudgetMin = &budgetMin.Float64
	}
	if budgetMax.Valid {
		tender.BudgetMax = &budgetMax.Float64
	}
	if closingDate.Valid {
		d := closingDate.Time.Format(civilDateLayout)
		tender.ClosingDate = &d
	}
	if winner.Valid {
		tender.WinningBidderId = &winner.UUID
	}
	if awardedAt.Valid {
		a := awardedAt.Time.Format(time.RFC3339)
		tender.AwardedAt = &a
	}
	if publishedAt.Valid {
		p := publishedAt.Time.Format(time.RFC3339)
		tender.PublishedAt = &p
	}
	tender.CreatedAt = createdAt.Format(time.RFC3339)

	return &tender, nil
}

func (r *TenderRepo) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error) {
	createTenderSql, args, _ := r.SqlBuilder.
		Insert("tender").
		Columns("buyer_id", "title", "description", "category",
			"budget_min", "budget_max", "closing_date", "duration_months", "status").
		Values(input.BuyerId, input.Title, input.Description, input.Category,
			input.BudgetMin, input.BudgetMax, input.ClosingDate, input.DurationMonths, common.TenderDraft).
		Suffix("RETURNING id").
		ToSql()

	var tenderId uuid.UUID
	err := r.Database.QueryRowContext(ctx, createTenderSql, args...).Scan(&tenderId)
	if err != nil {
		return uuid.Nil, err
	}

	return tenderId, nil
}

func (r *TenderRepo) GetTenderById(ctx context.Context, id string) (*entity.Tender, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getTenderSql, args, _ := r.SqlBuilder.
		Select(tenderColumns...).
		From("tender").
		Where("id = ?", uuidForm).
		ToSql()

	tender, err := scanTender(r.Database.QueryRowContext(ctx, getTenderSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	return tender, nil
}

func (r *TenderRepo) GetOpenTenders(ctx context.Context, categories []string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	query := r.SqlBuilder.
		Select(tenderColumns...).
		From("tender").
		Where("status = ?", common.TenderOpen).
		OrderBy("created_at DESC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset))

	if len(categories) > 0 {
		query = query.Where(squirrel.Eq{"category": categories})
	}

	getTendersSql, args, _ := query.ToSql()

	return r.queryTenders(ctx, getTendersSql, args)
}

func (r *TenderRepo) GetTendersByBuyerId(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	uuidForm, err := uuid.Parse(buyerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getTendersSql, args, _ := r.SqlBuilder.
		Select(tenderColumns...).
		From("tender").
		Where("buyer_id = ?", uuidForm).
		OrderBy("created_at DESC").
		Limit(uint64(pg.Limit)).
		Offset(uint64(pg.Offset)).
		ToSql()

	return r.queryTenders(ctx, getTendersSql, args)
}

func (r *TenderRepo) GetOpenTendersWithDeadline(ctx context.Context) ([]entity.Tender, error) {
	getTendersSql, args, _ := r.SqlBuilder.
		Select(tenderColumns...).
		From("tender").
		Where("status = ?", common.TenderOpen).
		Where("closing_date IS NOT NULL").
		ToSql()

	return r.queryTenders(ctx, getTendersSql, args)
}

func (r *TenderRepo) queryTenders(ctx context.Context, query string, args []any) ([]entity.Tender, error) {
	rows, err := r.Database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenders := make([]entity.Tender, 0)
	for rows.Next() {
		tender, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, *tender)
	}

	return tenders, rows.Err()
}

func (r *TenderRepo) PublishTender(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	publishSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("status", common.TenderOpen).
		Set("published_at", squirrel.Expr("now()")).
		Where("id = ?", uuidForm).
		Where("status = ?", common.TenderDraft).
		ToSql()

	result, err := r.Database.ExecContext(ctx, publishSql, args...)
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

func (r *TenderRepo) CloseTender(ctx context.Context, id string) (bool, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return false, repo_errors.ErrNotFound
	}

	closeSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("status", common.TenderInEvaluation).
		Where("id = ?", uuidForm).
		Where("status = ?", common.TenderOpen).
		ToSql()

	result, err := r.Database.ExecContext(ctx, closeSql, args...)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *TenderRepo) CancelTender(ctx context.Context, id string) error {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	cancelSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("status", common.TenderCancelled).
		Where("id = ?", uuidForm).
		Where(squirrel.Eq{"status": []string{common.TenderDraft, common.TenderOpen, common.TenderInEvaluation}}).
		ToSql()

	result, err := r.Database.ExecContext(ctx, cancelSql, args...)
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

// Award applies steps 1, 3, 4, 5 and 7 of the adjudication as one
// transaction. The tender row is locked first, so a concurrent attempt
// blocks and then observes awarded, which maps to a conflict.
func (r *TenderRepo) Award(ctx context.Context, input entity.AwardInput) (*entity.AwardResult, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	lockSql, args, _ := r.SqlBuilder.
		Select("status", "winning_bidder_id").
		From("tender").
		Where("id = ?", input.TenderId).
		Suffix("FOR UPDATE").
		ToSql()

	var status string
	var priorWinner uuid.NullUUID
	err = tx.QueryRowContext(ctx, lockSql, args...).Scan(&status, &priorWinner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if status != common.TenderOpen && status != common.TenderInEvaluation {
		return nil, repo_errors.ErrConflict
	}

	markWonSql, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", common.ProposalWon).
		Where("id = ?", input.ProposalId).
		Where("tender_id = ?", input.TenderId).
		Where(squirrel.Eq{"status": []string{common.ProposalSubmitted, common.ProposalUnderReview}}).
		ToSql()

	result, err := tx.ExecContext(ctx, markWonSql, args...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, repo_errors.ErrConflict
	}

	// Drafts are not part of adjudication and stay drafts.
	markRestSql, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", common.ProposalNotSelected).
		Where("tender_id = ?", input.TenderId).
		Where("id <> ?", input.ProposalId).
		Where(squirrel.Eq{"status": []string{common.ProposalSubmitted, common.ProposalUnderReview}}).
		ToSql()

	if _, err = tx.ExecContext(ctx, markRestSql, args...); err != nil {
		return nil, err
	}

	awardedAt := time.Now().UTC()
	awardSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("status", common.TenderAwarded).
		Set("winning_bidder_id", input.BidderId).
		Set("awarded_at", awardedAt).
		Where("id = ?", input.TenderId).
		ToSql()

	if _, err = tx.ExecContext(ctx, awardSql, args...); err != nil {
		return nil, err
	}

	firstAward := !priorWinner.Valid
	if firstAward {
		// Single-statement increment; correct under concurrent awards of
		// distinct tenders to the same bidder.
		winSql, args, _ := r.SqlBuilder.
			Update("bidder_profile").
			Set("tender_wins", squirrel.Expr("tender_wins + 1")).
			Where("id = ?", input.BidderId).
			ToSql()

		if _, err = tx.ExecContext(ctx, winSql, args...); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &entity.AwardResult{AwardedAt: awardedAt, FirstAward: firstAward}, nil
}
