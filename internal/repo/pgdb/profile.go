package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"tender-adjudication-api/internal/entity"
	"tender-adjudication-api/internal/repo/repo_errors"
	"tender-adjudication-api/pkg/postgres"
)

type ProfileRepo struct {
	*postgres.Postgres
}

func NewProfileRepo(pgdb *postgres.Postgres) *ProfileRepo {
	return &ProfileRepo{pgdb}
}

func (r *ProfileRepo) GetBuyerById(ctx context.Context, id string) (*entity.BuyerProfile, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBuyerSql, args, _ := r.SqlBuilder.
		Select("id", "name", "created_at").
		From("buyer_profile").
		Where("id = ?", uuidForm).
		ToSql()

	var buyer entity.BuyerProfile
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getBuyerSql, args...)
	err = row.Scan(&buyer.Id, &buyer.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	buyer.CreatedAt = createdAt.Format(time.RFC3339)

	return &buyer, nil
}

func (r *ProfileRepo) GetBidderById(ctx context.Context, id string) (*entity.BidderProfile, error) {
	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	getBidderSql, args, _ := r.SqlBuilder.
		Select("id", "company_name", "years_experience", "document_count", "payment_modality", "tender_wins", "created_at").
		From("bidder_profile").
		Where("id = ?", uuidForm).
		ToSql()

	var bidder entity.BidderProfile
	var createdAt time.Time
	row := r.Database.QueryRowContext(ctx, getBidderSql, args...)
	err = row.Scan(&bidder.Id, &bidder.CompanyName, &bidder.YearsExperience,
		&bidder.DocumentCount, &bidder.PaymentModality, &bidder.TenderWins, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	bidder.CreatedAt = createdAt.Format(time.RFC3339)

	return &bidder, nil
}
