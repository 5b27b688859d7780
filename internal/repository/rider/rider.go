package rider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"parcel-service/internal/entities"
	"parcel-service/internal/repository"
	"parcel-service/internal/service/rider"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var riderColumns = []string{
	"id", "name", "email", "phone", "region", "district", "bike_registration",
	"status", "work_status", "created_at", "updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, riderModifyEntity entities.RiderModify) (int64, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)
	query := `INSERT INTO riders (name, email, phone, region, district, bike_registration, status, work_status)
		VALUES ($1, $2, COALESCE($3, ''), COALESCE($4, ''), $5, COALESCE($6, ''), $7, $8)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		riderModifyModel.Name,
		riderModifyModel.Email,
		riderModifyModel.Phone,
		riderModifyModel.Region,
		riderModifyModel.District,
		riderModifyModel.BikeRegistration,
		riderModifyModel.Status,
		riderModifyModel.WorkStatus,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, rider.ErrConflict
		}
		return 0, fmt.Errorf("unexpected rider repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Rider, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate locks the rider row until the surrounding transaction ends.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Rider, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *Repository) getByID(ctx context.Context, id int64, lock string) (*entities.Rider, error) {
	builder := qb.
		Select(riderColumns...).
		From("riders").
		Where(sq.Eq{"id": id})
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	riderModel, err := scanRider(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}
		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	return ToDomain(riderModel), nil
}

// List returns riders matching the filter, oldest application first.
func (r *Repository) List(ctx context.Context, filter entities.RiderFilter) ([]entities.Rider, error) {
	builder := qb.
		Select(riderColumns...).
		From("riders").
		OrderBy("created_at", "id")

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.NameContains != nil && *filter.NameContains != "" {
		builder = builder.Where(sq.ILike{"name": "%" + repository.EscapeLike(*filter.NameContains) + "%"})
	}
	if filter.District != nil {
		builder = builder.Where("lower(district) = lower(?)", *filter.District)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository list error: %w", err)
	}
	defer rows.Close()

	riderModels := make([]RiderDB, 0, 8)
	for rows.Next() {
		riderModel, err := scanRider(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected rider repository list error: %w", err)
		}
		riderModels = append(riderModels, *riderModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected rider repository list error: %w", err)
	}

	return ToDomainList(riderModels), nil
}

func (r *Repository) Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)
	if riderModifyModel.ID == nil {
		return nil, rider.ErrInvalidRiderID
	}

	builder := qb.Update("riders")

	// опциональные поля
	if riderModifyModel.Name != nil {
		builder = builder.Set("name", riderModifyModel.Name)
	}
	if riderModifyModel.Email != nil {
		builder = builder.Set("email", riderModifyModel.Email)
	}
	if riderModifyModel.Phone != nil {
		builder = builder.Set("phone", riderModifyModel.Phone)
	}
	if riderModifyModel.Region != nil {
		builder = builder.Set("region", riderModifyModel.Region)
	}
	if riderModifyModel.District != nil {
		builder = builder.Set("district", riderModifyModel.District)
	}
	if riderModifyModel.BikeRegistration != nil {
		builder = builder.Set("bike_registration", riderModifyModel.BikeRegistration)
	}
	if riderModifyModel.Status != nil {
		builder = builder.Set("status", riderModifyModel.Status)
	}
	if riderModifyModel.WorkStatus != nil {
		builder = builder.Set("work_status", riderModifyModel.WorkStatus)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *riderModifyModel.ID}).
		Suffix("RETURNING " + strings.Join(riderColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	riderModel, err := scanRider(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, rider.ErrConflict
		}
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	return ToDomain(riderModel), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM riders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unexpected rider repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return rider.ErrRiderNotFound
	}

	return nil
}

func scanRider(row pgx.Row) (*RiderDB, error) {
	var riderModel RiderDB
	err := row.Scan(
		&riderModel.ID,
		&riderModel.Name,
		&riderModel.Email,
		&riderModel.Phone,
		&riderModel.Region,
		&riderModel.District,
		&riderModel.BikeRegistration,
		&riderModel.Status,
		&riderModel.WorkStatus,
		&riderModel.CreatedAt,
		&riderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &riderModel, nil
}
