package user

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"parcel-service/internal/entities"
	"parcel-service/internal/repository"
	"parcel-service/internal/service/user"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = "id, email, name, photo_url, role, created_at, last_login_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Upsert inserts the user or only bumps last_login_at when the email exists.
// Profile fields and role of an existing user are never touched here.
// xmax = 0 holds only for freshly inserted rows.
func (r *Repository) Upsert(ctx context.Context, userModifyEntity entities.UserModify) (*entities.User, bool, error) {
	userModifyModel := FromDomainModify(&userModifyEntity)
	query := `INSERT INTO users (email, name, photo_url, role)
		VALUES ($1, COALESCE($2, ''), COALESCE($3, ''), $4)
		ON CONFLICT (email) DO UPDATE SET last_login_at = NOW()
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted`

	var (
		userModel UserDB
		inserted  bool
	)
	err := r.querier.QueryRow(
		ctx,
		query,
		userModifyModel.Email,
		userModifyModel.Name,
		userModifyModel.PhotoURL,
		userModifyModel.Role,
	).Scan(
		&userModel.ID,
		&userModel.Email,
		&userModel.Name,
		&userModel.PhotoURL,
		&userModel.Role,
		&userModel.CreatedAt,
		&userModel.LastLoginAt,
		&inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("unexpected user repository upsert error: %w", err)
	}

	return ToDomain(&userModel), inserted, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *Repository) getOne(ctx context.Context, column string, value any) (*entities.User, error) {
	query, args, err := qb.
		Select(userColumns).
		From("users").
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository get error: %w", err)
	}

	var userModel UserDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&userModel.ID,
		&userModel.Email,
		&userModel.Name,
		&userModel.PhotoURL,
		&userModel.Role,
		&userModel.CreatedAt,
		&userModel.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("unexpected user repository get error: %w", err)
	}

	return ToDomain(&userModel), nil
}

// Search matches emails by case-insensitive substring.
func (r *Repository) Search(ctx context.Context, emailPart string, limit uint64) ([]entities.User, error) {
	builder := qb.
		Select(userColumns).
		From("users").
		OrderBy("email").
		Limit(limit)
	if emailPart != "" {
		builder = builder.Where(sq.ILike{"email": "%" + repository.EscapeLike(emailPart) + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository search error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository search error: %w", err)
	}
	defer rows.Close()

	userModels := make([]UserDB, 0, limit)
	for rows.Next() {
		var userModel UserDB
		err := rows.Scan(
			&userModel.ID,
			&userModel.Email,
			&userModel.Name,
			&userModel.PhotoURL,
			&userModel.Role,
			&userModel.CreatedAt,
			&userModel.LastLoginAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected user repository search error: %w", err)
		}
		userModels = append(userModels, userModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected user repository search error: %w", err)
	}

	return ToDomainList(userModels), nil
}

func (r *Repository) Update(ctx context.Context, userModifyEntity entities.UserModify) (*entities.User, error) {
	userModifyModel := FromDomainModify(&userModifyEntity)
	if userModifyModel.ID == nil {
		return nil, user.ErrInvalidUserID
	}

	builder := qb.Update("users")

	// опциональные поля
	if userModifyModel.Email != nil {
		builder = builder.Set("email", userModifyModel.Email)
	}
	if userModifyModel.Name != nil {
		builder = builder.Set("name", userModifyModel.Name)
	}
	if userModifyModel.PhotoURL != nil {
		builder = builder.Set("photo_url", userModifyModel.PhotoURL)
	}
	if userModifyModel.Role != nil {
		builder = builder.Set("role", userModifyModel.Role)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": *userModifyModel.ID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected user repository update error: %w", err)
	}

	var userModel UserDB
	err = r.querier.QueryRow(ctx, query, args...).Scan(
		&userModel.ID,
		&userModel.Email,
		&userModel.Name,
		&userModel.PhotoURL,
		&userModel.Role,
		&userModel.CreatedAt,
		&userModel.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, user.ErrConflict
		}
		return nil, fmt.Errorf("unexpected user repository update error: %w", err)
	}

	return ToDomain(&userModel), nil
}
