package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"parcel-service/internal/entities"
	"parcel-service/internal/repository"
	"parcel-service/internal/service/payment"
)

const paymentColumns = "id, parcel_id, payer_email, amount, method, transaction_ref, paid_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, paymentModifyEntity entities.PaymentModify) (*entities.Payment, error) {
	paymentModifyModel := FromDomainModify(&paymentModifyEntity)
	query := `INSERT INTO payments (parcel_id, payer_email, amount, method, transaction_ref)
		VALUES ($1, $2, $3, COALESCE($4, '` + entities.DefaultPaymentMethod + `'), $5)
		RETURNING ` + paymentColumns

	paymentModel, err := scanPayment(r.querier.QueryRow(
		ctx,
		query,
		paymentModifyModel.ParcelID,
		paymentModifyModel.PayerEmail,
		paymentModifyModel.Amount,
		paymentModifyModel.Method,
		paymentModifyModel.TransactionRef,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, payment.ErrDuplicateTransaction
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, payment.ErrParcelNotFound
		}
		return nil, fmt.Errorf("unexpected payment repository create error: %w", err)
	}

	return ToDomain(paymentModel), nil
}

func (r *Repository) GetByTransactionRef(ctx context.Context, ref string) (*entities.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE transaction_ref = $1`

	paymentModel, err := scanPayment(r.querier.QueryRow(ctx, query, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("unexpected payment repository get by ref error: %w", err)
	}

	return ToDomain(paymentModel), nil
}

func (r *Repository) CountByParcel(ctx context.Context, parcelID int64) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE parcel_id = $1`, parcelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected payment repository count error: %w", err)
	}
	return count, nil
}

// ListByPayer returns the payer's history, newest first.
func (r *Repository) ListByPayer(ctx context.Context, email string) ([]entities.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE payer_email = $1
		ORDER BY paid_at DESC, id DESC`

	rows, err := r.querier.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("unexpected payment repository list error: %w", err)
	}
	defer rows.Close()

	paymentModels := make([]PaymentDB, 0, 8)
	for rows.Next() {
		paymentModel, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected payment repository list error: %w", err)
		}
		paymentModels = append(paymentModels, *paymentModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected payment repository list error: %w", err)
	}

	return ToDomainList(paymentModels), nil
}

func scanPayment(row pgx.Row) (*PaymentDB, error) {
	var paymentModel PaymentDB
	err := row.Scan(
		&paymentModel.ID,
		&paymentModel.ParcelID,
		&paymentModel.PayerEmail,
		&paymentModel.Amount,
		&paymentModel.Method,
		&paymentModel.TransactionRef,
		&paymentModel.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return &paymentModel, nil
}
