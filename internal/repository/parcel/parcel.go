package parcel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"parcel-service/internal/entities"
	"parcel-service/internal/repository"
	"parcel-service/internal/service/parcel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var parcelColumns = []string{
	"id", "created_by", "title", "parcel_type", "weight_kg",
	"sender_name", "sender_district", "receiver_name", "receiver_district", "receiver_address",
	"delivery_cost", "payment_status", "delivery_status", "cashout_status",
	"assigned_rider_id", "assigned_rider_name", "assigned_rider_email",
	"assigned_at", "picked_at", "delivered_at", "cashed_out_at",
	"created_at", "updated_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, parcelModifyEntity entities.ParcelModify) (int64, error) {
	m := FromDomainModify(&parcelModifyEntity)
	query := `INSERT INTO parcels (
			created_by, title, parcel_type, weight_kg,
			sender_name, sender_district, receiver_name, receiver_district, receiver_address,
			delivery_cost, payment_status, delivery_status, cashout_status
		)
		VALUES ($1, $2, $3, $4,
			COALESCE($5, ''), COALESCE($6, ''), COALESCE($7, ''), COALESCE($8, ''), COALESCE($9, ''),
			$10, $11, $12, $13)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		m.CreatedBy,
		m.Title,
		m.Type,
		m.WeightKg,
		m.SenderName,
		m.SenderDistrict,
		m.ReceiverName,
		m.ReceiverDistrict,
		m.ReceiverAddress,
		m.DeliveryCost,
		m.PaymentStatus,
		m.DeliveryStatus,
		m.CashoutStatus,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return 0, fmt.Errorf("%w: %w", parcel.ErrMissingRequiredFields, err)
		}
		return 0, fmt.Errorf("unexpected parcel repository create error: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Parcel, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate locks the parcel row until the surrounding transaction ends.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Parcel, error) {
	return r.getByID(ctx, id, "FOR UPDATE")
}

func (r *Repository) getByID(ctx context.Context, id int64, lock string) (*entities.Parcel, error) {
	builder := qb.
		Select(parcelColumns...).
		From("parcels").
		Where(sq.Eq{"id": id})
	if lock != "" {
		builder = builder.Suffix(lock)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository getbyid error: %w", err)
	}

	parcelModel, err := scanParcel(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrParcelNotFound
		}
		return nil, fmt.Errorf("unexpected parcel repository getbyid error: %w", err)
	}

	return ToDomain(parcelModel), nil
}

// List is newest first unless the filter asks for the oldest first.
func (r *Repository) List(ctx context.Context, filter entities.ParcelFilter) ([]entities.Parcel, error) {
	order := "DESC"
	if filter.OldestFirst {
		order = "ASC"
	}

	builder := qb.
		Select(parcelColumns...).
		From("parcels").
		OrderBy("created_at "+order, "id "+order)

	if filter.CreatedBy != nil {
		builder = builder.Where(sq.Eq{"created_by": *filter.CreatedBy})
	}
	if filter.AssignedEmail != nil {
		builder = builder.Where(sq.Eq{"assigned_rider_email": *filter.AssignedEmail})
	}
	if filter.PaymentStatus != nil {
		builder = builder.Where(sq.Eq{"payment_status": filter.PaymentStatus.String()})
	}
	if len(filter.DeliveryStatus) > 0 {
		builder = builder.Where(sq.Eq{"delivery_status": statusStrings(filter.DeliveryStatus)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository list error: %w", err)
	}
	defer rows.Close()

	parcelModels := make([]ParcelDB, 0, 8)
	for rows.Next() {
		parcelModel, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected parcel repository list error: %w", err)
		}
		parcelModels = append(parcelModels, *parcelModel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected parcel repository list error: %w", err)
	}

	return ToDomainList(parcelModels), nil
}

func (r *Repository) Update(ctx context.Context, parcelModifyEntity entities.ParcelModify) (*entities.Parcel, error) {
	m := FromDomainModify(&parcelModifyEntity)
	if m.ID == nil {
		return nil, parcel.ErrInvalidParcelID
	}

	builder := qb.Update("parcels")

	// опциональные поля
	set := func(column string, value any, present bool) {
		if present {
			builder = builder.Set(column, value)
		}
	}
	set("title", m.Title, m.Title != nil)
	set("parcel_type", m.Type, m.Type != nil)
	set("weight_kg", m.WeightKg, m.WeightKg != nil)
	set("sender_name", m.SenderName, m.SenderName != nil)
	set("sender_district", m.SenderDistrict, m.SenderDistrict != nil)
	set("receiver_name", m.ReceiverName, m.ReceiverName != nil)
	set("receiver_district", m.ReceiverDistrict, m.ReceiverDistrict != nil)
	set("receiver_address", m.ReceiverAddress, m.ReceiverAddress != nil)
	set("delivery_cost", m.DeliveryCost, m.DeliveryCost != nil)
	set("payment_status", m.PaymentStatus, m.PaymentStatus != nil)
	set("delivery_status", m.DeliveryStatus, m.DeliveryStatus != nil)
	set("cashout_status", m.CashoutStatus, m.CashoutStatus != nil)
	set("assigned_rider_id", m.AssignedRiderID, m.AssignedRiderID != nil)
	set("assigned_rider_name", m.AssignedRiderName, m.AssignedRiderName != nil)
	set("assigned_rider_email", m.AssignedRiderEmail, m.AssignedRiderEmail != nil)
	set("assigned_at", m.AssignedAt, m.AssignedAt != nil)
	set("picked_at", m.PickedAt, m.PickedAt != nil)
	set("delivered_at", m.DeliveredAt, m.DeliveredAt != nil)
	set("cashed_out_at", m.CashedOutAt, m.CashedOutAt != nil)

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *m.ID}).
		Suffix("RETURNING " + strings.Join(parcelColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository update error: %w", err)
	}

	parcelModel, err := scanParcel(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrParcelNotFound
		}
		return nil, fmt.Errorf("unexpected parcel repository update error: %w", err)
	}

	return ToDomain(parcelModel), nil
}

// Delete removes the parcel and, through the foreign key, its history.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM parcels WHERE id = $1`, id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return parcel.ErrParcelHasPayments
		}
		return fmt.Errorf("unexpected parcel repository delete error: %w", err)
	}

	if result.RowsAffected() == 0 {
		return parcel.ErrParcelNotFound
	}

	return nil
}

// CountInFlightByRider counts parcels that still keep the rider busy.
func (r *Repository) CountInFlightByRider(ctx context.Context, riderID int64) (int64, error) {
	query, args, err := qb.
		Select("COUNT(*)").
		From("parcels").
		Where(sq.Eq{
			"assigned_rider_id": riderID,
			"delivery_status":   statusStrings(entities.InFlightStatuses),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected parcel repository count error: %w", err)
	}

	var count int64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("unexpected parcel repository count error: %w", err)
	}
	return count, nil
}

// ListFundedUnpaid finds unpaid parcels that already have a recorded payment.
func (r *Repository) ListFundedUnpaid(ctx context.Context, limit uint64) ([]int64, error) {
	query := `SELECT p.id
		FROM parcels p
		WHERE p.payment_status = 'unpaid'
		  AND EXISTS (SELECT 1 FROM payments pm WHERE pm.parcel_id = p.id)
		ORDER BY p.id
		LIMIT $1`

	rows, err := r.querier.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository funded unpaid error: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 8)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unexpected parcel repository funded unpaid error: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected parcel repository funded unpaid error: %w", err)
	}

	return ids, nil
}

func (r *Repository) AddEvent(ctx context.Context, event entities.ParcelEvent) (int64, error) {
	query := `INSERT INTO parcel_events (parcel_id, field, from_status, to_status, actor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.querier.QueryRow(
		ctx,
		query,
		event.ParcelID,
		event.Field.String(),
		event.FromStatus,
		event.ToStatus,
		event.Actor,
	).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return 0, parcel.ErrParcelNotFound
		}
		return 0, fmt.Errorf("unexpected parcel repository add event error: %w", err)
	}

	return id, nil
}

// ListEvents returns the parcel history in the order it happened.
func (r *Repository) ListEvents(ctx context.Context, parcelID int64) ([]entities.ParcelEvent, error) {
	query := `SELECT id, parcel_id, field, from_status, to_status, actor, created_at
		FROM parcel_events
		WHERE parcel_id = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, parcelID)
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository list events error: %w", err)
	}
	defer rows.Close()

	events := make([]entities.ParcelEvent, 0, 8)
	for rows.Next() {
		var eventModel ParcelEventDB
		err := rows.Scan(
			&eventModel.ID,
			&eventModel.ParcelID,
			&eventModel.Field,
			&eventModel.FromStatus,
			&eventModel.ToStatus,
			&eventModel.Actor,
			&eventModel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected parcel repository list events error: %w", err)
		}
		events = append(events, EventToDomain(&eventModel))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected parcel repository list events error: %w", err)
	}

	return events, nil
}

func statusStrings(statuses []entities.DeliveryStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = s.String()
	}
	return result
}

func scanParcel(row pgx.Row) (*ParcelDB, error) {
	var p ParcelDB
	err := row.Scan(
		&p.ID,
		&p.CreatedBy,
		&p.Title,
		&p.Type,
		&p.WeightKg,
		&p.SenderName,
		&p.SenderDistrict,
		&p.ReceiverName,
		&p.ReceiverDistrict,
		&p.ReceiverAddress,
		&p.DeliveryCost,
		&p.PaymentStatus,
		&p.DeliveryStatus,
		&p.CashoutStatus,
		&p.AssignedRiderID,
		&p.AssignedRiderName,
		&p.AssignedRiderEmail,
		&p.AssignedAt,
		&p.PickedAt,
		&p.DeliveredAt,
		&p.CashedOutAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
