package parcel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"parcel-service/internal/entities"
	"parcel-service/internal/pkg/statemachine"
	"parcel-service/internal/service/user"
	"parcel-service/pkg/logger"
)

type Options struct {
	// StrictTransitions enforces the delivery table and the assigned-rider check.
	StrictTransitions bool
	// CashoutRequiresDelivery refuses cashout before the parcel is delivered.
	CashoutRequiresDelivery bool
}

type Parcel struct {
	repository Repository
	riders     RiderRepository
	payments   PaymentRepository
	users      UserRepository
	publisher  EventPublisher
	txManager  TxManager
	log        serviceLogger
	opts       Options
	now        func() time.Time
}

func New(
	repository Repository,
	riders RiderRepository,
	payments PaymentRepository,
	users UserRepository,
	publisher EventPublisher,
	txManager TxManager,
	log serviceLogger,
	opts Options,
) *Parcel {
	return &Parcel{
		repository: repository,
		riders:     riders,
		payments:   payments,
		users:      users,
		publisher:  publisher,
		txManager:  txManager,
		log:        log,
		opts:       opts,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Parcel) CreateParcel(ctx context.Context, parcelModify entities.ParcelModify, creator string) (int64, error) {
	creator = normalizeEmail(creator)
	if creator == "" {
		return 0, ErrMissingCreator
	}
	if err := validateCreate(parcelModify); err != nil {
		return 0, err
	}

	title := strings.TrimSpace(*parcelModify.Title)
	paymentStatus := entities.PaymentUnpaid
	deliveryStatus := entities.DeliveryPending
	cashoutStatus := entities.CashoutNone

	// server owned fields are never taken from input
	parcelModify.ID = nil
	parcelModify.Title = &title
	parcelModify.CreatedBy = &creator
	parcelModify.PaymentStatus = &paymentStatus
	parcelModify.DeliveryStatus = &deliveryStatus
	parcelModify.CashoutStatus = &cashoutStatus
	parcelModify.AssignedRider = nil
	parcelModify.AssignedAt = nil
	parcelModify.PickedAt = nil
	parcelModify.DeliveredAt = nil
	parcelModify.CashedOutAt = nil

	id, err := s.repository.Create(ctx, parcelModify)
	if err != nil {
		return 0, fmt.Errorf("create parcel: %w", err)
	}
	return id, nil
}

// ListParcels returns every parcel when creatorEmail is empty, newest first.
func (s *Parcel) ListParcels(ctx context.Context, creatorEmail string) ([]entities.Parcel, error) {
	filter := entities.ParcelFilter{}
	if email := normalizeEmail(creatorEmail); email != "" {
		filter.CreatedBy = &email
	}

	parcels, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	return parcels, nil
}

// ListAssignable is the paid and pending queue, oldest first.
func (s *Parcel) ListAssignable(ctx context.Context) ([]entities.Parcel, error) {
	paid := entities.PaymentPaid
	parcels, err := s.repository.List(ctx, entities.ParcelFilter{
		PaymentStatus:  &paid,
		DeliveryStatus: []entities.DeliveryStatus{entities.DeliveryPending},
		OldestFirst:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("list assignable parcels: %w", err)
	}
	return parcels, nil
}

func (s *Parcel) GetParcel(ctx context.Context, id int64) (*entities.Parcel, error) {
	if !isValidID(id) {
		return nil, ErrInvalidParcelID
	}

	parcel, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get parcel: %w", err)
	}
	return parcel, nil
}

func (s *Parcel) ListParcelEvents(ctx context.Context, id int64) ([]entities.ParcelEvent, error) {
	if !isValidID(id) {
		return nil, ErrInvalidParcelID
	}

	if _, err := s.repository.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get parcel: %w", err)
	}

	events, err := s.repository.ListEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list parcel events: %w", err)
	}
	return events, nil
}

// RecordPayment stores the payment and marks the parcel paid in one transaction.
// Replaying the same transaction reference for the same parcel is a no-op that
// still repairs the parcel status, so it doubles as the reconciliation path.
func (s *Parcel) RecordPayment(ctx context.Context, paymentModify entities.PaymentModify) (*entities.PaymentResult, error) {
	if err := validatePayment(paymentModify); err != nil {
		return nil, err
	}

	ref := strings.TrimSpace(*paymentModify.TransactionRef)
	payer := normalizeEmail(*paymentModify.PayerEmail)
	method := entities.DefaultPaymentMethod
	if paymentModify.Method != nil && strings.TrimSpace(*paymentModify.Method) != "" {
		method = strings.TrimSpace(*paymentModify.Method)
	}
	paymentModify.TransactionRef = &ref
	paymentModify.PayerEmail = &payer
	paymentModify.Method = &method
	parcelID := *paymentModify.ParcelID

	var (
		result entities.PaymentResult
		events []entities.ParcelEvent
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		result = entities.PaymentResult{}
		events = nil

		parcel, err := s.repository.GetByIDForUpdate(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}

		existing, err := s.payments.GetByTransactionRef(ctx, ref)
		switch {
		case err == nil:
			if existing.ParcelID != parcelID {
				return fmt.Errorf("%w: %s", ErrPaymentConflict, ref)
			}
			result.Payment = *existing
			result.AlreadyRecorded = true
		case errors.Is(err, errPaymentNotFound):
			created, err := s.payments.Create(ctx, paymentModify)
			if err != nil {
				if errors.Is(err, errDuplicateTransaction) {
					return fmt.Errorf("%w: %s", ErrPaymentConflict, ref)
				}
				return fmt.Errorf("create payment: %w", err)
			}
			result.Payment = *created
			result.PaymentRecorded = true
		default:
			return fmt.Errorf("get payment by transaction ref: %w", err)
		}

		if parcel.PaymentStatus == entities.PaymentPaid {
			return nil
		}

		paid := entities.PaymentPaid
		if _, err := s.repository.Update(ctx, entities.ParcelModify{
			ID:            &parcelID,
			PaymentStatus: &paid,
		}); err != nil {
			return fmt.Errorf("mark parcel paid: %w", err)
		}

		event, err := s.addEvent(ctx, parcelID, entities.EventFieldPayment,
			parcel.PaymentStatus.String(), paid.String(), payer)
		if err != nil {
			return err
		}
		events = append(events, event)
		result.ParcelMarkedPaid = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &result, nil
}

// AssignRider hands a paid pending parcel to a rider and marks the rider busy.
// Rider name and email are copied from the rider record, not from input.
func (s *Parcel) AssignRider(ctx context.Context, parcelID, riderID int64, actor string) (*entities.AssignmentResult, error) {
	if !isValidID(parcelID) {
		return nil, ErrInvalidParcelID
	}
	if !isValidID(riderID) {
		return nil, ErrInvalidRiderID
	}
	actor = normalizeEmail(actor)

	var (
		result entities.AssignmentResult
		events []entities.ParcelEvent
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		result = entities.AssignmentResult{}
		events = nil

		parcel, err := s.repository.GetByIDForUpdate(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}
		if parcel.PaymentStatus != entities.PaymentPaid {
			return ErrParcelNotPaid
		}
		if err := statemachine.Delivery.Can(parcel.DeliveryStatus, entities.DeliveryAssigned); err != nil {
			return err
		}

		rider, err := s.riders.GetByIDForUpdate(ctx, riderID)
		if err != nil {
			return fmt.Errorf("get rider: %w", err)
		}
		if s.opts.StrictTransitions && rider.Status != entities.RiderActive {
			return fmt.Errorf("%w: rider %d is %s", ErrRiderNotActive, rider.ID, rider.Status)
		}

		assigned := entities.DeliveryAssigned
		now := s.now()
		updated, err := s.repository.Update(ctx, entities.ParcelModify{
			ID:             &parcelID,
			DeliveryStatus: &assigned,
			AssignedRider: &entities.AssignedRider{
				ID:    rider.ID,
				Name:  rider.Name,
				Email: rider.Email,
			},
			AssignedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("assign parcel: %w", err)
		}
		result.Parcel = *updated
		result.ParcelUpdated = true

		inDelivery := entities.RiderInDelivery
		if _, err := s.riders.Update(ctx, entities.RiderModify{
			ID:         &rider.ID,
			WorkStatus: &inDelivery,
		}); err != nil {
			return fmt.Errorf("update rider work status: %w", err)
		}
		result.RiderUpdated = true

		event, err := s.addEvent(ctx, parcelID, entities.EventFieldDelivery,
			parcel.DeliveryStatus.String(), assigned.String(), actor)
		if err != nil {
			return err
		}
		events = append(events, event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return &result, nil
}

// UpdateDeliveryStatus moves the parcel along the delivery table. picked_at and
// delivered_at are written once and never overwritten. A terminal status frees
// the rider when no other parcel keeps them busy.
func (s *Parcel) UpdateDeliveryStatus(
	ctx context.Context,
	parcelID int64,
	status entities.DeliveryStatus,
	actor string,
) (*entities.Parcel, error) {
	if !isValidID(parcelID) {
		return nil, ErrInvalidParcelID
	}
	if !statemachine.Delivery.Known(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	actor = normalizeEmail(actor)

	var (
		updated *entities.Parcel
		events  []entities.ParcelEvent
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		events = nil

		parcel, err := s.repository.GetByIDForUpdate(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}

		if s.opts.StrictTransitions {
			if err := statemachine.Delivery.Can(parcel.DeliveryStatus, status); err != nil {
				return err
			}
			if parcel.AssignedRider == nil || !strings.EqualFold(parcel.AssignedRider.Email, actor) {
				return ErrNotAssignedRider
			}
		}

		now := s.now()
		parcelModify := entities.ParcelModify{
			ID:             &parcelID,
			DeliveryStatus: &status,
		}
		if status == entities.DeliveryInTransit && parcel.PickedAt == nil {
			parcelModify.PickedAt = &now
		}
		if status == entities.DeliveryDelivered && parcel.DeliveredAt == nil {
			parcelModify.DeliveredAt = &now
		}

		updated, err = s.repository.Update(ctx, parcelModify)
		if err != nil {
			return fmt.Errorf("update delivery status: %w", err)
		}

		event, err := s.addEvent(ctx, parcelID, entities.EventFieldDelivery,
			parcel.DeliveryStatus.String(), status.String(), actor)
		if err != nil {
			return err
		}
		events = append(events, event)

		if status.IsTerminal() && parcel.AssignedRider != nil {
			return s.releaseRider(ctx, parcel.AssignedRider.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return updated, nil
}

// Cashout marks the parcel's payment as disbursed. Only the assigned rider or
// an admin may do it, and only once.
func (s *Parcel) Cashout(ctx context.Context, parcelID int64, actor string) (*entities.Parcel, error) {
	if !isValidID(parcelID) {
		return nil, ErrInvalidParcelID
	}
	actor = normalizeEmail(actor)

	var (
		updated *entities.Parcel
		events  []entities.ParcelEvent
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		events = nil

		parcel, err := s.repository.GetByIDForUpdate(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}

		isAssigned := parcel.AssignedRider != nil && strings.EqualFold(parcel.AssignedRider.Email, actor)
		if !isAssigned {
			admin, err := s.isAdmin(ctx, actor)
			if err != nil {
				return err
			}
			if !admin {
				return ErrForbidden
			}
		}

		if err := statemachine.Cashout.Can(parcel.CashoutStatus, entities.CashoutCashedOut); err != nil {
			return err
		}
		if s.opts.CashoutRequiresDelivery && !parcel.DeliveryStatus.IsTerminal() {
			return fmt.Errorf("%w: cashout requires a delivered parcel, delivery status is %s",
				statemachine.ErrInvalidTransition, parcel.DeliveryStatus)
		}

		cashedOut := entities.CashoutCashedOut
		now := s.now()
		updated, err = s.repository.Update(ctx, entities.ParcelModify{
			ID:            &parcelID,
			CashoutStatus: &cashedOut,
			CashedOutAt:   &now,
		})
		if err != nil {
			return fmt.Errorf("cashout parcel: %w", err)
		}

		event, err := s.addEvent(ctx, parcelID, entities.EventFieldCashout,
			parcel.CashoutStatus.String(), cashedOut.String(), actor)
		if err != nil {
			return err
		}
		events = append(events, event)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	return updated, nil
}

// DeleteParcel lets the creator drop an unpaid parcel and an admin drop any
// parcel that has no payments.
func (s *Parcel) DeleteParcel(ctx context.Context, parcelID int64, actor string) error {
	if !isValidID(parcelID) {
		return ErrInvalidParcelID
	}
	actor = normalizeEmail(actor)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		parcel, err := s.repository.GetByIDForUpdate(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("get parcel: %w", err)
		}

		admin, err := s.isAdmin(ctx, actor)
		if err != nil {
			return err
		}
		isOwner := strings.EqualFold(parcel.CreatedBy, actor)
		if !admin && !isOwner {
			return ErrForbidden
		}
		if !admin && parcel.PaymentStatus == entities.PaymentPaid {
			return ErrParcelHasPayments
		}

		count, err := s.payments.CountByParcel(ctx, parcelID)
		if err != nil {
			return fmt.Errorf("count parcel payments: %w", err)
		}
		if count > 0 {
			return ErrParcelHasPayments
		}

		if err := s.repository.Delete(ctx, parcelID); err != nil {
			return fmt.Errorf("delete parcel: %w", err)
		}
		return nil
	})
}

func (s *Parcel) releaseRider(ctx context.Context, riderID int64) error {
	inFlight, err := s.repository.CountInFlightByRider(ctx, riderID)
	if err != nil {
		return fmt.Errorf("count rider parcels: %w", err)
	}
	if inFlight > 0 {
		return nil
	}

	idle := entities.RiderIdle
	_, err = s.riders.Update(ctx, entities.RiderModify{
		ID:         &riderID,
		WorkStatus: &idle,
	})
	if err != nil && !errors.Is(err, ErrRiderNotFound) {
		return fmt.Errorf("release rider: %w", err)
	}
	return nil
}

func (s *Parcel) isAdmin(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get actor role: %w", err)
	}
	return u.Role == entities.RoleAdmin, nil
}

func (s *Parcel) addEvent(
	ctx context.Context,
	parcelID int64,
	field entities.EventField,
	from, to, actor string,
) (entities.ParcelEvent, error) {
	event := entities.ParcelEvent{
		ParcelID:   parcelID,
		Field:      field,
		FromStatus: from,
		ToStatus:   to,
		Actor:      actor,
	}

	id, err := s.repository.AddEvent(ctx, event)
	if err != nil {
		return entities.ParcelEvent{}, fmt.Errorf("add %s event: %w", field, err)
	}
	event.ID = id
	event.CreatedAt = s.now()
	return event, nil
}

// publish runs after commit. The state change already happened, so failures are only logged.
func (s *Parcel) publish(ctx context.Context, events []entities.ParcelEvent) {
	for _, event := range events {
		if err := s.publisher.PublishStatusChanged(ctx, event); err != nil {
			s.log.Warn("publish parcel event",
				logger.NewField("parcel_id", event.ParcelID),
				logger.NewField("field", event.Field.String()),
				logger.NewField("to", event.ToStatus),
				logger.NewField("error", err),
			)
		}
	}
}
