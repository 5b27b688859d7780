package rider

import (
	"context"
	"fmt"
	"strings"

	"parcel-service/internal/entities"
	"parcel-service/internal/pkg/statemachine"
)

type Options struct {
	// StrictTransitions rejects status changes missing from the rider table.
	StrictTransitions bool
}

type Rider struct {
	repository Repository
	users      UserRepository
	parcels    ParcelRepository
	txManager  TxManager
	opts       Options
}

func New(
	repository Repository,
	users UserRepository,
	parcels ParcelRepository,
	txManager TxManager,
	opts Options,
) *Rider {
	return &Rider{
		repository: repository,
		users:      users,
		parcels:    parcels,
		txManager:  txManager,
		opts:       opts,
	}
}

func (s *Rider) Apply(ctx context.Context, riderModify entities.RiderModify) (int64, error) {
	if riderModify.Name == nil || riderModify.Email == nil || riderModify.District == nil {
		return 0, ErrMissingRequiredFields
	}
	if isBlank(*riderModify.Name) {
		return 0, ErrInvalidName
	}
	if isBlank(*riderModify.District) {
		return 0, ErrInvalidDistrict
	}

	email := normalizeEmail(*riderModify.Email)
	if !isValidEmail(email) {
		return 0, ErrInvalidEmail
	}

	status := entities.RiderPending
	workStatus := entities.RiderIdle
	name := strings.TrimSpace(*riderModify.Name)
	district := strings.TrimSpace(*riderModify.District)

	riderModify.ID = nil
	riderModify.Name = &name
	riderModify.Email = &email
	riderModify.District = &district
	riderModify.Status = &status
	riderModify.WorkStatus = &workStatus

	id, err := s.repository.Create(ctx, riderModify)
	if err != nil {
		return 0, fmt.Errorf("create rider: %w", err)
	}
	return id, nil
}

func (s *Rider) GetRider(ctx context.Context, id int64) (*entities.Rider, error) {
	if !isValidID(id) {
		return nil, ErrInvalidRiderID
	}

	rider, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rider: %w", err)
	}
	return rider, nil
}

func (s *Rider) ListPending(ctx context.Context) ([]entities.Rider, error) {
	return s.list(ctx, entities.RiderFilter{Status: statusPtr(entities.RiderPending)})
}

// ListActive filters by a case-insensitive name substring when nameFilter is not blank.
func (s *Rider) ListActive(ctx context.Context, nameFilter string) ([]entities.Rider, error) {
	filter := entities.RiderFilter{Status: statusPtr(entities.RiderActive)}
	if name := strings.TrimSpace(nameFilter); name != "" {
		filter.NameContains = &name
	}
	return s.list(ctx, filter)
}

func (s *Rider) ListByDistrict(ctx context.Context, district string) ([]entities.Rider, error) {
	district = strings.TrimSpace(district)
	if district == "" {
		return nil, ErrInvalidDistrict
	}
	return s.list(ctx, entities.RiderFilter{
		Status:   statusPtr(entities.RiderActive),
		District: &district,
	})
}

// Approve activates the rider and promotes the linked user, in one transaction.
// Approving an active rider changes nothing but still repairs a stale user role.
func (s *Rider) Approve(ctx context.Context, id int64) (*entities.RiderTransitionResult, error) {
	return s.transition(ctx, id, entities.RiderActive, entities.RoleRider)
}

// Deactivate is the reverse of Approve: the rider goes inactive and the user back to "user".
func (s *Rider) Deactivate(ctx context.Context, id int64) (*entities.RiderTransitionResult, error) {
	return s.transition(ctx, id, entities.RiderInactive, entities.RoleUser)
}

// Reject removes a pending application. The linked user is untouched.
func (s *Rider) Reject(ctx context.Context, id int64) error {
	if !isValidID(id) {
		return ErrInvalidRiderID
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		rider, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get rider: %w", err)
		}

		if rider.Status != entities.RiderPending {
			return fmt.Errorf("%w: only pending applications can be rejected, rider is %s",
				statemachine.ErrInvalidTransition, rider.Status)
		}

		if err := s.repository.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete rider: %w", err)
		}
		return nil
	})
}

func (s *Rider) PendingTasks(ctx context.Context, email string) ([]entities.Parcel, error) {
	return s.tasks(ctx, email, entities.InFlightStatuses)
}

func (s *Rider) CompletedTasks(ctx context.Context, email string) ([]entities.Parcel, error) {
	return s.tasks(ctx, email, entities.CompletedStatuses)
}

func (s *Rider) transition(
	ctx context.Context,
	id int64,
	target entities.RiderStatus,
	role entities.UserRole,
) (*entities.RiderTransitionResult, error) {
	if !isValidID(id) {
		return nil, ErrInvalidRiderID
	}

	var result entities.RiderTransitionResult
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		result = entities.RiderTransitionResult{}

		rider, err := s.repository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get rider: %w", err)
		}

		if rider.Status != target {
			if s.opts.StrictTransitions {
				if err := statemachine.Rider.Can(rider.Status, target); err != nil {
					return err
				}
			}

			rider, err = s.repository.Update(ctx, entities.RiderModify{
				ID:     &id,
				Status: &target,
			})
			if err != nil {
				return fmt.Errorf("update rider status: %w", err)
			}
			result.RiderUpdated = true
		}
		result.Rider = *rider

		user, err := s.users.GetByEmail(ctx, rider.Email)
		if err != nil {
			return fmt.Errorf("get linked user: %w", err)
		}

		// admins keep their role whatever happens to their rider record
		if user.Role == entities.RoleAdmin || user.Role == role {
			return nil
		}

		_, err = s.users.Update(ctx, entities.UserModify{
			ID:   &user.ID,
			Role: &role,
		})
		if err != nil {
			return fmt.Errorf("update linked user role: %w", err)
		}
		result.RoleUpdated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Rider) list(ctx context.Context, filter entities.RiderFilter) ([]entities.Rider, error) {
	riders, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list riders: %w", err)
	}
	return riders, nil
}

func (s *Rider) tasks(ctx context.Context, email string, statuses []entities.DeliveryStatus) ([]entities.Parcel, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	parcels, err := s.parcels.List(ctx, entities.ParcelFilter{
		AssignedEmail:  &email,
		DeliveryStatus: statuses,
	})
	if err != nil {
		return nil, fmt.Errorf("list rider tasks: %w", err)
	}
	return parcels, nil
}

func statusPtr(s entities.RiderStatus) *entities.RiderStatus {
	return &s
}
