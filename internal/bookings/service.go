package bookings

import (
	"context"
	"errors"
	"time"

	"eventplanner/internal/catalog"
	"eventplanner/internal/notifications"
	"eventplanner/internal/policy"
	"eventplanner/internal/shared/constants"
	"eventplanner/pkg/cache"
	"eventplanner/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service is the booking engine: the only writer of booking rows
type Service interface {
	CreateBooking(ctx context.Context, principal policy.Principal, req *CreateBookingRequest) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, principal policy.Principal, bookingID uuid.UUID, req *UpdateStatusRequest) (*Booking, error)
	UpdateBookingDetails(ctx context.Context, principal policy.Principal, bookingID uuid.UUID, req *UpdateBookingRequest) (*Booking, error)
	DeleteBooking(ctx context.Context, principal policy.Principal, bookingID uuid.UUID) error

	SetCacheService(cacheService cache.Service)
	SetPublisher(publisher notifications.Publisher)
	SetSlotLocker(locker SlotLocker)
}

type service struct {
	repo      Repository
	catalog   Catalog
	guard     accessGuard
	validate  *validator.Validate
	cache     cache.Service
	publisher notifications.Publisher
	locker    SlotLocker
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, catalog Catalog) Service {
	return &service{
		repo:      repo,
		catalog:   catalog,
		guard:     accessGuard{catalog: catalog},
		validate:  newValidator(),
		publisher: notifications.NoopPublisher{},
		locker:    noopSlotLocker{},
		log:       logger.GetDefault(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

func (s *service) SetPublisher(publisher notifications.Publisher) {
	s.publisher = publisher
}

func (s *service) SetSlotLocker(locker SlotLocker) {
	s.locker = locker
}

func (s *service) CreateBooking(ctx context.Context, principal policy.Principal, req *CreateBookingRequest) (*Booking, error) {
	if !policy.CanAct(principal, policy.Resource{}, policy.OpCreate).Allowed {
		return nil, ErrForbidden
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationErrors(err)
	}
	in, err := req.parse()
	if err != nil {
		return nil, err
	}

	// Someone else's event is reported as missing
	event, err := s.catalog.GetEvent(ctx, in.EventID)
	if err != nil {
		return nil, notFoundOr(err, catalog.ErrEventNotFound, "event")
	}
	if event.CustomerID != principal.ID {
		return nil, &NotFoundError{Resource: "event"}
	}

	vendor, err := s.catalog.GetVendor(ctx, in.VendorID)
	if err != nil {
		return nil, notFoundOr(err, catalog.ErrVendorNotFound, "vendor")
	}
	if !vendor.IsAvailable {
		return nil, &UnavailableError{Resource: "vendor"}
	}

	svc, err := s.catalog.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFoundOr(err, catalog.ErrServiceNotFound, "service")
	}
	if svc.VendorID != vendor.ID {
		return nil, &NotFoundError{Resource: "service"}
	}
	if !svc.IsAvailable {
		return nil, &UnavailableError{Resource: "service"}
	}

	if err := checkCapacity(svc, in.Quantity); err != nil {
		return nil, err
	}

	totalCost, err := CalculateCost(svc.PriceType, svc.BasePrice, in.Quantity, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &Booking{
		ID:                  uuid.New(),
		EventID:             event.ID,
		VendorID:            vendor.ID,
		ServiceID:           svc.ID,
		CustomerID:          principal.ID,
		Quantity:            in.Quantity,
		UnitPrice:           roundCents(svc.BasePrice),
		PriceType:           svc.PriceType,
		TotalCost:           totalCost,
		BookingDate:         in.BookingDate,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		SpecialRequirements: in.SpecialRequirements,
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = s.writeWithSlotCheck(ctx, booking, func(repo Repository) error {
		return repo.CreateBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.EventID.String(), booking.CustomerID.String(), booking.TotalCost)
	s.invalidate(ctx, booking.ID)
	s.publish(ctx, notifications.BookingEventCreated, booking, principal.ID, "")

	return booking, nil
}

func (s *service) UpdateBookingStatus(ctx context.Context, principal policy.Principal, bookingID uuid.UUID, req *UpdateStatusRequest) (*Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationErrors(err)
	}
	to, err := ParseStatus(req.Status)
	if err != nil {
		return nil, ValidationErrors{{Field: "status", Message: err.Error()}}
	}

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.authorize(ctx, principal, booking, policy.OpUpdateStatus); err != nil {
		return nil, err
	}

	from := booking.Status
	if err := ValidateTransition(from, to); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, from, to, now); err != nil {
		return nil, err
	}
	booking.Status = to
	booking.UpdatedAt = now

	s.log.LogBookingStatusChanged(ctx, booking.ID.String(), from.String(), to.String(), principal.ID.String())
	s.invalidate(ctx, booking.ID)
	s.publish(ctx, notifications.BookingEventStatusChanged, booking, principal.ID, from)

	return booking, nil
}

// UpdateBookingDetails edits a pending booking. Pricing reuses the stored
// unit price and price type so later catalog changes never leak in.
func (s *service) UpdateBookingDetails(ctx context.Context, principal policy.Principal, bookingID uuid.UUID, req *UpdateBookingRequest) (*Booking, error) {
	patch, err := req.parse()
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.authorize(ctx, principal, booking, policy.OpUpdateDetails); err != nil {
		return nil, err
	}

	if patch.isEmpty() {
		return booking, nil
	}

	updated := *booking
	if patch.Quantity != nil {
		updated.Quantity = *patch.Quantity
	}
	if patch.StartTime.Set {
		updated.StartTime = patch.StartTime.Ptr()
	}
	if patch.EndTime.Set {
		updated.EndTime = patch.EndTime.Ptr()
	}
	if patch.SpecialRequirements.Set {
		updated.SpecialRequirements = patch.SpecialRequirements.Ptr()
	}

	quantityChanged := updated.Quantity != booking.Quantity
	timesChanged := patch.StartTime.Set || patch.EndTime.Set

	if quantityChanged {
		svc, err := s.catalog.GetService(ctx, updated.ServiceID)
		switch {
		case err == nil:
			if err := checkCapacity(svc, updated.Quantity); err != nil {
				return nil, err
			}
		case !errors.Is(err, catalog.ErrServiceNotFound):
			return nil, err
		}
	}

	if quantityChanged || timesChanged {
		totalCost, err := CalculateCost(updated.PriceType, updated.UnitPrice, updated.Quantity, updated.StartTime, updated.EndTime)
		if err != nil {
			return nil, err
		}
		updated.TotalCost = totalCost
	}

	updated.UpdatedAt = s.now()

	write := func(repo Repository) error {
		return repo.UpdateBookingDetails(ctx, &updated)
	}
	if timesChanged {
		err = s.writeWithSlotCheck(ctx, &updated, write)
	} else {
		err = write(s.repo)
	}
	if err != nil {
		return nil, err
	}

	s.log.LogBookingUpdated(ctx, updated.ID.String(), principal.ID.String(), updated.TotalCost)
	s.invalidate(ctx, updated.ID)
	s.publish(ctx, notifications.BookingEventUpdated, &updated, principal.ID, "")

	return &updated, nil
}

func (s *service) DeleteBooking(ctx context.Context, principal policy.Principal, bookingID uuid.UUID) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.guard.authorize(ctx, principal, booking, policy.OpDelete); err != nil {
		return err
	}

	// Anything past pending is cancelled through the status lifecycle
	if booking.Status != StatusPending {
		return ErrInvalidState
	}

	if err := s.repo.DeleteBooking(ctx, booking.ID); err != nil {
		return err
	}

	s.log.LogBookingDeleted(ctx, booking.ID.String(), principal.ID.String())
	s.invalidate(ctx, booking.ID)
	s.publish(ctx, notifications.BookingEventDeleted, booking, principal.ID, "")

	return nil
}

// writeWithSlotCheck runs write after confirming no active booking for the
// same vendor, service and date overlaps the booking's window. The check and
// the write share one serializable transaction.
func (s *service) writeWithSlotCheck(ctx context.Context, booking *Booking, write func(repo Repository) error) error {
	if !booking.HasTimeSlot() {
		return write(s.repo)
	}

	release, err := s.locker.Acquire(ctx, booking.VendorID, booking.ServiceID, booking.BookingDate)
	if err != nil {
		if errors.Is(err, ErrSchedulingConflict) || ctx.Err() != nil {
			return err
		}
		s.log.WithError(err).WarnContext(ctx, "Slot lock unavailable, relying on transaction isolation",
			"vendor_id", booking.VendorID.String(),
			"service_id", booking.ServiceID.String(),
		)
		release = func() {}
	}
	defer release()

	return s.repo.WithSerializableTx(ctx, func(tx Repository) error {
		existing, err := tx.ListActiveInSlot(ctx, booking.VendorID, booking.ServiceID, booking.BookingDate)
		if err != nil {
			return err
		}
		for i := range existing {
			other := &existing[i]
			if other.ID == booking.ID || !other.HasTimeSlot() || !other.Status.IsActive() {
				continue
			}
			if Overlaps(*booking.StartTime, *booking.EndTime, *other.StartTime, *other.EndTime) {
				return ErrSchedulingConflict
			}
		}
		return write(tx)
	})
}

func (s *service) invalidate(ctx context.Context, bookingID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, constants.BuildBookingDetailKey(bookingID.String())); err != nil {
		s.log.WithError(err).WarnContext(ctx, "Failed to invalidate booking cache", "booking_id", bookingID.String())
	}
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_BOOKING_STATS); err != nil {
		s.log.WithError(err).WarnContext(ctx, "Failed to invalidate booking stats cache")
	}
}

// publish never fails the request; the booking is already committed
func (s *service) publish(ctx context.Context, eventType notifications.BookingEventType, booking *Booking, actorID uuid.UUID, previous Status) {
	message := notifications.NewBookingMessageBuilder(eventType).
		WithBooking(booking.ID, booking.EventID, booking.VendorID, booking.ServiceID, booking.CustomerID).
		WithActor(actorID).
		WithStatus(booking.Status.String(), previous.String()).
		WithCost(booking.TotalCost, booking.BookingDate.String()).
		OccurredAt(s.now()).
		Build()

	if err := s.publisher.PublishBookingEvent(ctx, message); err != nil {
		s.log.WithError(err).WarnContext(ctx, "Failed to publish booking event",
			"booking_id", booking.ID.String(),
			"type", string(eventType),
		)
	}
}

func checkCapacity(svc *catalog.Service, quantity int) error {
	if svc.Capacity != nil && *svc.Capacity > 0 && quantity > *svc.Capacity {
		return &CapacityExceededError{Limit: *svc.Capacity}
	}
	return nil
}

func notFoundOr(err, sentinel error, resource string) error {
	if errors.Is(err, sentinel) {
		return &NotFoundError{Resource: resource}
	}
	return err
}
