package bookings

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes mapped to a scheduling conflict
const (
	pgSerializationFailure = "40001"
	pgUniqueViolation      = "23505"
)

type Repository interface {
	// WithSerializableTx runs fn against a repository bound to a
	// SERIALIZABLE transaction.
	WithSerializableTx(ctx context.Context, fn func(tx Repository) error) error

	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingDetails(ctx context.Context, id uuid.UUID) (*BookingDetails, error)
	ListActiveInSlot(ctx context.Context, vendorID, serviceID uuid.UUID, date Date) ([]Booking, error)

	// Conditional writes report ErrInvalidState / ErrInvalidTransition when
	// the row left the expected status concurrently.
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to Status, updatedAt time.Time) error
	UpdateBookingDetails(ctx context.Context, booking *Booking) error
	DeleteBooking(ctx context.Context, id uuid.UUID) error

	ListBookings(ctx context.Context, scope Scope, filter ListFilter) ([]BookingDetails, int64, error)
	GetBookingStats(ctx context.Context, scope Scope) (*Stats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const detailColumns = `b.*,
	COALESCE(e.title, '') AS event_title,
	e.start_date AS event_date,
	COALESCE(e.location, '') AS event_location,
	COALESCE(vp.business_name, '') AS vendor_name,
	COALESCE(vp.vendor_type, '') AS vendor_type,
	COALESCE(vs.service_name, '') AS service_name,
	COALESCE(u.first_name, '') AS customer_first_name,
	COALESCE(u.last_name, '') AS customer_last_name`

func (r *repository) WithSerializableTx(ctx context.Context, fn func(tx Repository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	return mapStoreError(err)
}

func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return mapStoreError(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "booking"}
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingDetails(ctx context.Context, id uuid.UUID) (*BookingDetails, error) {
	var rows []BookingDetails
	err := r.joined(ctx).
		Where("b.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Resource: "booking"}
	}
	return &rows[0], nil
}

func (r *repository) ListActiveInSlot(ctx context.Context, vendorID, serviceID uuid.UUID, date Date) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND service_id = ? AND booking_date = ?", vendorID, serviceID, date).
		Where("status IN ?", activeStatuses).
		Where("start_time IS NOT NULL AND end_time IS NOT NULL").
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to Status, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

func (r *repository) UpdateBookingDetails(ctx context.Context, booking *Booking) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", booking.ID, StatusPending).
		Updates(map[string]interface{}{
			"quantity":             booking.Quantity,
			"start_time":           booking.StartTime,
			"end_time":             booking.EndTime,
			"special_requirements": booking.SpecialRequirements,
			"total_cost":           booking.TotalCost,
			"updated_at":           booking.UpdatedAt,
		})
	if result.Error != nil {
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}

func (r *repository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, StatusPending).
		Delete(&Booking{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidState
	}
	return nil
}

func (r *repository) ListBookings(ctx context.Context, scope Scope, filter ListFilter) ([]BookingDetails, int64, error) {
	var total int64
	if err := r.filtered(r.scoped(ctx, scope), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]BookingDetails, 0, filter.Limit)
	if total == 0 {
		return rows, 0, nil
	}

	err := r.filtered(r.applyScope(r.joined(ctx), scope), filter).
		Order("b.booking_date DESC, b.created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *repository) GetBookingStats(ctx context.Context, scope Scope) (*Stats, error) {
	var stats Stats
	err := r.scoped(ctx, scope).
		Select(`COUNT(*) AS total_bookings,
			COALESCE(SUM(b.total_cost), 0) AS total_spent,
			COUNT(*) FILTER (WHERE b.status = ?) AS pending_bookings,
			COUNT(*) FILTER (WHERE b.status = ?) AS confirmed_bookings,
			COUNT(*) FILTER (WHERE b.status = ?) AS in_progress_bookings,
			COUNT(*) FILTER (WHERE b.status = ?) AS completed_bookings,
			COUNT(*) FILTER (WHERE b.status = ?) AS cancelled_bookings`,
			StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	stats.TotalSpent = roundCents(stats.TotalSpent)
	return &stats, nil
}

func (r *repository) scoped(ctx context.Context, scope Scope) *gorm.DB {
	return r.applyScope(r.db.WithContext(ctx).Table("bookings AS b"), scope)
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings AS b").
		Select(detailColumns).
		Joins("LEFT JOIN events e ON e.id = b.event_id").
		Joins("LEFT JOIN vendor_profiles vp ON vp.id = b.vendor_id").
		Joins("LEFT JOIN vendor_services vs ON vs.id = b.service_id").
		Joins("LEFT JOIN users u ON u.id = b.customer_id")
}

func (r *repository) applyScope(query *gorm.DB, scope Scope) *gorm.DB {
	switch scope.Kind {
	case ScopeCustomer:
		return query.Where("b.customer_id = ?", scope.CustomerID)
	case ScopeVendor:
		if len(scope.VendorIDs) == 0 {
			return query.Where("1 = 0")
		}
		return query.Where("b.vendor_id IN ?", scope.VendorIDs)
	default:
		return query
	}
}

func (r *repository) filtered(query *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("b.status = ?", *filter.Status)
	}
	if filter.EventID != nil {
		query = query.Where("b.event_id = ?", *filter.EventID)
	}
	if filter.VendorID != nil {
		query = query.Where("b.vendor_id = ?", *filter.VendorID)
	}
	return query
}

// mapStoreError turns serialization failures and active-slot unique
// violations into ErrSchedulingConflict
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgUniqueViolation:
			return ErrSchedulingConflict
		}
	}
	return err
}
