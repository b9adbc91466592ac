package bookings

import (
	"context"
	"errors"

	"eventplanner/internal/policy"
	"eventplanner/internal/shared/constants"
	"eventplanner/pkg/cache"

	"github.com/google/uuid"
)

// QueryService serves booking reads. It never writes booking rows.
type QueryService interface {
	GetBooking(ctx context.Context, principal policy.Principal, bookingID uuid.UUID) (*BookingDetails, error)
	ListBookings(ctx context.Context, principal policy.Principal, query *BookingListQuery) (*BookingListResponse, error)
	GetBookingStats(ctx context.Context, principal policy.Principal) (*Stats, error)

	SetCacheService(cacheService cache.Service)
}

type queryService struct {
	repo        Repository
	guard       accessGuard
	cache       cache.Service
	maxPageSize int
}

func NewQueryService(repo Repository, catalog Catalog, maxPageSize int) QueryService {
	return &queryService{
		repo:        repo,
		guard:       accessGuard{catalog: catalog},
		maxPageSize: maxPageSize,
	}
}

func (s *queryService) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

func (s *queryService) GetBooking(ctx context.Context, principal policy.Principal, bookingID uuid.UUID) (*BookingDetails, error) {
	details, err := s.loadDetails(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.guard.authorize(ctx, principal, &details.Booking, policy.OpRead); err != nil {
		return nil, err
	}

	return details, nil
}

func (s *queryService) loadDetails(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error) {
	if s.cache == nil {
		return s.repo.GetBookingDetails(ctx, bookingID)
	}

	var details BookingDetails
	err := s.cache.GetOrSet(ctx, constants.BuildBookingDetailKey(bookingID.String()), constants.TTL_BOOKING_DETAIL, func() (interface{}, error) {
		return s.repo.GetBookingDetails(ctx, bookingID)
	}, &details)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &details, nil
}

func (s *queryService) ListBookings(ctx context.Context, principal policy.Principal, query *BookingListQuery) (*BookingListResponse, error) {
	filter, err := query.toFilter(s.maxPageSize)
	if err != nil {
		return nil, err
	}

	scope, err := s.guard.scopeFor(ctx, principal)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.repo.ListBookings(ctx, scope, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []BookingDetails{}
	}

	return &BookingListResponse{
		Bookings: rows,
		Pagination: Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: CalculateTotalPages(total, filter.Limit),
		},
	}, nil
}

func (s *queryService) GetBookingStats(ctx context.Context, principal policy.Principal) (*Stats, error) {
	scope, err := s.guard.scopeFor(ctx, principal)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return s.repo.GetBookingStats(ctx, scope)
	}

	var stats Stats
	err = s.cache.GetOrSet(ctx, constants.BuildBookingStatsKey(scope.cacheKey(principal)), constants.TTL_BOOKING_STATS, func() (interface{}, error) {
		return s.repo.GetBookingStats(ctx, scope)
	}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
