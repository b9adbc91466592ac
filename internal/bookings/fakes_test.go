package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"eventplanner/internal/catalog"
	"eventplanner/internal/notifications"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository. WithSerializableTx serialises
// callers on txMu, standing in for SERIALIZABLE isolation.
type fakeRepo struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	bookings map[uuid.UUID]Booking

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[uuid.UUID]Booking{}}
}

func (r *fakeRepo) WithSerializableTx(_ context.Context, fn func(tx Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

func (r *fakeRepo) CreateBooking(_ context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, &NotFoundError{Resource: "booking"}
	}
	return &b, nil
}

func (r *fakeRepo) GetBookingDetails(ctx context.Context, id uuid.UUID) (*BookingDetails, error) {
	b, err := r.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BookingDetails{Booking: *b, EventTitle: "Wedding", VendorName: "Acme Catering", ServiceName: "Buffet"}, nil
}

func (r *fakeRepo) ListActiveInSlot(_ context.Context, vendorID, serviceID uuid.UUID, date Date) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if b.VendorID == vendorID && b.ServiceID == serviceID && b.BookingDate.Equal(date) && b.Status.IsActive() && b.HasTimeSlot() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateBookingStatus(_ context.Context, id uuid.UUID, from, to Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return &TransitionError{From: from, To: to}
	}
	b.Status = to
	b.UpdatedAt = updatedAt
	r.bookings[id] = b
	return nil
}

func (r *fakeRepo) UpdateBookingDetails(_ context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[booking.ID]
	if !ok || b.Status != StatusPending {
		return ErrInvalidState
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeRepo) DeleteBooking(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != StatusPending {
		return ErrInvalidState
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) ListBookings(_ context.Context, scope Scope, filter ListFilter) ([]BookingDetails, int64, error) {
	matched := r.matching(scope, filter)

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.BookingDate.Equal(b.BookingDate) {
			return b.BookingDate.Before(a.BookingDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := int64(len(matched))
	start := filter.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}

	rows := make([]BookingDetails, 0, end-start)
	for _, b := range matched[start:end] {
		rows = append(rows, BookingDetails{Booking: b})
	}
	return rows, total, nil
}

func (r *fakeRepo) GetBookingStats(_ context.Context, scope Scope) (*Stats, error) {
	stats := &Stats{}
	for _, b := range r.matching(scope, ListFilter{}) {
		stats.TotalBookings++
		stats.TotalSpent += b.TotalCost
		switch b.Status {
		case StatusPending:
			stats.PendingBookings++
		case StatusConfirmed:
			stats.ConfirmedBookings++
		case StatusInProgress:
			stats.InProgressBookings++
		case StatusCompleted:
			stats.CompletedBookings++
		case StatusCancelled:
			stats.CancelledBookings++
		}
	}
	stats.TotalSpent = roundCents(stats.TotalSpent)
	return stats, nil
}

func (r *fakeRepo) matching(scope Scope, filter ListFilter) []Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Booking
	for _, b := range r.bookings {
		switch scope.Kind {
		case ScopeCustomer:
			if b.CustomerID != scope.CustomerID {
				continue
			}
		case ScopeVendor:
			if !containsID(scope.VendorIDs, b.VendorID) {
				continue
			}
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.EventID != nil && b.EventID != *filter.EventID {
			continue
		}
		if filter.VendorID != nil && b.VendorID != *filter.VendorID {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (r *fakeRepo) put(b Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = b
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type fakeCatalog struct {
	events   map[uuid.UUID]*catalog.Event
	vendors  map[uuid.UUID]*catalog.Vendor
	services map[uuid.UUID]*catalog.Service
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		events:   map[uuid.UUID]*catalog.Event{},
		vendors:  map[uuid.UUID]*catalog.Vendor{},
		services: map[uuid.UUID]*catalog.Service{},
	}
}

func (c *fakeCatalog) GetEvent(_ context.Context, id uuid.UUID) (*catalog.Event, error) {
	if e, ok := c.events[id]; ok {
		return e, nil
	}
	return nil, catalog.ErrEventNotFound
}

func (c *fakeCatalog) GetVendor(_ context.Context, id uuid.UUID) (*catalog.Vendor, error) {
	if v, ok := c.vendors[id]; ok {
		return v, nil
	}
	return nil, catalog.ErrVendorNotFound
}

func (c *fakeCatalog) GetService(_ context.Context, id uuid.UUID) (*catalog.Service, error) {
	if s, ok := c.services[id]; ok {
		return s, nil
	}
	return nil, catalog.ErrServiceNotFound
}

func (c *fakeCatalog) ListVendorIDsByOwner(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, v := range c.vendors {
		if v.UserID == userID {
			ids = append(ids, v.ID)
		}
	}
	return ids, nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []*notifications.BookingMessage
	err      error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, message *notifications.BookingMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []notifications.BookingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notifications.BookingEventType, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Type)
	}
	return out
}
