package bookings

import (
	"context"
	"errors"

	"eventplanner/internal/catalog"
	"eventplanner/internal/policy"
	"eventplanner/internal/users"

	"github.com/google/uuid"
)

// Catalog is the read-only view of events, vendors and services
type Catalog interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*catalog.Event, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*catalog.Vendor, error)
	GetService(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	ListVendorIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// accessGuard resolves booking ownership and applies policy.CanAct for
// both the engine and the query side.
type accessGuard struct {
	catalog Catalog
}

func (g accessGuard) authorize(ctx context.Context, p policy.Principal, booking *Booking, op policy.Operation) error {
	res, err := g.resourceFor(ctx, booking)
	if err != nil {
		return err
	}

	decision := policy.CanAct(p, res, op)
	if decision.Allowed {
		return nil
	}
	if decision.Reason == policy.ReasonNotPending {
		return ErrInvalidState
	}
	return ErrForbidden
}

func (g accessGuard) resourceFor(ctx context.Context, booking *Booking) (policy.Resource, error) {
	res := policy.Resource{
		CustomerID: booking.CustomerID,
		Pending:    booking.Status == StatusPending,
	}

	vendor, err := g.catalog.GetVendor(ctx, booking.VendorID)
	switch {
	case err == nil:
		res.VendorOwnerID = vendor.UserID
	case !errors.Is(err, catalog.ErrVendorNotFound):
		return policy.Resource{}, err
	}

	event, err := g.catalog.GetEvent(ctx, booking.EventID)
	switch {
	case err == nil:
		res.EventManagerID = event.ManagerID
	case !errors.Is(err, catalog.ErrEventNotFound):
		return policy.Resource{}, err
	}

	return res, nil
}

// scopeFor derives the list/stats base filter from the principal's role
func (g accessGuard) scopeFor(ctx context.Context, p policy.Principal) (Scope, error) {
	switch p.Role {
	case users.RoleCustomer:
		return Scope{Kind: ScopeCustomer, CustomerID: p.ID}, nil
	case users.RoleVendor:
		ids, err := g.catalog.ListVendorIDsByOwner(ctx, p.ID)
		if err != nil {
			return Scope{}, err
		}
		return Scope{Kind: ScopeVendor, VendorIDs: ids}, nil
	default:
		return Scope{Kind: ScopeAll}, nil
	}
}

// cacheKey identifies a scope for stats caching
func (s Scope) cacheKey(p policy.Principal) string {
	switch s.Kind {
	case ScopeCustomer:
		return "customer:" + s.CustomerID.String()
	case ScopeVendor:
		return "vendor:" + p.ID.String()
	default:
		return "all"
	}
}
