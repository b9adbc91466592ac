// Package policy decides whether a principal may act on a booking.
package policy

import (
	"eventplanner/internal/users"

	"github.com/google/uuid"
)

type Operation string

const (
	OpCreate        Operation = "create"
	OpRead          Operation = "read"
	OpUpdateStatus  Operation = "update_status"
	OpUpdateDetails Operation = "update_details"
	OpDelete        Operation = "delete"
)

type Reason string

const (
	ReasonNone             Reason = ""
	ReasonRole             Reason = "role"
	ReasonNotOwner         Reason = "not_owner"
	ReasonNotPending       Reason = "not_pending"
	ReasonUnknownOperation Reason = "unknown_operation"
)

// Principal is the authenticated actor behind a request.
type Principal struct {
	ID   uuid.UUID
	Role users.Role
}

// Resource carries the ownership facts of a booking. VendorOwnerID is the
// user owning the booked vendor profile, EventManagerID the manager assigned
// to the parent event, if any.
type Resource struct {
	CustomerID     uuid.UUID
	VendorOwnerID  uuid.UUID
	EventManagerID *uuid.UUID
	Pending        bool
}

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason Reason) Decision { return Decision{Reason: reason} }

func (p Principal) IsZero() bool { return p.ID == uuid.Nil }

// CanAct is the single authorization rule for every booking operation.
// Ownership is checked before state, so a stranger never learns whether a
// booking is still pending.
func CanAct(p Principal, r Resource, op Operation) Decision {
	if p.IsZero() {
		return deny(ReasonNotOwner)
	}

	switch op {
	case OpCreate:
		if p.Role != users.RoleCustomer {
			return deny(ReasonRole)
		}
		return allow()

	case OpRead, OpUpdateStatus, OpDelete:
		if !owns(p, r) {
			return deny(ReasonNotOwner)
		}
		return allow()

	case OpUpdateDetails:
		if !owns(p, r) {
			return deny(ReasonNotOwner)
		}
		if !r.Pending {
			return deny(ReasonNotPending)
		}
		return allow()

	default:
		return deny(ReasonUnknownOperation)
	}
}

func owns(p Principal, r Resource) bool {
	if r.CustomerID != uuid.Nil && p.ID == r.CustomerID {
		return true
	}
	if r.VendorOwnerID != uuid.Nil && p.ID == r.VendorOwnerID {
		return true
	}
	return p.Role == users.RoleManager && r.EventManagerID != nil && *r.EventManagerID == p.ID
}
