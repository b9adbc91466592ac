package policy

import (
	"testing"

	"eventplanner/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanAct_Create(t *testing.T) {
	for _, role := range []users.Role{users.RoleCustomer, users.RoleVendor, users.RoleManager, users.RoleAdmin} {
		d := CanAct(Principal{ID: uuid.New(), Role: role}, Resource{}, OpCreate)
		if role == users.RoleCustomer {
			assert.True(t, d.Allowed, role)
		} else {
			assert.False(t, d.Allowed, role)
			assert.Equal(t, ReasonRole, d.Reason)
		}
	}
}

func TestCanAct_Ownership(t *testing.T) {
	customer := uuid.New()
	vendorOwner := uuid.New()
	manager := uuid.New()
	stranger := uuid.New()

	res := Resource{
		CustomerID:     customer,
		VendorOwnerID:  vendorOwner,
		EventManagerID: &manager,
		Pending:        true,
	}

	tests := []struct {
		name      string
		principal Principal
		allowed   bool
	}{
		{"booking customer", Principal{ID: customer, Role: users.RoleCustomer}, true},
		{"vendor profile owner", Principal{ID: vendorOwner, Role: users.RoleVendor}, true},
		{"assigned manager", Principal{ID: manager, Role: users.RoleManager}, true},
		{"manager id without manager role", Principal{ID: manager, Role: users.RoleCustomer}, false},
		{"other manager", Principal{ID: stranger, Role: users.RoleManager}, false},
		{"admin is not granted blanket access", Principal{ID: stranger, Role: users.RoleAdmin}, false},
		{"other customer", Principal{ID: stranger, Role: users.RoleCustomer}, false},
		{"anonymous", Principal{}, false},
	}

	for _, tt := range tests {
		for _, op := range []Operation{OpRead, OpUpdateStatus, OpUpdateDetails, OpDelete} {
			t.Run(tt.name+"/"+string(op), func(t *testing.T) {
				d := CanAct(tt.principal, res, op)
				assert.Equal(t, tt.allowed, d.Allowed)
				if !tt.allowed {
					assert.Equal(t, ReasonNotOwner, d.Reason)
				}
			})
		}
	}
}

func TestCanAct_UpdateDetailsRequiresPending(t *testing.T) {
	customer := uuid.New()
	p := Principal{ID: customer, Role: users.RoleCustomer}
	res := Resource{CustomerID: customer, Pending: false}

	d := CanAct(p, res, OpUpdateDetails)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotPending, d.Reason)

	// Ownership is decided before state.
	d = CanAct(Principal{ID: uuid.New(), Role: users.RoleCustomer}, res, OpUpdateDetails)
	assert.Equal(t, ReasonNotOwner, d.Reason)

	// Other operations are not gated on pending.
	assert.True(t, CanAct(p, res, OpRead).Allowed)
	assert.True(t, CanAct(p, res, OpUpdateStatus).Allowed)
	assert.True(t, CanAct(p, res, OpDelete).Allowed)
}

func TestCanAct_MissingVendorOwnerNeverMatches(t *testing.T) {
	d := CanAct(Principal{ID: uuid.New(), Role: users.RoleVendor}, Resource{CustomerID: uuid.New()}, OpRead)
	assert.False(t, d.Allowed)
}

func TestCanAct_UnknownOperation(t *testing.T) {
	customer := uuid.New()
	d := CanAct(Principal{ID: customer, Role: users.RoleCustomer}, Resource{CustomerID: customer}, Operation("archive"))
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnknownOperation, d.Reason)
}
