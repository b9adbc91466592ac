package bookings

import (
	"time"

	"eventplanner/internal/catalog"

	"github.com/google/uuid"
)

// Booking reserves one vendor service for one event. UnitPrice and
// PriceType are snapshots of the service at creation time.
type Booking struct {
	ID                  uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID             uuid.UUID         `json:"event_id" gorm:"type:uuid;not null;index"`
	VendorID            uuid.UUID         `json:"vendor_id" gorm:"type:uuid;not null;index"`
	ServiceID           uuid.UUID         `json:"service_id" gorm:"type:uuid;not null;index"`
	CustomerID          uuid.UUID         `json:"customer_id" gorm:"type:uuid;not null;index"`
	Quantity            int               `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice           float64           `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	PriceType           catalog.PriceType `json:"price_type" gorm:"type:varchar(20);not null"`
	TotalCost           float64           `json:"total_cost" gorm:"type:decimal(10,2);not null"`
	BookingDate         Date              `json:"booking_date" gorm:"type:date;not null"`
	StartTime           *TimeOfDay        `json:"start_time" gorm:"type:varchar(5)"`
	EndTime             *TimeOfDay        `json:"end_time" gorm:"type:varchar(5)"`
	SpecialRequirements *string           `json:"special_requirements" gorm:"type:text"`
	Status              Status            `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// HasTimeSlot reports whether the booking occupies a time window
func (b *Booking) HasTimeSlot() bool {
	return b.StartTime != nil && b.EndTime != nil
}

// BookingDetails is a booking joined with the display fields of its
// event, vendor, service and customer.
type BookingDetails struct {
	Booking           `gorm:"embedded"`
	EventTitle        string     `json:"event_title"`
	EventDate         *time.Time `json:"event_date"`
	EventLocation     string     `json:"event_location"`
	VendorName        string     `json:"vendor_name"`
	VendorType        string     `json:"vendor_type"`
	ServiceName       string     `json:"service_name"`
	CustomerFirstName string     `json:"customer_first_name"`
	CustomerLastName  string     `json:"customer_last_name"`
}

// Stats aggregates bookings visible to a principal
type Stats struct {
	TotalBookings      int64   `json:"total_bookings" gorm:"column:total_bookings"`
	TotalSpent         float64 `json:"total_spent" gorm:"column:total_spent"`
	PendingBookings    int64   `json:"pending_bookings" gorm:"column:pending_bookings"`
	ConfirmedBookings  int64   `json:"confirmed_bookings" gorm:"column:confirmed_bookings"`
	InProgressBookings int64   `json:"in_progress_bookings" gorm:"column:in_progress_bookings"`
	CompletedBookings  int64   `json:"completed_bookings" gorm:"column:completed_bookings"`
	CancelledBookings  int64   `json:"cancelled_bookings" gorm:"column:cancelled_bookings"`
}

type ScopeKind string

const (
	ScopeAll      ScopeKind = "all"
	ScopeCustomer ScopeKind = "customer"
	ScopeVendor   ScopeKind = "vendor"
)

// Scope is the role-derived base filter for listing and stats. A vendor
// scope with no vendor IDs matches nothing.
type Scope struct {
	Kind       ScopeKind
	CustomerID uuid.UUID
	VendorIDs  []uuid.UUID
}

// ListFilter holds the optional filters ANDed onto a Scope
type ListFilter struct {
	Status   *Status
	EventID  *uuid.UUID
	VendorID *uuid.UUID
	Page     int
	Limit    int
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
