package catalog

import (
	"time"

	"github.com/google/uuid"
)

type PriceType string

const (
	PriceTypePerPerson PriceType = "per_person"
	PriceTypePerHour   PriceType = "per_hour"
	PriceTypePerEvent  PriceType = "per_event"
	PriceTypePerMeal   PriceType = "per_meal"
)

func (p PriceType) IsValid() bool {
	switch p {
	case PriceTypePerPerson, PriceTypePerHour, PriceTypePerEvent, PriceTypePerMeal:
		return true
	default:
		return false
	}
}

type EventStatus string

const (
	EventStatusPlanning   EventStatus = "planning"
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// Event is owned by a customer and optionally assigned to a manager.
type Event struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID  uuid.UUID   `json:"customer_id" gorm:"type:uuid;not null;index"`
	ManagerID   *uuid.UUID  `json:"manager_id,omitempty" gorm:"type:uuid;index"`
	Title       string      `json:"title" gorm:"type:varchar(255);not null"`
	Description *string     `json:"description,omitempty" gorm:"type:text"`
	EventType   string      `json:"event_type" gorm:"type:varchar(50)"`
	StartDate   time.Time   `json:"start_date" gorm:"not null"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Location    string      `json:"location" gorm:"type:varchar(255)"`
	GuestCount  *int        `json:"guest_count,omitempty"`
	Budget      *float64    `json:"budget,omitempty" gorm:"type:decimal(10,2)"`
	Status      EventStatus `json:"status" gorm:"type:varchar(20);not null;default:'planning'"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Vendor is a business profile owned by a user with the vendor role.
type Vendor struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	BusinessName string    `json:"business_name" gorm:"type:varchar(255);not null"`
	VendorType   string    `json:"vendor_type" gorm:"type:varchar(50);not null"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	Location     string    `json:"location" gorm:"type:varchar(255)"`
	Rating       float64   `json:"rating" gorm:"type:decimal(3,2);default:0"`
	IsAvailable  bool      `json:"is_available" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Vendor) TableName() string {
	return "vendor_profiles"
}

// Service is a priced offering of a vendor. Capacity, when set, caps the
// quantity of a single booking.
type Service struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VendorID    uuid.UUID `json:"vendor_id" gorm:"type:uuid;not null;index"`
	ServiceName string    `json:"service_name" gorm:"type:varchar(255);not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	BasePrice   float64   `json:"base_price" gorm:"type:decimal(10,2);not null;check:base_price >= 0"`
	PriceType   PriceType `json:"price_type" gorm:"type:varchar(20);not null"`
	Capacity    *int      `json:"capacity,omitempty"`
	IsAvailable bool      `json:"is_available" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Service) TableName() string {
	return "vendor_services"
}
