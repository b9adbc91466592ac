package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "BOOKING_CREATED"
	BookingEventStatusChanged BookingEventType = "BOOKING_STATUS_CHANGED"
	BookingEventUpdated       BookingEventType = "BOOKING_UPDATED"
	BookingEventDeleted       BookingEventType = "BOOKING_DELETED"
)

// BookingMessage is the payload published for every booking lifecycle change
type BookingMessage struct {
	ID             uuid.UUID        `json:"id"`
	Type           BookingEventType `json:"type"`
	BookingID      uuid.UUID        `json:"booking_id"`
	EventID        uuid.UUID        `json:"event_id"`
	VendorID       uuid.UUID        `json:"vendor_id"`
	ServiceID      uuid.UUID        `json:"service_id"`
	CustomerID     uuid.UUID        `json:"customer_id"`
	ActorID        uuid.UUID        `json:"actor_id"`
	Status         string           `json:"status"`
	PreviousStatus string           `json:"previous_status,omitempty"`
	TotalCost      float64          `json:"total_cost"`
	BookingDate    string           `json:"booking_date"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

type BookingMessageBuilder struct {
	message *BookingMessage
}

func NewBookingMessageBuilder(eventType BookingEventType) *BookingMessageBuilder {
	return &BookingMessageBuilder{
		message: &BookingMessage{
			ID:         uuid.New(),
			Type:       eventType,
			OccurredAt: time.Now().UTC(),
		},
	}
}

func (b *BookingMessageBuilder) WithBooking(bookingID, eventID, vendorID, serviceID, customerID uuid.UUID) *BookingMessageBuilder {
	b.message.BookingID = bookingID
	b.message.EventID = eventID
	b.message.VendorID = vendorID
	b.message.ServiceID = serviceID
	b.message.CustomerID = customerID
	return b
}

func (b *BookingMessageBuilder) WithActor(actorID uuid.UUID) *BookingMessageBuilder {
	b.message.ActorID = actorID
	return b
}

func (b *BookingMessageBuilder) WithStatus(status, previous string) *BookingMessageBuilder {
	b.message.Status = status
	b.message.PreviousStatus = previous
	return b
}

func (b *BookingMessageBuilder) WithCost(totalCost float64, bookingDate string) *BookingMessageBuilder {
	b.message.TotalCost = totalCost
	b.message.BookingDate = bookingDate
	return b
}

func (b *BookingMessageBuilder) OccurredAt(t time.Time) *BookingMessageBuilder {
	b.message.OccurredAt = t.UTC()
	return b
}

func (b *BookingMessageBuilder) Build() *BookingMessage {
	return b.message
}

func (m *BookingMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GetPartitionKey keeps every event of one booking on the same partition
func (m *BookingMessage) GetPartitionKey() string {
	return m.BookingID.String()
}
