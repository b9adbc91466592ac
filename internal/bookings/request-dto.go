package bookings

import (
	"strings"

	"eventplanner/internal/shared/optional"

	"github.com/google/uuid"
)

// CreateBookingRequest is the POST /bookings payload
type CreateBookingRequest struct {
	EventID             string  `json:"event_id" validate:"required,uuid"`
	VendorID            string  `json:"vendor_id" validate:"required,uuid"`
	ServiceID           string  `json:"service_id" validate:"required,uuid"`
	Quantity            int     `json:"quantity" validate:"required,min=1"`
	BookingDate         string  `json:"booking_date" validate:"required,isodate"`
	StartTime           *string `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime             *string `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	SpecialRequirements *string `json:"special_requirements,omitempty" validate:"omitempty,max=2000"`
}

type createBookingInput struct {
	EventID             uuid.UUID
	VendorID            uuid.UUID
	ServiceID           uuid.UUID
	Quantity            int
	BookingDate         Date
	StartTime           *TimeOfDay
	EndTime             *TimeOfDay
	SpecialRequirements *string
}

// parse converts an already validated request into typed values
func (r *CreateBookingRequest) parse() (*createBookingInput, error) {
	var errs ValidationErrors
	in := &createBookingInput{Quantity: r.Quantity}

	in.EventID = parseUUIDField(&errs, "event_id", r.EventID)
	in.VendorID = parseUUIDField(&errs, "vendor_id", r.VendorID)
	in.ServiceID = parseUUIDField(&errs, "service_id", r.ServiceID)

	date, err := ParseDate(r.BookingDate)
	if err != nil {
		errs.add("booking_date", "must be a date in YYYY-MM-DD format")
	}
	in.BookingDate = date

	in.StartTime = parseTimeField(&errs, "start_time", r.StartTime)
	in.EndTime = parseTimeField(&errs, "end_time", r.EndTime)
	in.SpecialRequirements = normalizeNotes(r.SpecialRequirements)

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// UpdateStatusRequest is the PATCH /bookings/:id/status payload
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}

// UpdateBookingRequest is the PUT /bookings/:id payload. Absent fields are
// left untouched; null clears the optional ones.
type UpdateBookingRequest struct {
	Quantity            optional.Field[int]    `json:"quantity"`
	StartTime           optional.Field[string] `json:"start_time"`
	EndTime             optional.Field[string] `json:"end_time"`
	SpecialRequirements optional.Field[string] `json:"special_requirements"`
}

type bookingPatch struct {
	Quantity            *int
	StartTime           optional.Field[TimeOfDay]
	EndTime             optional.Field[TimeOfDay]
	SpecialRequirements optional.Field[string]
}

func (r *UpdateBookingRequest) parse() (*bookingPatch, error) {
	var errs ValidationErrors
	patch := &bookingPatch{}

	if r.Quantity.Set {
		q, ok := r.Quantity.Get()
		if !ok || q < 1 {
			errs.add("quantity", "must be a positive integer")
		} else {
			patch.Quantity = &q
		}
	}

	patch.StartTime = parseOptionalTime(&errs, "start_time", r.StartTime)
	patch.EndTime = parseOptionalTime(&errs, "end_time", r.EndTime)

	if r.SpecialRequirements.Set {
		notes := normalizeNotes(r.SpecialRequirements.Ptr())
		if notes == nil {
			patch.SpecialRequirements = optional.Null[string]()
		} else if len(*notes) > 2000 {
			errs.add("special_requirements", "must be at most 2000")
		} else {
			patch.SpecialRequirements = optional.Of(*notes)
		}
	}

	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return patch, nil
}

func (p *bookingPatch) isEmpty() bool {
	return p.Quantity == nil && !p.StartTime.Set && !p.EndTime.Set && !p.SpecialRequirements.Set
}

// BookingListQuery is the GET /bookings query string
type BookingListQuery struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	Status   string `form:"status"`
	EventID  string `form:"event_id"`
	VendorID string `form:"vendor_id"`
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

func (q *BookingListQuery) toFilter(maxLimit int) (ListFilter, error) {
	var errs ValidationErrors
	f := ListFilter{Page: q.Page, Limit: q.Limit}

	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if maxLimit > 0 && f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	// "all" is accepted as an explicit no-op
	if q.Status != "" && q.Status != "all" {
		status, err := ParseStatus(q.Status)
		if err != nil {
			errs.add("status", "must be one of: all pending confirmed in_progress completed cancelled")
		} else {
			f.Status = &status
		}
	}

	if q.EventID != "" {
		if id := parseUUIDField(&errs, "event_id", q.EventID); id != uuid.Nil {
			f.EventID = &id
		}
	}
	if q.VendorID != "" {
		if id := parseUUIDField(&errs, "vendor_id", q.VendorID); id != uuid.Nil {
			f.VendorID = &id
		}
	}

	if err := errs.orNil(); err != nil {
		return ListFilter{}, err
	}
	return f, nil
}

func parseUUIDField(errs *ValidationErrors, field, raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		errs.add(field, "must be a valid UUID")
		return uuid.Nil
	}
	return id
}

func parseTimeField(errs *ValidationErrors, field string, raw *string) *TimeOfDay {
	if raw == nil {
		return nil
	}
	t, err := ParseTimeOfDay(*raw)
	if err != nil {
		errs.add(field, "must be a time in HH:MM format")
		return nil
	}
	return &t
}

func parseOptionalTime(errs *ValidationErrors, field string, raw optional.Field[string]) optional.Field[TimeOfDay] {
	if !raw.Set {
		return optional.Field[TimeOfDay]{}
	}
	if raw.Null {
		return optional.Null[TimeOfDay]()
	}
	t, err := ParseTimeOfDay(raw.Value)
	if err != nil {
		errs.add(field, "must be a time in HH:MM format")
		return optional.Field[TimeOfDay]{}
	}
	return optional.Of(t)
}

func normalizeNotes(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
