package bookings

// Pagination describes a page of results
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type BookingListResponse struct {
	Bookings   []BookingDetails `json:"bookings"`
	Pagination Pagination       `json:"pagination"`
}

// CalculateTotalPages returns ceil(total/limit)
func CalculateTotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
