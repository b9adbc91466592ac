package response

// StandardApiResponse is the envelope for every JSON response
type StandardApiResponse struct {
	Status     string      `json:"status"`           // StatusSuccess or StatusError
	StatusCode int         `json:"status_code"`      // mirrors the HTTP status
	Message    string      `json:"message"`          // human-readable summary
	Data       interface{} `json:"data,omitempty"`   // payload on success
	Errors     interface{} `json:"errors,omitempty"` // field errors or error context
}
