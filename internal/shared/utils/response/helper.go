package response

import "github.com/gin-gonic/gin"

// Envelope status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Abort writes an error envelope and stops the remaining handlers
func Abort(c *gin.Context, code int, message string) {
	RespondJSON(c, StatusError, code, message, nil, nil)
	c.Abort()
}
