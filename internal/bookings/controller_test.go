package bookings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventplanner/internal/policy"
	"eventplanner/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
}

// newTestRouter mounts the booking routes behind a stub that trusts the
// principal carried in test headers.
func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewController(f.engine, f.query)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(middleware.ContextUserID, id)
			c.Set(middleware.ContextUserRole, c.GetHeader("X-Test-Role"))
		}
		c.Next()
	})

	g := r.Group("/bookings")
	g.POST("", controller.CreateBooking)
	g.GET("", controller.ListBookings)
	g.GET("/stats/overview", controller.GetBookingStats)
	g.GET("/:id", controller.GetBooking)
	g.PUT("/:id", controller.UpdateBooking)
	g.PATCH("/:id/status", controller.UpdateBookingStatus)
	g.DELETE("/:id", controller.DeleteBooking)
	return r
}

func do(t *testing.T, r http.Handler, p policy.Principal, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	reader := bytes.NewReader(raw)

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if !p.IsZero() {
		req.Header.Set("X-Test-User", p.ID.String())
		req.Header.Set("X-Test-Role", string(p.Role))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestController_CreateBooking(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)

	w, env := do(t, r, f.customer, http.MethodPost, "/bookings", f.request(f.perPersonID, 3, "", ""))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", env.Status)

	var booking Booking
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, 30.0, booking.TotalCost)
	assert.Equal(t, StatusPending, booking.Status)
	assert.Equal(t, "2026-06-20", booking.BookingDate.String())
}

func TestController_ErrorMapping(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)
	confirmed := f.seed(t, StatusConfirmed, f.perHourID, "10:00", "11:00")
	completed := f.seed(t, StatusCompleted, f.perPersonID, "", "")

	tests := []struct {
		name      string
		principal policy.Principal
		method    string
		target    string
		body      interface{}
		wantCode  int
		wantMsg   string
	}{
		{
			name:     "unauthenticated",
			method:   http.MethodGet,
			target:   "/bookings",
			wantCode: http.StatusUnauthorized,
			wantMsg:  "User not authenticated",
		},
		{
			name:      "validation",
			principal: f.customer,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      map[string]interface{}{"event_id": "x", "quantity": 1},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Validation failed",
		},
		{
			name:      "malformed body",
			principal: f.customer,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      map[string]interface{}{"quantity": "three"},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Invalid request body",
		},
		{
			name:      "capacity",
			principal: f.customer,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      f.request(f.perPersonID, 500, "", ""),
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Service capacity exceeded. Maximum: 100",
		},
		{
			name:      "conflict",
			principal: f.customer,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      f.request(f.perHourID, 1, "10:30", "11:30"),
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Time slot conflicts with an existing booking",
		},
		{
			name:      "time range",
			principal: f.customer,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      f.request(f.perHourID, 1, "15:00", "14:00"),
			wantCode:  http.StatusBadRequest,
			wantMsg:   "End time must be after start time",
		},
		{
			name:      "event not found",
			principal: f.otherCustomer,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      f.request(f.perPersonID, 1, "", ""),
			wantCode:  http.StatusNotFound,
			wantMsg:   "Event not found",
		},
		{
			name:      "booking not found",
			principal: f.customer,
			method:    http.MethodGet,
			target:    "/bookings/" + completed.EventID.String(),
			wantCode:  http.StatusNotFound,
			wantMsg:   "Booking not found",
		},
		{
			name:      "invalid booking id",
			principal: f.customer,
			method:    http.MethodGet,
			target:    "/bookings/123",
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Invalid booking ID",
		},
		{
			name:      "forbidden read",
			principal: f.otherCustomer,
			method:    http.MethodGet,
			target:    "/bookings/" + confirmed.ID.String(),
			wantCode:  http.StatusForbidden,
			wantMsg:   "Access denied",
		},
		{
			name:      "invalid transition",
			principal: f.customer,
			method:    http.MethodPatch,
			target:    "/bookings/" + completed.ID.String() + "/status",
			body:      UpdateStatusRequest{Status: "pending"},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Cannot transition from completed to pending",
		},
		{
			name:      "edit outside pending",
			principal: f.customer,
			method:    http.MethodPut,
			target:    "/bookings/" + confirmed.ID.String(),
			body:      map[string]interface{}{"quantity": 2},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Booking can only be modified while pending",
		},
		{
			name:      "delete outside pending",
			principal: f.customer,
			method:    http.MethodDelete,
			target:    "/bookings/" + confirmed.ID.String(),
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Booking can only be modified while pending",
		},
		{
			name:      "vendor cannot create",
			principal: f.vendorUser,
			method:    http.MethodPost,
			target:    "/bookings",
			body:      f.request(f.perPersonID, 1, "", ""),
			wantCode:  http.StatusForbidden,
			wantMsg:   "Access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, tt.principal, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCode, env.StatusCode)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestController_ErrorDetails(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)
	completed := f.seed(t, StatusCompleted, f.perPersonID, "", "")

	_, env := do(t, r, f.customer, http.MethodPatch, "/bookings/"+completed.ID.String()+"/status", UpdateStatusRequest{Status: "cancelled"})
	assert.JSONEq(t, `{"current_status":"completed","requested_status":"cancelled"}`, string(env.Errors))

	_, env = do(t, r, f.customer, http.MethodPost, "/bookings", f.request(f.perPersonID, 101, "", ""))
	assert.JSONEq(t, `{"max_capacity":100}`, string(env.Errors))

	_, env = do(t, r, f.customer, http.MethodPost, "/bookings", map[string]interface{}{"vendor_id": f.vendorID.String()})
	var fieldErrs []FieldError
	require.NoError(t, json.Unmarshal(env.Errors, &fieldErrs))
	fields := map[string]bool{}
	for _, fe := range fieldErrs {
		fields[fe.Field] = true
	}
	assert.True(t, fields["event_id"])
	assert.True(t, fields["service_id"])
	assert.True(t, fields["quantity"])
	assert.True(t, fields["booking_date"])
	assert.False(t, fields["vendor_id"])
}

func TestController_Lifecycle(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)

	w, env := do(t, r, f.customer, http.MethodPost, "/bookings", f.request(f.perHourID, 1, "10:00", "11:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	var created Booking
	require.NoError(t, json.Unmarshal(env.Data, &created))
	target := "/bookings/" + created.ID.String()

	w, env = do(t, r, f.customer, http.MethodPut, target, map[string]interface{}{"end_time": "12:30", "special_requirements": "outdoor"})
	require.Equal(t, http.StatusOK, w.Code)
	var edited Booking
	require.NoError(t, json.Unmarshal(env.Data, &edited))
	assert.Equal(t, 50.0, edited.TotalCost)
	require.NotNil(t, edited.SpecialRequirements)
	assert.Equal(t, "outdoor", *edited.SpecialRequirements)

	w, _ = do(t, r, f.manager, http.MethodPatch, target+"/status", UpdateStatusRequest{Status: "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, f.vendorUser, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details BookingDetails
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, StatusConfirmed, details.Status)
	assert.Equal(t, "Acme Catering", details.VendorName)

	w, env = do(t, r, f.customer, http.MethodGet, "/bookings?status=confirmed&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list BookingListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, Pagination{Page: 1, Limit: 5, Total: 1, Pages: 1}, list.Pagination)

	w, env = do(t, r, f.customer, http.MethodGet, "/bookings/stats/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.ConfirmedBookings)

	w, _ = do(t, r, f.customer, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, f.customer, http.MethodPatch, target+"/status", UpdateStatusRequest{Status: "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestController_DeletePending(t *testing.T) {
	f := newFixture(t)
	r := newTestRouter(f)
	pending := f.seed(t, StatusPending, f.perPersonID, "", "")
	target := "/bookings/" + pending.ID.String()

	w, env := do(t, r, f.customer, http.MethodDelete, target, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Booking deleted successfully", env.Message)

	w, _ = do(t, r, f.customer, http.MethodGet, target, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
