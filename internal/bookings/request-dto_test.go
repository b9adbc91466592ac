package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBookingRequest_Parse(t *testing.T) {
	t.Run("absent fields are untouched", func(t *testing.T) {
		patch, err := patchRequest(t, `{"quantity":4}`).parse()
		require.NoError(t, err)
		require.NotNil(t, patch.Quantity)
		assert.Equal(t, 4, *patch.Quantity)
		assert.False(t, patch.StartTime.Set)
		assert.False(t, patch.SpecialRequirements.Set)
		assert.False(t, patch.isEmpty())
	})

	t.Run("null clears optional fields", func(t *testing.T) {
		patch, err := patchRequest(t, `{"start_time":null,"end_time":null,"special_requirements":"  "}`).parse()
		require.NoError(t, err)
		assert.True(t, patch.StartTime.Set)
		assert.True(t, patch.StartTime.Null)
		assert.True(t, patch.EndTime.Null)
		assert.True(t, patch.SpecialRequirements.Null)
	})

	t.Run("null quantity is rejected", func(t *testing.T) {
		_, err := patchRequest(t, `{"quantity":null}`).parse()
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "quantity", verrs[0].Field)
	})

	t.Run("bad times are field errors", func(t *testing.T) {
		_, err := patchRequest(t, `{"start_time":"7pm","end_time":"25:00"}`).parse()
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})

	t.Run("empty body", func(t *testing.T) {
		patch, err := patchRequest(t, `{}`).parse()
		require.NoError(t, err)
		assert.True(t, patch.isEmpty())
	})
}

func TestBookingListQuery_ToFilter(t *testing.T) {
	f, err := (&BookingListQuery{Page: 3, Limit: 20, Status: "pending"}).toFilter(50)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 40, f.Offset())
	require.NotNil(t, f.Status)
	assert.Equal(t, StatusPending, *f.Status)

	f, err = (&BookingListQuery{Status: "all"}).toFilter(50)
	require.NoError(t, err)
	assert.Nil(t, f.Status)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)

	_, err = (&BookingListQuery{VendorID: "vendor-1"}).toFilter(50)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))
}
