package bookings

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	valid := map[string]string{
		"00:00": "00:00",
		"9:05":  "09:05",
		"23:59": "23:59",
		"12:30": "12:30",
	}
	for in, want := range valid {
		got, err := ParseTimeOfDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String())
	}

	for _, in := range []string{"24:00", "12:60", "1230", "12:3", "noon", "", "12:30:00"} {
		_, err := ParseTimeOfDay(in)
		assert.Error(t, err, in)
	}
}

func TestOverlaps(t *testing.T) {
	mustTime := func(s string) TimeOfDay {
		v, err := ParseTimeOfDay(s)
		require.NoError(t, err)
		return v
	}

	tests := []struct {
		s1, e1, s2, e2 string
		want           bool
	}{
		{"10:00", "11:00", "10:30", "11:30", true},
		{"10:00", "11:00", "11:00", "12:00", false},
		{"11:00", "12:00", "10:00", "11:00", false},
		{"10:00", "12:00", "10:30", "11:00", true},
		{"10:30", "11:00", "10:00", "12:00", true},
		{"10:00", "11:00", "10:00", "11:00", true},
		{"08:00", "09:00", "10:00", "11:00", false},
	}

	for _, tt := range tests {
		got := Overlaps(mustTime(tt.s1), mustTime(tt.e1), mustTime(tt.s2), mustTime(tt.e2))
		assert.Equal(t, tt.want, got, "[%s,%s) vs [%s,%s)", tt.s1, tt.e1, tt.s2, tt.e2)
	}
}

func TestTimeOfDay_Scan(t *testing.T) {
	var v TimeOfDay

	require.NoError(t, v.Scan("14:45"))
	assert.Equal(t, "14:45", v.String())

	require.NoError(t, v.Scan([]byte("08:15:00")))
	assert.Equal(t, "08:15", v.String())

	require.NoError(t, v.Scan(time.Date(0, 1, 1, 7, 5, 0, 0, time.UTC)))
	assert.Equal(t, "07:05", v.String())

	assert.Error(t, v.Scan(42))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-06-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-20", d.String())

	d, err = ParseDate("2026-06-20T23:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-06-20", d.String())

	for _, in := range []string{"20-06-2026", "2026-13-01", "2026/06/20", ""} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}

	assert.True(t, NewDate(2026, time.June, 19).Before(NewDate(2026, time.June, 20)))
}

func TestScheduleJSON(t *testing.T) {
	payload := struct {
		Date  Date       `json:"date"`
		Start *TimeOfDay `json:"start"`
		End   *TimeOfDay `json:"end"`
	}{}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-06-20","start":"9:00","end":null}`), &payload))
	assert.Equal(t, "2026-06-20", payload.Date.String())
	require.NotNil(t, payload.Start)
	assert.Equal(t, "09:00", payload.Start.String())
	assert.Nil(t, payload.End)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-06-20","start":"09:00","end":null}`, string(out))
}
