package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeString
		wantErr bool
	}{
		{"10:30", "10:30", false},
		{"9:30", "09:30", false},
		{"09:30:00", "09:30", false},
		{"24:00", "", true},
		{"10:60", "", true},
		{"abc", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Arithmetic(t *testing.T) {
	end, err := TimeString("18:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:00"), end)

	end, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, 24*60, end.Minutes())
	assert.Error(t, end.Validate())

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("9:00").Equal("09:00"))
	assert.Equal(t, -1, TimeString("nope").Minutes())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.June, Day: 2}, d)
	assert.Equal(t, time.Monday, d.Weekday())

	for _, in := range []string{"2025-02-30", "2025-6-2", "02.06.2025", "2025-06-02T10:00:00Z", ""} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, in)
	}
}

func TestDate_AddDaysAcrossMonthAndDST(t *testing.T) {
	d := MustParseDate("2025-03-29")
	assert.Equal(t, MustParseDate("2025-03-31"), d.AddDays(2))
	assert.Equal(t, MustParseDate("2025-04-28"), d.AddDays(30))
	assert.Equal(t, MustParseDate("2025-03-15"), d.AddDays(-14))

	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.After(d.AddDays(-1)))
	assert.Equal(t, 0, d.Compare(MustParseDate("2025-03-29")))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	raw, err := json.Marshal(payload{Date: MustParseDate("2025-06-02")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-06-02"}`, string(raw))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-07-01"}`), &p))
	assert.Equal(t, MustParseDate("2025-07-01"), p.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"01.07.2025"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-06-02", d.String())

	require.NoError(t, d.Scan([]byte("2025-06-03T00:00:00Z")))
	assert.Equal(t, "2025-06-03", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-06-03", v)
}
