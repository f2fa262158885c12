package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

func berlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	return loc
}

func TestSlotsForDay(t *testing.T) {
	cal := New(berlin(t))

	monday := cal.SlotsForDay(types.MustParseDate("2025-06-02"))
	require.Len(t, monday, 20)
	assert.Equal(t, types.TimeString("09:00"), monday[0])
	assert.Equal(t, types.TimeString("18:30"), monday[len(monday)-1])

	saturday := cal.SlotsForDay(types.MustParseDate("2025-06-07"))
	require.Len(t, saturday, 18)
	assert.Equal(t, types.TimeString("17:30"), saturday[len(saturday)-1])

	assert.Empty(t, cal.SlotsForDay(types.MustParseDate("2025-06-08")))
}

func TestBusinessHours(t *testing.T) {
	cal := New(berlin(t))

	h, ok := cal.BusinessHours(time.Friday)
	require.True(t, ok)
	assert.Equal(t, Hours{Open: "09:00", Close: "19:00"}, h)

	_, ok = cal.BusinessHours(time.Sunday)
	assert.False(t, ok)
}

func TestBookableSlots_TodayStartsAtNextBoundary(t *testing.T) {
	loc := berlin(t)
	cal := New(loc)
	now := time.Date(2025, 6, 2, 10, 5, 0, 0, loc)

	slots := cal.BookableSlots(types.MustParseDate("2025-06-02"), now)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("10:30"), slots[0])
	assert.Equal(t, types.TimeString("18:30"), slots[len(slots)-1])
}

func TestBookableSlots_ExactBoundaryIsStillBookable(t *testing.T) {
	loc := berlin(t)
	cal := New(loc)
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, loc)

	slots := cal.BookableSlots(types.MustParseDate("2025-06-02"), now)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("10:00"), slots[0])
}

func TestBookableSlots_AfterLastBoundary(t *testing.T) {
	loc := berlin(t)
	cal := New(loc)
	now := time.Date(2025, 6, 2, 18, 55, 0, 0, loc)

	assert.Empty(t, cal.BookableSlots(types.MustParseDate("2025-06-02"), now))
	assert.Len(t, cal.BookableSlots(types.MustParseDate("2025-06-03"), now), 20)
}

func TestNextSlotBoundary(t *testing.T) {
	loc := berlin(t)
	cal := New(loc)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"midnight", time.Date(2025, 6, 2, 0, 0, 0, 0, loc), 0},
		{"one second past", time.Date(2025, 6, 2, 9, 0, 1, 0, loc), 9*60 + 30},
		{"on boundary", time.Date(2025, 6, 2, 9, 30, 0, 0, loc), 9*60 + 30},
		{"inside slot", time.Date(2025, 6, 2, 18, 55, 0, 0, loc), 19 * 60},
		{"utc input", time.Date(2025, 6, 2, 8, 5, 0, 0, time.UTC), 10*60 + 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.NextSlotBoundary(tt.now))
		})
	}
}

func TestCheck(t *testing.T) {
	loc := berlin(t)
	cal := New(loc)
	now := time.Date(2025, 6, 2, 10, 5, 0, 0, loc)

	tests := []struct {
		name string
		date string
		time types.TimeString
		want error
	}{
		{"later today", "2025-06-02", "10:30", nil},
		{"passed today", "2025-06-02", "10:00", ErrSlotPassed},
		{"sunday", "2025-06-08", "12:00", ErrClosedDay},
		{"yesterday", "2025-06-01", "12:00", ErrClosedDay},
		{"past weekday", "2025-05-30", "12:00", ErrPastDate},
		{"saturday after close", "2025-06-07", "18:00", ErrOutsideHours},
		{"saturday last slot", "2025-06-07", "17:30", nil},
		{"before open", "2025-06-03", "08:30", ErrOutsideHours},
		{"off grid", "2025-06-03", "10:15", ErrOutsideHours},
		{"horizon edge", "2025-07-02", "09:00", nil},
		{"beyond horizon", "2025-07-03", "09:00", ErrBeyondHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cal.Check(types.MustParseDate(tt.date), tt.time, now)
			if tt.want == nil {
				assert.NoError(t, err)
				assert.True(t, cal.IsBookable(types.MustParseDate(tt.date), tt.time, now))
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestToday_UsesBusinessTimezone(t *testing.T) {
	cal := New(berlin(t))

	// 23:30 UTC on Sunday is already Monday in Berlin (CEST)
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, types.MustParseDate("2025-06-02"), cal.Today(now))
}

func TestSlotsForDay_DSTTransition(t *testing.T) {
	loc := berlin(t)
	cal := New(loc)

	// clocks go forward on 2025-03-30; the following Monday keeps the full grid
	now := time.Date(2025, 3, 30, 23, 30, 0, 0, loc)
	slots := cal.BookableSlots(types.MustParseDate("2025-03-31"), now)
	require.Len(t, slots, 20)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
}

func TestOpeningRange(t *testing.T) {
	cal := New(berlin(t))

	open, closing, ok := cal.OpeningRange()
	require.True(t, ok)
	assert.Equal(t, types.TimeString("09:00"), open)
	assert.Equal(t, types.TimeString("19:00"), closing)
}
