package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barbershop-booking/internal/calendar"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

type stubCatalog struct{}

func (stubCatalog) Resolve(id int64, name string) (domain.Service, error) {
	for _, s := range domain.DefaultServices {
		if s.ID == id && (name == "" || strings.EqualFold(name, s.Name)) {
			return s, nil
		}
	}
	return domain.Service{}, errors.New("not found")
}

func newValidator(t *testing.T) (*Validator, time.Time) {
	t.Helper()
	loc, err := calendar.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	return New(calendar.New(loc), stubCatalog{}), time.Date(2025, 6, 2, 10, 5, 0, 0, loc)
}

func TestValidateName(t *testing.T) {
	v, _ := newValidator(t)

	tests := []struct {
		in    string
		valid bool
		value string
	}{
		{"  Jürgen Müller ", true, "Jürgen Müller"},
		{"Anne-Marie O'Neil", true, "Anne-Marie O'Neil"},
		{"Öß", true, "Öß"},
		{"A", false, ""},
		{"", false, ""},
		{"Max123", false, ""},
		{"<b>Max</b>", false, ""},
		{strings.Repeat("a", 51), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := v.ValidateName(tt.in)
			assert.Equal(t, tt.valid, r.Valid, r.Error)
			if tt.valid {
				assert.Equal(t, tt.value, r.Value)
			} else {
				assert.NotEmpty(t, r.Error)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	v, _ := newValidator(t)

	r := v.ValidateEmail("  Max.Mustermann@Example.DE ")
	require.True(t, r.Valid)
	assert.Equal(t, "max.mustermann@example.de", r.Value)

	assert.Equal(t, msgEmailRequired, v.ValidateEmail(" ").Error)
	assert.Equal(t, msgEmailInvalid, v.ValidateEmail("not-an-email").Error)
	assert.Equal(t, msgEmailTooLong, v.ValidateEmail(strings.Repeat("a", 250)+"@example.com").Error)
}

func TestValidateNotes(t *testing.T) {
	v, _ := newValidator(t)

	r := v.ValidateNotes("")
	assert.True(t, r.Valid)
	assert.Equal(t, "", r.Value)

	r = v.ValidateNotes(`Bitte kurz <script>alert(1)</script>schneiden <a href="javascript:x" onclick = "y">`)
	require.True(t, r.Valid)
	assert.NotContains(t, r.Value, "<script>")
	assert.NotContains(t, r.Value, "javascript:")
	assert.NotContains(t, r.Value, "onclick")
	assert.Contains(t, r.Value, "Bitte kurz")

	r = v.ValidateNotes("javajavascript:script:")
	assert.NotContains(t, strings.ToLower(r.Value), "javascript:")

	r = v.ValidateNotes(strings.Repeat("ü", 501))
	assert.False(t, r.Valid)

	r = v.ValidateNotes(strings.Repeat("ü", 500))
	assert.True(t, r.Valid)
}

func TestValidateDate(t *testing.T) {
	v, now := newValidator(t)

	tests := []struct {
		in    string
		error string
	}{
		{"2025-06-02", ""},
		{"2025-07-02", ""},
		{"", msgDateRequired},
		{"02.06.2025", msgDateFormat},
		{"2025-02-30", msgDateInvalid},
		{"2025-06-01", msgDatePast},
		{"2025-07-03", "Datum darf nicht mehr als 30 Tage in der Zukunft liegen"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := v.ValidateDate(tt.in, now)
			assert.Equal(t, tt.error == "", r.Valid)
			assert.Equal(t, tt.error, r.Error)
		})
	}
}

func TestValidateTime(t *testing.T) {
	v, _ := newValidator(t)

	tests := []struct {
		in    string
		value string
		error string
	}{
		{"10:30", "10:30", ""},
		{"9:00", "09:00", ""},
		{"18:30", "18:30", ""},
		{"", "", msgTimeRequired},
		{"10:30:00", "", msgTimeFormat},
		{"25:00", "", msgTimeFormat},
		{"08:30", "", "Uhrzeit muss zwischen 09:00 und 19:00 liegen"},
		{"19:00", "", "Uhrzeit muss zwischen 09:00 und 19:00 liegen"},
		{"10:15", "", "Uhrzeit muss in 30-Minuten-Intervallen sein"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := v.ValidateTime(tt.in)
			assert.Equal(t, tt.error, r.Error)
			assert.Equal(t, tt.value, r.Value)
		})
	}
}

func TestValidateService(t *testing.T) {
	v, _ := newValidator(t)

	svc, r := v.ValidateService(&ServiceInput{ID: 2, Name: "Herren Haar Schnitt mit Waschen", Price: 1})
	require.True(t, r.Valid)
	assert.Equal(t, 20.0, svc.Price)

	_, r = v.ValidateService(nil)
	assert.Equal(t, msgServiceRequired, r.Error)

	_, r = v.ValidateService(&ServiceInput{Name: "Bart Styling"})
	assert.Equal(t, msgServiceInvalid, r.Error)

	_, r = v.ValidateService(&ServiceInput{ID: 2, Name: "Bart Styling"})
	assert.Equal(t, msgServiceUnknown, r.Error)
}

func TestValidateBooking_AggregatesErrors(t *testing.T) {
	v, now := newValidator(t)

	_, err := v.ValidateBooking(BookingInput{
		Name:  "X",
		Email: "nope",
		Date:  "2025-06-03",
		Time:  "10:15",
	}, now)

	var errs Errors
	require.ErrorAs(t, err, &errs)

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{FieldName, FieldEmail, FieldService, FieldTime}, fields)
	assert.Len(t, errs.Messages(), 4)
}

func TestValidateBooking_Normalizes(t *testing.T) {
	v, now := newValidator(t)

	b, err := v.ValidateBooking(BookingInput{
		Name:    " Max Mustermann ",
		Email:   "MAX@example.com",
		Service: &ServiceInput{ID: 1},
		Date:    "2025-06-03",
		Time:    "9:30",
		Notes:   "  Kurz bitte ",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "Max Mustermann", b.Name)
	assert.Equal(t, "max@example.com", b.Email)
	assert.Equal(t, "Herren Haarschnitt", b.Service.Name)
	assert.Equal(t, types.MustParseDate("2025-06-03"), b.Date)
	assert.Equal(t, types.TimeString("09:30"), b.Time)
	assert.Equal(t, "Kurz bitte", b.Notes)
}

func TestValidateReschedule(t *testing.T) {
	v, now := newValidator(t)

	r, err := v.ValidateReschedule(RescheduleInput{AppointmentID: " abc ", NewDate: "2025-06-04", NewTime: "11:00"}, now)
	require.NoError(t, err)
	assert.Equal(t, "abc", r.AppointmentID)
	assert.Equal(t, types.TimeString("11:00"), r.Time)

	_, err = v.ValidateReschedule(RescheduleInput{NewDate: "2025-05-01", NewTime: "11:00"}, now)
	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}
