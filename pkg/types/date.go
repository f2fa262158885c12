package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// DateLayout формат календарной даты (ISO 8601)
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat возвращается, если строка не является корректной датой YYYY-MM-DD
var ErrInvalidDateFormat = errors.New("invalid date format")

// Date календарная дата без времени и часового пояса.
// Арифметика по дням выполняется в UTC, поэтому переходы на летнее время её не затрагивают.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate строго парсит YYYY-MM-DD (несуществующие даты вроде 2025-02-30 отклоняются)
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, ErrInvalidDateFormat
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return DateOf(t), nil
}

// MustParseDate как ParseDate, но паникует при ошибке. Для констант и тестов.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf возвращает дату t в его собственной локации
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// In возвращает полночь этой даты в локации loc
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At возвращает момент начала указанного времени суток в локации loc
func (d Date) At(t TimeString, loc *time.Location) time.Time {
	minutes := t.Minutes()
	return time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc)
}

func (d Date) utc() time.Time {
	return d.In(time.UTC)
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) Date {
	return DateOf(d.utc().AddDate(0, 0, n))
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	return d.utc().Compare(other.utc())
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// IsZero возвращает true для незаданной даты
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText реализует encoding.TextMarshaler (JSON сериализует дату строкой)
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner (колонка DATE)
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDateFormat, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
