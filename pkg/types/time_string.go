package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	minutesInDay = 24 * 60
	timeLayout   = "15:04"
)

var (
	// ErrInvalidTimeFormat возвращается, если строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, если результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("time string out of day range")

	timeStringRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])(:[0-5][0-9])?$`)
)

// TimeString время суток в формате HH:MM без привязки к дате и часовому поясу.
// Значение "24:00" допускается только как результат AddMinutes (конец последнего слота дня).
type TimeString string

// NewTimeString берёт часы и минуты из t в его собственной локации
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "H:MM", "HH:MM" или "HH:MM:SS" и нормализует её до HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	m := timeStringRegex.FindStringSubmatch(s)
	if m == nil {
		return "", ErrInvalidTimeFormat
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	return TimeStringFromMinutes(hours*60 + minutes)
}

// TimeStringFromMinutes строит TimeString из количества минут с начала суток (0..1440)
func TimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesInDay {
		return "", ErrTimeOutOfRange
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes возвращает количество минут с начала суток или -1 для некорректного значения
func (t TimeString) Minutes() int {
	if t == "24:00" {
		return minutesInDay
	}
	m := timeStringRegex.FindStringSubmatch(string(t))
	if m == nil {
		return -1
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// Validate проверяет, что значение имеет канонический формат HH:MM
func (t TimeString) Validate() error {
	if len(t) != len(timeLayout) || t.Minutes() < 0 || t.Minutes() >= minutesInDay {
		return ErrInvalidTimeFormat
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// AddMinutes сдвигает время на n минут, не выходя за пределы суток
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	current := t.Minutes()
	if current < 0 {
		return "", ErrInvalidTimeFormat
	}
	return TimeStringFromMinutes(current + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal сравнивает время с точностью до минуты
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner (колонки TIME и TEXT)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
