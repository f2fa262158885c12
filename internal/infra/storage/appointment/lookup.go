package appointment

import (
	"strings"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findByID(list []domain.Appointment, id string) (*domain.Appointment, error) {
	for i := range list {
		if list[i].ID == id {
			found := list[i]
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func filterByEmail(list []domain.Appointment, email string) []domain.Appointment {
	email = NormalizeEmail(email)
	out := make([]domain.Appointment, 0)
	if email == "" {
		return out
	}
	for _, a := range list {
		if NormalizeEmail(a.Email) == email {
			out = append(out, a)
		}
	}
	return out
}
