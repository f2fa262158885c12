package domain

import (
	"time"

	"github.com/m04kA/barbershop-booking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusActive    AppointmentStatus = "active"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true for the known statuses
func (s AppointmentStatus) IsValid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Appointment represents a customer's reservation of one slot
type Appointment struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Service   Service           `json:"service"`
	Date      types.Date        `json:"date"`
	Time      types.TimeString  `json:"time"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	Status    AppointmentStatus `json:"status"`
}

// NewAppointment builds an active appointment
func NewAppointment(id, name, email string, service Service, date types.Date, t types.TimeString, notes string, createdAt time.Time) Appointment {
	return Appointment{
		ID:        id,
		Name:      name,
		Email:     email,
		Service:   service,
		Date:      date,
		Time:      t,
		Notes:     notes,
		CreatedAt: createdAt.UTC(),
		Status:    StatusActive,
	}
}

// IsActive returns true if the appointment holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusActive
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Occupies returns true if the appointment is active at the given slot
func (a *Appointment) Occupies(date types.Date, t types.TimeString) bool {
	return a.IsActive() && a.Date.Equal(date) && a.Time.Equal(t)
}

// IsExpired returns true if the appointment date is before the retention cutoff
func (a *Appointment) IsExpired(cutoff types.Date) bool {
	return a.Date.Before(cutoff)
}

// CloneAppointments returns a copy of the list that can be mutated freely
func CloneAppointments(list []Appointment) []Appointment {
	if list == nil {
		return []Appointment{}
	}
	out := make([]Appointment, len(list))
	copy(out, list)
	return out
}
