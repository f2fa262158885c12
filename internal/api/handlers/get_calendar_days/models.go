package get_calendar_days

import "github.com/m04kA/barbershop-booking/internal/service/availability/models"

// DaysResponse HTTP response model
type DaysResponse struct {
	Days []models.Day `json:"days"`
}

// FromServiceResponse нормализует nil в пустой список
func FromServiceResponse(days []models.Day) DaysResponse {
	if days == nil {
		days = []models.Day{}
	}
	return DaysResponse{Days: days}
}
