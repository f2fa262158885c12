package get_day_slots

import (
	"github.com/m04kA/barbershop-booking/internal/service/availability/models"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.DaySlots) *DaySlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = s.String()
	}
	return &DaySlotsResponse{
		Date:  resp.Date.String(),
		Slots: slots,
	}
}

// ParseDateParam разбирает query параметр date (YYYY-MM-DD)
func ParseDateParam(raw string) (types.Date, error) {
	return types.ParseDate(raw)
}
