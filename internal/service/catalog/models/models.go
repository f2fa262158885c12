package models

import (
	"fmt"
	"strings"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// ServiceResponse услуга каталога для клиента
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	PriceLabel      string  `json:"priceLabel"`
	DurationMinutes int     `json:"duration"`
}

// FromDomainService конвертирует domain.Service в ServiceResponse
func FromDomainService(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		PriceLabel:      FormatPrice(s.Price),
		DurationMinutes: s.DurationMinutes,
	}
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(list []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromDomainService(s))
	}
	return out
}

// FormatPrice цена в виде "15€" или "12,50€"
func FormatPrice(price float64) string {
	if price == float64(int64(price)) {
		return fmt.Sprintf("%d€", int64(price))
	}
	return strings.Replace(fmt.Sprintf("%.2f€", price), ".", ",", 1)
}
