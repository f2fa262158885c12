package get_services

import "github.com/m04kA/barbershop-booking/internal/service/catalog/models"

// ServicesResponse HTTP response model
type ServicesResponse struct {
	Services []models.ServiceResponse `json:"services"`
}
