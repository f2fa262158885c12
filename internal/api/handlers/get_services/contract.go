package get_services

import (
	"github.com/m04kA/barbershop-booking/internal/service/catalog/models"
)

type CatalogService interface {
	List() []models.ServiceResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
