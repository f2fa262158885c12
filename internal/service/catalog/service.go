package catalog

import (
	"fmt"
	"strings"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/catalog/models"
)

// Service статический каталог услуг салона
type Service struct {
	services []domain.Service
	byID     map[int64]domain.Service
	logger   Logger
}

// NewService создает каталог. Пустой список заменяется каталогом по умолчанию.
func NewService(services []domain.Service, logger Logger) (*Service, error) {
	if len(services) == 0 {
		services = domain.DefaultServices
	}

	byID := make(map[int64]domain.Service, len(services))
	for _, s := range services {
		if err := validateService(s); err != nil {
			return nil, err
		}
		if _, exists := byID[s.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate service id=%d", ErrInvalidCatalog, s.ID)
		}
		byID[s.ID] = s
	}

	logger.Info("NewService: catalog loaded with %d services", len(services))

	list := make([]domain.Service, len(services))
	copy(list, services)
	return &Service{
		services: list,
		byID:     byID,
		logger:   logger,
	}, nil
}

// List возвращает каталог в порядке конфигурации
func (s *Service) List() []models.ServiceResponse {
	return models.FromDomainServices(s.services)
}

// ServiceByID ищет услугу по идентификатору
func (s *Service) ServiceByID(id int64) (domain.Service, bool) {
	svc, ok := s.byID[id]
	return svc, ok
}

// Resolve возвращает запись каталога для выбранной клиентом услуги.
// Если передано имя, оно должно совпадать с каталогом (без учёта регистра).
func (s *Service) Resolve(id int64, name string) (domain.Service, error) {
	svc, ok := s.ServiceByID(id)
	if !ok {
		return domain.Service{}, fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
	}

	name = strings.TrimSpace(name)
	if name != "" && !strings.EqualFold(name, svc.Name) {
		return domain.Service{}, fmt.Errorf("%w: id=%d name=%q", ErrServiceNotFound, id, name)
	}
	return svc, nil
}

func validateService(s domain.Service) error {
	switch {
	case s.ID <= 0:
		return fmt.Errorf("%w: service id must be positive, got %d", ErrInvalidCatalog, s.ID)
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: service id=%d has empty name", ErrInvalidCatalog, s.ID)
	case s.Price < 0:
		return fmt.Errorf("%w: service id=%d has negative price", ErrInvalidCatalog, s.ID)
	case s.DurationMinutes <= 0:
		return fmt.Errorf("%w: service id=%d has non-positive duration", ErrInvalidCatalog, s.ID)
	}
	return nil
}
