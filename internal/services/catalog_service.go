package services

import (
	"database/sql"
	"strings"

	intconfig "traintrek/internal/config"
	"traintrek/internal/domain"
	"traintrek/internal/domain/models"
	"traintrek/internal/repositories"
)

// CatalogService is the read-only train lookup.
type CatalogService struct {
	TrainRepo repositories.TrainRepo
	DB        *sql.DB
}

func (s CatalogService) trains() repositories.TrainRepo {
	if s.TrainRepo.DB != nil {
		return s.TrainRepo
	}
	if s.DB != nil {
		return repositories.TrainRepo{DB: s.DB}
	}
	return repositories.TrainRepo{DB: intconfig.DB}
}

func (s CatalogService) All() ([]models.Train, error) {
	return s.trains().All()
}

func (s CatalogService) GetByID(id int64) (models.Train, error) {
	return s.trains().GetByID(id)
}

// Search requires both ends of the journey.
func (s CatalogService) Search(source, destination string) ([]models.Train, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	if source == "" || destination == "" {
		return nil, domain.ValidationError{Msg: "Source and destination are required"}
	}
	return s.trains().Search(source, destination)
}
