package repository

import (
	"time"

	"botanica/entities"
)

type PlantRepository interface {
	Create(p *entities.Plant) error
	FindByID(id, userID string) (*entities.Plant, error)
	ListForUser(userID string) ([]entities.Plant, error)
	Delete(id, userID string) error
	SaveCarePlan(id, userID, markdown string, generatedAt time.Time) error
}
