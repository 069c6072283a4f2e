package repositoryImp

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"botanica/entities"
	"botanica/pkg/plant/repository"
)

type plantRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantRepository { return &plantRepo{db} }

func (r *plantRepo) Create(p *entities.Plant) error {
	if p.PlantID == "" {
		p.PlantID = uuid.NewString()
	}
	return r.db.Create(p).Error
}

func (r *plantRepo) FindByID(id, userID string) (*entities.Plant, error) {
	var p entities.Plant
	if err := r.db.Where("plant_id = ? AND user_id = ?", id, userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plantRepo) ListForUser(userID string) ([]entities.Plant, error) {
	var out []entities.Plant
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plantRepo) Delete(id, userID string) error {
	return r.db.Where("plant_id = ? AND user_id = ?", id, userID).
		Delete(&entities.Plant{}).Error
}

func (r *plantRepo) SaveCarePlan(id, userID, markdown string, generatedAt time.Time) error {
	return r.db.Model(&entities.Plant{}).
		Where("plant_id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"care_plan_md":           markdown,
			"care_plan_generated_at": &generatedAt,
		}).Error
}
