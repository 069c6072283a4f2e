package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"botanica/entities"
	"botanica/pkg/adaptation/repository"
)

type logRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdaptationLogRepository { return &logRepo{db} }

func (r *logRepo) Last(userID string, year int) (*entities.AdaptationLog, error) {
	var l entities.AdaptationLog
	err := r.db.Where("user_id = ? AND year_adapted = ?", userID, year).
		Order("adapted_at DESC").First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *logRepo) Record(log *entities.AdaptationLog) error {
	return r.db.Create(log).Error
}
