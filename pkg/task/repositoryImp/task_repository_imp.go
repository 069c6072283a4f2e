package repositoryImp

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"botanica/entities"
	"botanica/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) ListForUser(userID string) ([]entities.CareTask, error) {
	var out []entities.CareTask
	if err := r.db.Where("user_id = ?", userID).Order("window_start ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) ListForPlant(userID, plantID string) ([]entities.CareTask, error) {
	var out []entities.CareTask
	if err := r.db.Where("user_id = ? AND plant_id = ?", userID, plantID).
		Order("window_start ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) ListPending(userID string) ([]entities.CareTask, error) {
	var out []entities.CareTask
	if err := r.db.Where("user_id = ? AND status = ?", userID, entities.StatusPending).
		Order("window_start ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) ListPendingWindow(userID string, until time.Time) ([]entities.CareTask, error) {
	var out []entities.CareTask
	if err := r.db.Where("user_id = ? AND status = ?", userID, entities.StatusPending).
		Where("window_start IS NULL OR window_start <= ?", until).
		Order("window_start ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taskRepo) CreateBatch(userID, plantID, plantName, language, batchID string, tasks []entities.CareTask) error {
	if len(tasks) == 0 {
		return nil
	}
	for i := range tasks {
		if tasks[i].TaskID == "" {
			tasks[i].TaskID = uuid.NewString()
		}
		tasks[i].UserID = userID
		tasks[i].PlantID = plantID
		tasks[i].PlantName = plantName
		tasks[i].Language = language
		tasks[i].GenerationBatch = batchID
		if tasks[i].Status == "" {
			tasks[i].Status = entities.StatusPending
		}
	}
	return r.db.Create(&tasks).Error
}

func (r *taskRepo) Complete(taskID, userID, weatherSnapshot, notes string) error {
	now := time.Now()
	return r.db.Model(&entities.CareTask{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]any{
			"status":                entities.StatusCompleted,
			"completed_at":          &now,
			"weather_at_completion": weatherSnapshot,
			"user_notes":            notes,
		}).Error
}

func (r *taskRepo) Uncomplete(taskID, userID string) error {
	return r.db.Model(&entities.CareTask{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]any{
			"status":       entities.StatusPending,
			"completed_at": nil,
		}).Error
}

func (r *taskRepo) UpdateWindow(taskID, userID string, start, end *time.Time, priority *entities.TaskPriority) error {
	upd := map[string]any{}
	if start != nil {
		upd["window_start"] = start
	}
	if end != nil {
		upd["window_end"] = end
	}
	if priority != nil {
		upd["priority"] = *priority
	}
	if len(upd) == 0 {
		return nil
	}
	return r.db.Model(&entities.CareTask{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Updates(upd).Error
}

func (r *taskRepo) DeleteForPlant(plantID, userID string) error {
	return r.db.Where("plant_id = ? AND user_id = ?", plantID, userID).
		Delete(&entities.CareTask{}).Error
}

func (r *taskRepo) HasForPlant(plantID, userID string) (bool, error) {
	var n int64
	if err := r.db.Model(&entities.CareTask{}).
		Where("plant_id = ? AND user_id = ?", plantID, userID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *taskRepo) CompletedHistory(userID string, months int) ([]entities.CareTask, error) {
	cut := time.Now().AddDate(0, -months, 0)
	var out []entities.CareTask
	if err := r.db.Where("user_id = ? AND status = ? AND completed_at >= ?",
		userID, entities.StatusCompleted, cut).
		Order("completed_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
