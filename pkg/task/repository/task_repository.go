package repository

import (
	"time"

	"botanica/entities"
)

// TaskRepository is the store contract the scheduling core runs against.
// No logic lives here; classification and grouping stay in pkg/timing.
type TaskRepository interface {
	ListForUser(userID string) ([]entities.CareTask, error)
	ListForPlant(userID, plantID string) ([]entities.CareTask, error)
	ListPending(userID string) ([]entities.CareTask, error)

	// ListPendingWindow returns pending tasks relevant up to the given date:
	// windowed tasks starting before it plus all month-only tasks.
	ListPendingWindow(userID string, until time.Time) ([]entities.CareTask, error)

	// CreateBatch stamps ownership, language and the generation batch onto
	// every row and inserts them in one call.
	CreateBatch(userID, plantID, plantName, language, batchID string, tasks []entities.CareTask) error

	Complete(taskID, userID, weatherSnapshot, notes string) error
	Uncomplete(taskID, userID string) error
	UpdateWindow(taskID, userID string, start, end *time.Time, priority *entities.TaskPriority) error

	DeleteForPlant(plantID, userID string) error
	HasForPlant(plantID, userID string) (bool, error)

	// CompletedHistory returns tasks completed within the last n months,
	// most recent first.
	CompletedHistory(userID string, months int) ([]entities.CareTask, error)
}
