package entities

import "time"

type TaskCategory string

const (
	CategoryWatering       TaskCategory = "watering"
	CategoryPruning        TaskCategory = "pruning"
	CategoryGrafting       TaskCategory = "grafting"
	CategorySeeding        TaskCategory = "seeding"
	CategoryFertilizing    TaskCategory = "fertilizing"
	CategoryHarvesting     TaskCategory = "harvesting"
	CategoryPestPrevention TaskCategory = "pest_prevention"
	CategoryRepotting      TaskCategory = "repotting"
	CategoryGeneral        TaskCategory = "general"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryWatering, CategoryPruning, CategoryGrafting, CategorySeeding,
		CategoryFertilizing, CategoryHarvesting, CategoryPestPrevention,
		CategoryRepotting, CategoryGeneral:
		return true
	}
	return false
}

type TaskNature string

const (
	NatureStructural TaskNature = "structural"
	NatureRoutine    TaskNature = "routine"
)

type TaskPriority string

const (
	PriorityUrgent TaskPriority = "urgent"
	PriorityNormal TaskPriority = "normal"
	PriorityLow    TaskPriority = "low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusSkipped   TaskStatus = "skipped"
)

type CareTask struct {
	TaskID    string `gorm:"primaryKey" json:"task_id"`
	UserID    string `json:"user_id" gorm:"index"`
	PlantID   string `json:"plant_id" gorm:"index"`
	PlantName string `json:"plant_name"`

	Task   string `json:"task"`
	Reason string `json:"reason"`

	Category   TaskCategory `json:"category"`
	TaskNature TaskNature   `json:"task_nature"` // structural|routine

	// Fallback scheduling granularity when no precise window exists.
	ScheduledMonth int        `json:"scheduled_month"` // 1-12
	WindowStart    *time.Time `json:"window_start"`
	WindowEnd      *time.Time `json:"window_end"`

	Priority TaskPriority `json:"priority"`
	Status   TaskStatus   `json:"status"` // pending|completed|skipped

	CompletedAt         *time.Time `json:"completed_at"`
	WeatherAtCompletion string     `json:"weather_at_completion"`
	UserNotes           string     `json:"user_notes"`

	Language        string `json:"language"`
	GenerationBatch string `json:"generation_batch" gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
