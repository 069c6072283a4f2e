package entities

import "time"

type Plant struct {
	PlantID     string   `gorm:"primaryKey" json:"plant_id"`
	UserID      string   `json:"user_id" gorm:"index"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CareNeeds   string   `json:"care_needs"`
	Notes       string   `json:"notes"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Language    string   `json:"language"`

	// Cached detailed care sheet, regenerated when older than the cache window.
	CarePlanMD          string     `json:"care_plan_md"`
	CarePlanGeneratedAt *time.Time `json:"care_plan_generated_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
