package entities

import "time"

type AdaptationLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `json:"user_id" gorm:"index"`
	AdaptationPeriod int       `json:"adaptation_period"` // sequential per user per year
	YearAdapted      int       `json:"year_adapted"`
	AdaptedAt        time.Time `json:"adapted_at"`
	WeatherSnapshot  string    `json:"weather_snapshot"`
	TasksAdded       int       `json:"tasks_added"`
	TasksModified    int       `json:"tasks_modified"`
	CreatedAt        time.Time
}
