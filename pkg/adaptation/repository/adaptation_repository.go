package repository

import "botanica/entities"

type AdaptationLogRepository interface {
	// Last returns the most recent adaptation entry for the user in the
	// given year, or nil when none exists.
	Last(userID string, year int) (*entities.AdaptationLog, error)
	Record(log *entities.AdaptationLog) error
}
