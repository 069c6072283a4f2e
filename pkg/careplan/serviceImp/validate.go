package serviceImp

import (
	"time"

	"botanica/entities"
	"botanica/pkg/ai"
)

// ValidateStructural filters an annual-plan proposal down to well-formed
// structural tasks. Malformed entries are dropped, not fatal: a partially
// usable proposal still bootstraps the plant. Routine watering drafts are
// rejected here as well; they belong to the adaptation path.
func ValidateStructural(drafts []ai.TaskDraft) []entities.CareTask {
	out := make([]entities.CareTask, 0, len(drafts))
	for _, d := range drafts {
		if d.Task == "" || d.Reason == "" {
			continue
		}
		if d.ScheduledMonth < 1 || d.ScheduledMonth > 12 {
			continue
		}
		cat := entities.TaskCategory(d.Category)
		if !cat.Valid() {
			cat = entities.CategoryGeneral
		}
		if cat == entities.CategoryWatering {
			continue
		}
		prio := entities.TaskPriority(d.Priority)
		switch prio {
		case entities.PriorityUrgent, entities.PriorityNormal, entities.PriorityLow:
		default:
			prio = entities.PriorityNormal
		}
		start := parseDay(d.WindowStart)
		end := parseDay(d.WindowEnd)
		if start != nil && end != nil && end.Before(*start) {
			start, end = nil, nil
		}
		out = append(out, entities.CareTask{
			Task:           d.Task,
			Reason:         d.Reason,
			Category:       cat,
			TaskNature:     entities.NatureStructural,
			ScheduledMonth: d.ScheduledMonth,
			WindowStart:    start,
			WindowEnd:      end,
			Priority:       prio,
			Status:         entities.StatusPending,
		})
	}
	return out
}

func parseDay(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
