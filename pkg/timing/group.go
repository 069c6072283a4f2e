package timing

import (
	"sort"
	"time"

	"botanica/entities"
)

// DisplayTask is a task plus its derived bucket. The bucket is computed per
// read; persisting it would freeze a value that must advance with the clock.
type DisplayTask struct {
	entities.CareTask
	Timing Bucket `json:"timing"`
}

type PlantGroup struct {
	PlantID   string        `json:"plant_id"`
	PlantName string        `json:"plant_name"`
	Tasks     []DisplayTask `json:"tasks"`
}

type CategoryGroup struct {
	Category    entities.TaskCategory `json:"category"`
	PlantGroups []PlantGroup          `json:"plant_groups"`
	TotalTasks  int                   `json:"total_tasks"`
}

type Grouped struct {
	Urgent     []DisplayTask   `json:"urgent"`
	Categories []CategoryGroup `json:"categories"`
}

// Group partitions the pending-task set into the flat urgent list
// (overdue before today) and per-category groups of the rest, largest
// category first. Every pending task lands in exactly one place.
func Group(tasks []entities.CareTask, now time.Time) Grouped {
	var out Grouped
	byCat := map[entities.TaskCategory]*CategoryGroup{}
	var order []entities.TaskCategory

	for _, t := range tasks {
		if t.Status != entities.StatusPending {
			continue
		}
		dt := DisplayTask{CareTask: t, Timing: Classify(&t, now)}
		if dt.Timing.Urgent() {
			out.Urgent = append(out.Urgent, dt)
			continue
		}

		cat := t.Category
		if !cat.Valid() {
			cat = entities.CategoryGeneral
		}
		g, ok := byCat[cat]
		if !ok {
			g = &CategoryGroup{Category: cat}
			byCat[cat] = g
			order = append(order, cat)
		}
		g.TotalTasks++

		var pg *PlantGroup
		for i := range g.PlantGroups {
			if g.PlantGroups[i].PlantID == t.PlantID {
				pg = &g.PlantGroups[i]
				break
			}
		}
		if pg == nil {
			g.PlantGroups = append(g.PlantGroups, PlantGroup{PlantID: t.PlantID, PlantName: t.PlantName})
			pg = &g.PlantGroups[len(g.PlantGroups)-1]
		}
		pg.Tasks = append(pg.Tasks, dt)
	}

	// overdue before today, stable within each bucket
	sort.SliceStable(out.Urgent, func(i, j int) bool {
		return out.Urgent[i].Timing.rank() < out.Urgent[j].Timing.rank()
	})

	for _, cat := range order {
		out.Categories = append(out.Categories, *byCat[cat])
	}
	sort.SliceStable(out.Categories, func(i, j int) bool {
		return out.Categories[i].TotalTasks > out.Categories[j].TotalTasks
	})
	return out
}

// RecentlyCompleted returns tasks completed within the last seven days,
// most recent first, for the "done" feed shown apart from the schedule.
func RecentlyCompleted(tasks []entities.CareTask, now time.Time) []entities.CareTask {
	cut := now.AddDate(0, 0, -7)
	var out []entities.CareTask
	for _, t := range tasks {
		if t.Status == entities.StatusCompleted && t.CompletedAt != nil && t.CompletedAt.After(cut) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CompletedAt.After(*out[j].CompletedAt)
	})
	return out
}
