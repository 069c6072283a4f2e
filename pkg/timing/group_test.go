package timing

import (
	"testing"
	"time"

	"botanica/entities"
)

func pendingTask(id, plantID, plantName string, cat entities.TaskCategory, start, end time.Time) entities.CareTask {
	return entities.CareTask{
		TaskID:      id,
		PlantID:     plantID,
		PlantName:   plantName,
		Category:    cat,
		Status:      entities.StatusPending,
		WindowStart: ptr(start),
		WindowEnd:   ptr(end),
	}
}

func TestGroupEveryPendingTaskPlacedOnce(t *testing.T) {
	now := date(2026, time.March, 10)
	tasks := []entities.CareTask{
		pendingTask("t1", "p1", "Rose", entities.CategoryPruning, date(2026, 3, 1), date(2026, 3, 5)),    // overdue
		pendingTask("t2", "p1", "Rose", entities.CategoryPruning, date(2026, 3, 9), date(2026, 3, 12)),   // today
		pendingTask("t3", "p1", "Rose", entities.CategoryPruning, date(2026, 3, 14), date(2026, 3, 20)),  // this_week
		pendingTask("t4", "p2", "Fig", entities.CategoryFertilizing, date(2026, 3, 20), date(2026, 3, 28)), // this_month
		pendingTask("t5", "p2", "Fig", entities.CategoryPruning, date(2026, 4, 2), date(2026, 4, 10)),    // upcoming
	}
	done := pendingTask("t6", "p1", "Rose", entities.CategoryPruning, date(2026, 3, 1), date(2026, 3, 5))
	done.Status = entities.StatusCompleted
	tasks = append(tasks, done)

	g := Group(tasks, now)

	seen := map[string]int{}
	for _, dt := range g.Urgent {
		seen[dt.TaskID]++
	}
	for _, cg := range g.Categories {
		total := 0
		for _, pg := range cg.PlantGroups {
			for _, dt := range pg.Tasks {
				seen[dt.TaskID]++
				total++
			}
		}
		if total != cg.TotalTasks {
			t.Errorf("category %s: TotalTasks=%d but %d tasks present", cg.Category, cg.TotalTasks, total)
		}
	}

	for _, id := range []string{"t1", "t2", "t3", "t4", "t5"} {
		if seen[id] != 1 {
			t.Errorf("task %s placed %d times, want exactly once", id, seen[id])
		}
	}
	if seen["t6"] != 0 {
		t.Errorf("completed task leaked into grouped view")
	}
}

func TestGroupUrgentOrdering(t *testing.T) {
	now := date(2026, time.March, 10)
	tasks := []entities.CareTask{
		pendingTask("today1", "p1", "Rose", entities.CategoryPruning, date(2026, 3, 10), date(2026, 3, 12)),
		pendingTask("over1", "p1", "Rose", entities.CategoryPruning, date(2026, 3, 1), date(2026, 3, 5)),
		pendingTask("today2", "p2", "Fig", entities.CategorySeeding, date(2026, 3, 9), date(2026, 3, 11)),
		pendingTask("over2", "p2", "Fig", entities.CategorySeeding, date(2026, 2, 1), date(2026, 2, 20)),
	}
	g := Group(tasks, now)

	if len(g.Urgent) != 4 {
		t.Fatalf("urgent len = %d, want 4", len(g.Urgent))
	}
	// all overdue before any today; stable within each
	want := []string{"over1", "over2", "today1", "today2"}
	for i, id := range want {
		if g.Urgent[i].TaskID != id {
			t.Errorf("urgent[%d] = %s, want %s", i, g.Urgent[i].TaskID, id)
		}
	}
}

func TestGroupCategoriesByDescendingCount(t *testing.T) {
	now := date(2026, time.March, 10)
	var tasks []entities.CareTask
	// 3 fertilizing tasks, 1 pruning, none urgent
	for i, id := range []string{"f1", "f2", "f3"} {
		tasks = append(tasks, pendingTask(id, "p1", "Rose", entities.CategoryFertilizing,
			date(2026, 4, 1+i), date(2026, 4, 10)))
	}
	tasks = append(tasks, pendingTask("pr1", "p1", "Rose", entities.CategoryPruning,
		date(2026, 4, 1), date(2026, 4, 10)))

	g := Group(tasks, now)
	if len(g.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(g.Categories))
	}
	if g.Categories[0].Category != entities.CategoryFertilizing {
		t.Errorf("largest category first: got %s", g.Categories[0].Category)
	}
}

func TestGroupInvalidCategoryFallsBackToGeneral(t *testing.T) {
	now := date(2026, time.March, 10)
	bad := pendingTask("x1", "p1", "Rose", entities.TaskCategory("misting"), date(2026, 4, 1), date(2026, 4, 5))
	g := Group([]entities.CareTask{bad}, now)
	if len(g.Categories) != 1 || g.Categories[0].Category != entities.CategoryGeneral {
		t.Fatalf("unknown category not mapped to general: %+v", g.Categories)
	}
}

func TestRecentlyCompleted(t *testing.T) {
	now := date(2026, time.March, 10)

	mk := func(id string, completedAt time.Time) entities.CareTask {
		return entities.CareTask{TaskID: id, Status: entities.StatusCompleted, CompletedAt: ptr(completedAt)}
	}
	tasks := []entities.CareTask{
		mk("recent", date(2026, 3, 8)),
		mk("newer", date(2026, 3, 9)),
		mk("old", date(2026, 2, 20)),
		{TaskID: "pending", Status: entities.StatusPending},
	}

	got := RecentlyCompleted(tasks, now)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].TaskID != "newer" || got[1].TaskID != "recent" {
		t.Errorf("order = %s,%s, want newer,recent", got[0].TaskID, got[1].TaskID)
	}
}
