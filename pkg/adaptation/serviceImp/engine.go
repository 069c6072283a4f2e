package serviceImp

import (
	"fmt"
	"log"
	"time"

	"botanica/entities"
	"botanica/pkg/adaptation/repository"
	"botanica/pkg/adaptation/service"
	"botanica/pkg/ai"
	"botanica/pkg/climate"
	plantrepo "botanica/pkg/plant/repository"
	taskrepo "botanica/pkg/task/repository"
	"botanica/pkg/weather"
)

type kbSearcher interface {
	Search(query string, k int) ([]entities.KBChunk, error)
}

type Engine struct {
	tasks        taskrepo.TaskRepository
	logs         repository.AdaptationLogRepository
	plants       plantrepo.PlantRepository
	llm          ai.Client
	weather      *weather.Client
	normals      *climate.Normals
	kb           kbSearcher
	intervalDays int
}

func NewEngine(
	tr taskrepo.TaskRepository,
	lr repository.AdaptationLogRepository,
	pr plantrepo.PlantRepository,
	llm ai.Client,
	wc *weather.Client,
	normals *climate.Normals,
	kb kbSearcher,
	intervalDays int,
) *Engine {
	if intervalDays <= 0 {
		intervalDays = 15
	}
	return &Engine{tasks: tr, logs: lr, plants: pr, llm: llm, weather: wc,
		normals: normals, kb: kb, intervalDays: intervalDays}
}

func (e *Engine) ShouldAdapt(userID string) (bool, error) {
	last, err := e.logs.Last(userID, time.Now().Year())
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	return time.Since(last.AdaptedAt) >= time.Duration(e.intervalDays)*24*time.Hour, nil
}

// RunIfDue is the session entry point. The latch makes re-fired triggers
// no-ops; the due check keeps the biweekly cadence. Any failure aborts the
// run without a log entry so the next session retries fully. Tasks committed
// before the failure remain: at-least-once, made safe by FilterDuplicates.
func (e *Engine) RunIfDue(sess *service.Session, userID string, lat, lon *float64, language string) (*service.RunResult, error) {
	if sess != nil && !sess.TryAcquire() {
		return &service.RunResult{}, nil
	}

	due, err := e.ShouldAdapt(userID)
	if err != nil {
		return nil, err
	}
	if !due {
		return &service.RunResult{}, nil
	}

	plants, err := e.plants.ListForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(plants) == 0 {
		return &service.RunResult{}, nil
	}

	now := time.Now()
	pending, err := e.tasks.ListPendingWindow(userID, now.AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}
	completed, err := e.tasks.CompletedHistory(userID, 3)
	if err != nil {
		return nil, err
	}
	if len(completed) > 30 {
		completed = completed[:30]
	}

	loc, digest := e.gatherWeather(plants, lat, lon, now)

	kbCtx := e.searchKB(plants)

	prop, err := e.llm.ProposeAdaptation(plants, pending, completed, loc, digest, kbCtx, language)
	if err != nil {
		return nil, fmt.Errorf("adaptation proposal: %w", err)
	}

	added, modified, err := e.reconcile(userID, plants, pending, completed, prop, now)
	if err != nil {
		return nil, err
	}

	// Log only after all persistence succeeded; a partial run must look
	// not-run to the next due check.
	entry := &entities.AdaptationLog{
		UserID:           userID,
		AdaptationPeriod: e.nextPeriod(userID, now.Year()),
		YearAdapted:      now.Year(),
		AdaptedAt:        now,
		WeatherSnapshot:  digest,
		TasksAdded:       added,
		TasksModified:    modified,
	}
	if err := e.logs.Record(entry); err != nil {
		return nil, fmt.Errorf("record adaptation: %w", err)
	}

	log.Printf("[adapt] user=%s period=%d added=%d modified=%d", userID, entry.AdaptationPeriod, added, modified)
	return &service.RunResult{Ran: true, TasksAdded: added, TasksModified: modified}, nil
}

// gatherWeather resolves coordinates (caller's, else the first plant's) and
// fetches the forecast. Weather is best effort: on failure the digest falls
// back to climate normals and the run continues.
func (e *Engine) gatherWeather(plants []entities.Plant, lat, lon *float64, now time.Time) (ai.LocationContext, string) {
	if lat == nil || lon == nil {
		for _, p := range plants {
			if p.Latitude != nil && p.Longitude != nil {
				lat, lon = p.Latitude, p.Longitude
				break
			}
		}
	}
	loc := ai.LocationContext{Latitude: lat, Longitude: lon}
	if lat == nil || lon == nil {
		loc.Fallback = "No location. Assume temperate Mediterranean climate."
		return loc, e.normals.Digest(nil, now.Month())
	}
	if e.weather != nil {
		if fc, err := e.weather.Fetch(*lat, *lon); err == nil {
			return loc, weather.Digest(fc)
		} else {
			log.Printf("[adapt] weather fetch failed, using normals: %v", err)
		}
	}
	return loc, e.normals.Digest(lat, now.Month())
}

func (e *Engine) searchKB(plants []entities.Plant) string {
	if e.kb == nil || len(plants) == 0 {
		return ""
	}
	query := ""
	for _, p := range plants {
		query += p.Name + " "
	}
	chunks, err := e.kb.Search(query+"seasonal care frost watering", 4)
	if err != nil {
		return ""
	}
	ctx := ""
	for _, ch := range chunks {
		if len(ctx) > 4000 {
			break
		}
		ctx += "\n---\n" + ch.Text
	}
	return ctx
}

// reconcile applies the proposal to the store: duplicate-filtered new tasks
// in per-plant batches under one shared "adapt_<timestamp>" batch id, then
// window/priority modifications against existing pending rows only.
func (e *Engine) reconcile(userID string, plants []entities.Plant, pending, completed []entities.CareTask, prop *ai.AdaptProposal, now time.Time) (added, modified int, err error) {
	if prop == nil {
		return 0, 0, nil
	}

	known := map[string]entities.Plant{}
	for _, p := range plants {
		known[p.PlantID] = p
	}

	drafts := FilterDuplicates(prop.NewTasks, pending, completed)
	batchID := fmt.Sprintf("adapt_%d", now.Unix())

	byPlant := map[string][]entities.CareTask{}
	var plantOrder []string
	for _, d := range drafts {
		p, ok := known[d.PlantID]
		if !ok {
			log.Printf("[adapt] dropping draft for unknown plant %q", d.PlantID)
			continue
		}
		t, ok := draftToTask(d, now)
		if !ok {
			continue
		}
		if _, seen := byPlant[p.PlantID]; !seen {
			plantOrder = append(plantOrder, p.PlantID)
		}
		byPlant[p.PlantID] = append(byPlant[p.PlantID], t)
	}

	// Sequential per-plant batches: partial completion across plants is
	// acceptable, each batch is independently idempotent-safe.
	for _, pid := range plantOrder {
		p := known[pid]
		batch := byPlant[pid]
		if err := e.tasks.CreateBatch(userID, p.PlantID, p.Name, p.Language, batchID, batch); err != nil {
			return added, modified, fmt.Errorf("persist batch for %s: %w", p.Name, err)
		}
		added += len(batch)
	}

	pendingIDs := map[string]struct{}{}
	for _, t := range pending {
		pendingIDs[t.TaskID] = struct{}{}
	}
	for _, m := range prop.Modifications {
		if _, ok := pendingIDs[m.TaskID]; !ok {
			log.Printf("[adapt] dropping modification for unknown task %q", m.TaskID)
			continue
		}
		start := parseDay(m.NewWindowStart)
		end := parseDay(m.NewWindowEnd)
		if start != nil && end != nil && end.Before(*start) {
			start, end = nil, nil
		}
		var prio *entities.TaskPriority
		switch entities.TaskPriority(m.NewPriority) {
		case entities.PriorityUrgent, entities.PriorityNormal, entities.PriorityLow:
			p := entities.TaskPriority(m.NewPriority)
			prio = &p
		}
		if start == nil && end == nil && prio == nil {
			continue
		}
		if err := e.tasks.UpdateWindow(m.TaskID, userID, start, end, prio); err != nil {
			return added, modified, fmt.Errorf("apply modification %s: %w", m.TaskID, err)
		}
		modified++
	}
	return added, modified, nil
}

func (e *Engine) nextPeriod(userID string, year int) int {
	last, err := e.logs.Last(userID, year)
	if err != nil || last == nil {
		return 1
	}
	return last.AdaptationPeriod + 1
}

// draftToTask validates a proposed routine task; malformed entries are
// dropped, never fatal.
func draftToTask(d ai.TaskDraft, now time.Time) (entities.CareTask, bool) {
	if d.Task == "" {
		return entities.CareTask{}, false
	}
	month := d.ScheduledMonth
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	cat := entities.TaskCategory(d.Category)
	if !cat.Valid() {
		cat = entities.CategoryGeneral
	}
	nature := entities.TaskNature(d.TaskNature)
	if nature != entities.NatureStructural {
		nature = entities.NatureRoutine
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
	return entities.CareTask{
		Task:           d.Task,
		Reason:         d.Reason,
		Category:       cat,
		TaskNature:     nature,
		ScheduledMonth: month,
		WindowStart:    start,
		WindowEnd:      end,
		Priority:       prio,
		Status:         entities.StatusPending,
	}, true
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
