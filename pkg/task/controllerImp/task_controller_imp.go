package controllerImp

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"botanica/entities"
	"botanica/pkg/task/repository"
	"botanica/pkg/timing"
	"botanica/pkg/weather"
)

type TaskCtrl struct {
	repo    repository.TaskRepository
	weather *weather.Client
}

func New(repo repository.TaskRepository, wx *weather.Client) *TaskCtrl {
	return &TaskCtrl{repo: repo, weather: wx}
}

// List returns the grouped dashboard view: urgent tasks first, then
// category groups, plus completions from the last seven days.
func (h *TaskCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	now := time.Now()
	if raw := c.QueryParam("now"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			now = t
		}
	}
	tasks, err := h.repo.ListForUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	grouped := timing.Group(tasks, now)
	recent := timing.RecentlyCompleted(tasks, now)
	return c.JSON(http.StatusOK, map[string]any{
		"urgent":             grouped.Urgent,
		"categories":         grouped.Categories,
		"recently_completed": recent,
	})
}

type calendarMonth struct {
	Month int                  `json:"month"`
	Tasks []entities.CareTask `json:"tasks"`
}

type calendarPlant struct {
	PlantID   string          `json:"plant_id"`
	PlantName string          `json:"plant_name"`
	Months    []calendarMonth `json:"months"`
}

// Calendar projects every pending task onto its scheduled month,
// grouped per plant, for the year-at-a-glance view.
func (h *TaskCtrl) Calendar(c echo.Context) error {
	uid := c.Get("uid").(string)
	tasks, err := h.repo.ListPending(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	byPlant := map[string][]entities.CareTask{}
	names := map[string]string{}
	var order []string
	for _, t := range tasks {
		if _, seen := byPlant[t.PlantID]; !seen {
			order = append(order, t.PlantID)
			names[t.PlantID] = t.PlantName
		}
		byPlant[t.PlantID] = append(byPlant[t.PlantID], t)
	}

	out := make([]calendarPlant, 0, len(order))
	for _, pid := range order {
		byMonth := map[int][]entities.CareTask{}
		for _, t := range byPlant[pid] {
			m := t.ScheduledMonth
			if m < 1 || m > 12 {
				m = int(time.Now().Month())
			}
			byMonth[m] = append(byMonth[m], t)
		}
		months := make([]calendarMonth, 0, len(byMonth))
		for m, ts := range byMonth {
			sort.SliceStable(ts, func(i, j int) bool {
				a, b := ts[i].WindowStart, ts[j].WindowStart
				if a == nil || b == nil {
					return b == nil && a != nil
				}
				return a.Before(*b)
			})
			months = append(months, calendarMonth{Month: m, Tasks: ts})
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
		out = append(out, calendarPlant{PlantID: pid, PlantName: names[pid], Months: months})
	}
	return c.JSON(http.StatusOK, out)
}

type completeReq struct {
	Notes     string   `json:"notes"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Complete marks a task done and stamps it with the weather at the
// time of completion when coordinates are available.
func (h *TaskCtrl) Complete(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	snapshot := ""
	if h.weather != nil && req.Latitude != nil && req.Longitude != nil {
		if f, err := h.weather.Fetch(*req.Latitude, *req.Longitude); err == nil {
			snapshot = weather.Digest(f)
		}
	}
	if err := h.repo.Complete(c.Param("id"), uid, snapshot, req.Notes); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "completed"})
}

func (h *TaskCtrl) Uncomplete(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.repo.Uncomplete(c.Param("id"), uid); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "pending"})
}

type windowReq struct {
	WindowStart *string `json:"window_start"`
	WindowEnd   *string `json:"window_end"`
	Priority    *string `json:"priority"`
}

func (h *TaskCtrl) UpdateWindow(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req windowReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	var start, end *time.Time
	if req.WindowStart != nil {
		t, err := time.Parse("2006-01-02", *req.WindowStart)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "window_start must be YYYY-MM-DD"})
		}
		start = &t
	}
	if req.WindowEnd != nil {
		t, err := time.Parse("2006-01-02", *req.WindowEnd)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "window_end must be YYYY-MM-DD"})
		}
		end = &t
	}
	if start != nil && end != nil && end.Before(*start) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "window_end before window_start"})
	}
	var prio *entities.TaskPriority
	if req.Priority != nil {
		p := entities.TaskPriority(*req.Priority)
		if !p.Valid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid priority"})
		}
		prio = &p
	}
	if err := h.repo.UpdateWindow(c.Param("id"), uid, start, end, prio); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
