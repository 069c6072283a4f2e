package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botanica/entities"
)

type fakeTaskRepo struct {
	tasks []entities.CareTask
}

func (f *fakeTaskRepo) ListForUser(string) ([]entities.CareTask, error) { return f.tasks, nil }
func (f *fakeTaskRepo) ListForPlant(string, string) ([]entities.CareTask, error) {
	return f.tasks, nil
}
func (f *fakeTaskRepo) ListPending(string) ([]entities.CareTask, error) {
	var out []entities.CareTask
	for _, t := range f.tasks {
		if t.Status == entities.StatusPending {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTaskRepo) ListPendingWindow(string, time.Time) ([]entities.CareTask, error) {
	return f.tasks, nil
}
func (f *fakeTaskRepo) CreateBatch(string, string, string, string, string, []entities.CareTask) error {
	return nil
}
func (f *fakeTaskRepo) Complete(string, string, string, string) error { return nil }
func (f *fakeTaskRepo) Uncomplete(string, string) error               { return nil }
func (f *fakeTaskRepo) UpdateWindow(string, string, *time.Time, *time.Time, *entities.TaskPriority) error {
	return nil
}
func (f *fakeTaskRepo) DeleteForPlant(string, string) error      { return nil }
func (f *fakeTaskRepo) HasForPlant(string, string) (bool, error) { return false, nil }
func (f *fakeTaskRepo) CompletedHistory(string, int) ([]entities.CareTask, error) {
	return nil, nil
}

func newContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "u1")
	return c, rec
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCalendarGroupsByPlantAndMonth(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []entities.CareTask{
		{TaskID: "t1", PlantID: "p1", PlantName: "Fig", ScheduledMonth: 3,
			WindowStart: day(2026, 3, 20), Status: entities.StatusPending},
		{TaskID: "t2", PlantID: "p1", PlantName: "Fig", ScheduledMonth: 3,
			WindowStart: day(2026, 3, 5), Status: entities.StatusPending},
		{TaskID: "t3", PlantID: "p1", PlantName: "Fig", ScheduledMonth: 7, Status: entities.StatusPending},
		{TaskID: "t4", PlantID: "p2", PlantName: "Rose", ScheduledMonth: 1, Status: entities.StatusPending},
		{TaskID: "t5", PlantID: "p1", PlantName: "Fig", ScheduledMonth: 2, Status: entities.StatusCompleted},
	}}
	h := New(repo, nil)

	c, rec := newContext(t, "/tasks/calendar")
	require.NoError(t, h.Calendar(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []calendarPlant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)

	fig := out[0]
	assert.Equal(t, "p1", fig.PlantID)
	require.Len(t, fig.Months, 2)
	assert.Equal(t, 3, fig.Months[0].Month)
	assert.Equal(t, 7, fig.Months[1].Month)
	// within a month, windowed tasks come earliest-first
	require.Len(t, fig.Months[0].Tasks, 2)
	assert.Equal(t, "t2", fig.Months[0].Tasks[0].TaskID)
	assert.Equal(t, "t1", fig.Months[0].Tasks[1].TaskID)

	rose := out[1]
	assert.Equal(t, "p2", rose.PlantID)
	require.Len(t, rose.Months, 1)
	assert.Equal(t, 1, rose.Months[0].Month)
}

func TestCalendarDefaultsBadMonthToCurrent(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []entities.CareTask{
		{TaskID: "t1", PlantID: "p1", PlantName: "Fig", ScheduledMonth: 0, Status: entities.StatusPending},
	}}
	h := New(repo, nil)

	c, rec := newContext(t, "/tasks/calendar")
	require.NoError(t, h.Calendar(c))

	var out []calendarPlant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Len(t, out[0].Months, 1)
	assert.Equal(t, int(time.Now().Month()), out[0].Months[0].Month)
}

func TestListGroupsWithExplicitNow(t *testing.T) {
	repo := &fakeTaskRepo{tasks: []entities.CareTask{
		{TaskID: "t1", PlantID: "p1", PlantName: "Fig", Category: entities.CategoryPruning,
			WindowStart: day(2026, 3, 1), WindowEnd: day(2026, 3, 5), Status: entities.StatusPending},
		{TaskID: "t2", PlantID: "p1", PlantName: "Fig", Category: entities.CategoryFertilizing,
			WindowStart: day(2026, 4, 1), WindowEnd: day(2026, 4, 10), Status: entities.StatusPending},
	}}
	h := New(repo, nil)

	c, rec := newContext(t, "/tasks?now=2026-03-10")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Urgent []struct {
			TaskID string `json:"task_id"`
			Timing string `json:"timing"`
		} `json:"urgent"`
		Categories []struct {
			Category string `json:"category"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Urgent, 1)
	assert.Equal(t, "t1", out.Urgent[0].TaskID)
	assert.Equal(t, "overdue", out.Urgent[0].Timing)
	require.Len(t, out.Categories, 1)
	assert.Equal(t, "fertilizing", out.Categories[0].Category)
}
