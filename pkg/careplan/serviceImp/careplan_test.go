package serviceImp

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botanica/entities"
	"botanica/pkg/ai"
)

type fakeTaskRepo struct {
	hasTasks  bool
	batches   []string
	created   []entities.CareTask
	createErr error
}

func (f *fakeTaskRepo) ListForUser(string) ([]entities.CareTask, error) { return nil, nil }
func (f *fakeTaskRepo) ListForPlant(string, string) ([]entities.CareTask, error) { return nil, nil }
func (f *fakeTaskRepo) ListPending(string) ([]entities.CareTask, error) { return nil, nil }
func (f *fakeTaskRepo) ListPendingWindow(string, time.Time) ([]entities.CareTask, error) {
	return nil, nil
}
func (f *fakeTaskRepo) CreateBatch(_, _, _, _, batchID string, tasks []entities.CareTask) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.batches = append(f.batches, batchID)
	f.created = append(f.created, tasks...)
	f.hasTasks = true
	return nil
}
func (f *fakeTaskRepo) Complete(string, string, string, string) error { return nil }
func (f *fakeTaskRepo) Uncomplete(string, string) error { return nil }
func (f *fakeTaskRepo) UpdateWindow(string, string, *time.Time, *time.Time, *entities.TaskPriority) error {
	return nil
}
func (f *fakeTaskRepo) DeleteForPlant(string, string) error { return nil }
func (f *fakeTaskRepo) HasForPlant(string, string) (bool, error) { return f.hasTasks, nil }
func (f *fakeTaskRepo) CompletedHistory(string, int) ([]entities.CareTask, error) {
	return nil, nil
}

type fakePlantRepo struct {
	plants map[string]*entities.Plant
	saved  int
}

func (f *fakePlantRepo) Create(*entities.Plant) error { return nil }
func (f *fakePlantRepo) FindByID(id, _ string) (*entities.Plant, error) {
	if p, ok := f.plants[id]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}
func (f *fakePlantRepo) ListForUser(string) ([]entities.Plant, error) {
	var out []entities.Plant
	for _, p := range f.plants {
		out = append(out, *p)
	}
	return out, nil
}
func (f *fakePlantRepo) Delete(string, string) error { return nil }
func (f *fakePlantRepo) SaveCarePlan(id, _ string, md string, at time.Time) error {
	if p, ok := f.plants[id]; ok {
		p.CarePlanMD = md
		p.CarePlanGeneratedAt = &at
	}
	f.saved++
	return nil
}

type fakeLLM struct {
	drafts    []ai.TaskDraft
	draftsErr error
	planCalls int

	sheet      string
	sheetErr   error
	sheetCalls int
}

func (f *fakeLLM) ProposeAnnualPlan(*entities.Plant, ai.LocationContext, string, string, string) ([]ai.TaskDraft, error) {
	f.planCalls++
	return f.drafts, f.draftsErr
}
func (f *fakeLLM) ProposeAdaptation([]entities.Plant, []entities.CareTask, []entities.CareTask, ai.LocationContext, string, string, string) (*ai.AdaptProposal, error) {
	return nil, nil
}
func (f *fakeLLM) SearchPlant(string, string) (*ai.PlantInfo, error) { return nil, nil }
func (f *fakeLLM) DetailedCarePlan(*entities.Plant, string) (string, error) {
	f.sheetCalls++
	return f.sheet, f.sheetErr
}
func (f *fakeLLM) Chat([]ai.ChatMessage, []entities.Plant, string) (string, error) { return "", nil }

func onePlant() *fakePlantRepo {
	return &fakePlantRepo{plants: map[string]*entities.Plant{
		"p1": {PlantID: "p1", UserID: "u1", Name: "Fig"},
	}}
}

func goodDraft(task string, month int) ai.TaskDraft {
	return ai.TaskDraft{Task: task, Reason: "seasonal need", Category: "pruning", ScheduledMonth: month}
}

func TestEnsureAnnualPlanBootstraps(t *testing.T) {
	tasks := &fakeTaskRepo{}
	llm := &fakeLLM{drafts: []ai.TaskDraft{goodDraft("Winter prune", 1), goodDraft("Summer thin", 7)}}
	svc := New(onePlant(), tasks, llm, nil, nil, nil)

	n, err := svc.EnsureAnnualPlan("u1", "p1", nil, nil, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, tasks.batches, 1)
	assert.True(t, strings.HasPrefix(tasks.batches[0], "annual_p1_"))
	for _, ct := range tasks.created {
		assert.Equal(t, entities.NatureStructural, ct.TaskNature)
		assert.Equal(t, entities.StatusPending, ct.Status)
	}
}

func TestEnsureAnnualPlanIdempotent(t *testing.T) {
	tasks := &fakeTaskRepo{}
	llm := &fakeLLM{drafts: []ai.TaskDraft{goodDraft("Winter prune", 1)}}
	svc := New(onePlant(), tasks, llm, nil, nil, nil)

	_, err := svc.EnsureAnnualPlan("u1", "p1", nil, nil, "en")
	require.NoError(t, err)
	n, err := svc.EnsureAnnualPlan("u1", "p1", nil, nil, "en")
	require.NoError(t, err)
	assert.Zero(t, n, "plant with existing tasks must not be re-planned")
	assert.Equal(t, 1, llm.planCalls)
}

func TestEnsureAnnualPlanDropsMalformedDrafts(t *testing.T) {
	tasks := &fakeTaskRepo{}
	llm := &fakeLLM{drafts: []ai.TaskDraft{
		goodDraft("Winter prune", 1),
		{Task: "", Reason: "missing task text", ScheduledMonth: 2},
		{Task: "No reason given", Reason: "", ScheduledMonth: 3},
		{Task: "Bad month", Reason: "x", ScheduledMonth: 13},
		{Task: "Routine watering", Reason: "x", Category: "watering", ScheduledMonth: 6},
	}}
	svc := New(onePlant(), tasks, llm, nil, nil, nil)

	n, err := svc.EnsureAnnualPlan("u1", "p1", nil, nil, "en")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEnsureAnnualPlanEmptyProposalIsNotFatal(t *testing.T) {
	tasks := &fakeTaskRepo{}
	svc := New(onePlant(), tasks, &fakeLLM{}, nil, nil, nil)

	n, err := svc.EnsureAnnualPlan("u1", "p1", nil, nil, "en")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, tasks.batches)
}

func TestBootstrapAllContinuesPastFailure(t *testing.T) {
	plants := &fakePlantRepo{plants: map[string]*entities.Plant{
		"p1": {PlantID: "p1", UserID: "u1", Name: "Fig"},
		"p2": {PlantID: "p2", UserID: "u1", Name: "Rose"},
	}}
	llm := &fakeLLM{draftsErr: errors.New("model down")}
	svc := New(plants, &fakeTaskRepo{}, llm, nil, nil, nil)

	err := svc.BootstrapAll("u1", nil, nil, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, llm.planCalls, "every plant attempted despite failures")
}

func TestCarePlanSheetCaches(t *testing.T) {
	plants := onePlant()
	llm := &fakeLLM{sheet: "# Fig care"}
	svc := New(plants, &fakeTaskRepo{}, llm, nil, nil, nil)

	md, err := svc.CarePlanSheet("u1", "p1", "en")
	require.NoError(t, err)
	assert.Equal(t, "# Fig care", md)
	assert.Equal(t, 1, plants.saved)

	// fresh cache short-circuits the model
	md, err = svc.CarePlanSheet("u1", "p1", "en")
	require.NoError(t, err)
	assert.Equal(t, "# Fig care", md)
	assert.Equal(t, 1, llm.sheetCalls)
}

func TestCarePlanSheetRegeneratesWhenStale(t *testing.T) {
	plants := onePlant()
	old := time.Now().Add(-16 * 24 * time.Hour)
	plants.plants["p1"].CarePlanMD = "# Old sheet"
	plants.plants["p1"].CarePlanGeneratedAt = &old

	llm := &fakeLLM{sheet: "# New sheet"}
	svc := New(plants, &fakeTaskRepo{}, llm, nil, nil, nil)

	md, err := svc.CarePlanSheet("u1", "p1", "en")
	require.NoError(t, err)
	assert.Equal(t, "# New sheet", md)
}

func TestCarePlanSheetStaleBeatsNothing(t *testing.T) {
	plants := onePlant()
	old := time.Now().Add(-30 * 24 * time.Hour)
	plants.plants["p1"].CarePlanMD = "# Old sheet"
	plants.plants["p1"].CarePlanGeneratedAt = &old

	llm := &fakeLLM{sheetErr: errors.New("model down")}
	svc := New(plants, &fakeTaskRepo{}, llm, nil, nil, nil)

	md, err := svc.CarePlanSheet("u1", "p1", "en")
	require.NoError(t, err)
	assert.Equal(t, "# Old sheet", md)
}
