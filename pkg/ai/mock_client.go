// pkg/ai/mock_client.go

package ai

import (
	"fmt"
	"strings"
	"time"

	"botanica/entities"
)

type mockClient struct{}

// NewMock returns a deterministic client used when no LLM endpoint is
// configured. It keys off the weather digest the way the real model would.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) ProposeAnnualPlan(p *entities.Plant, loc LocationContext, weatherDigest, kbCtx, language string) ([]TaskDraft, error) {
	year := time.Now().Year()
	mk := func(month int, cat, task, reason, prio string) TaskDraft {
		start := time.Date(year, time.Month(month), 5, 0, 0, 0, 0, time.UTC)
		return TaskDraft{
			Task: task, Reason: reason, Category: cat, TaskNature: "structural",
			ScheduledMonth: month,
			WindowStart:    start.Format("2006-01-02"),
			WindowEnd:      start.AddDate(0, 0, 14).Format("2006-01-02"),
			Priority:       prio,
		}
	}
	return []TaskDraft{
		mk(1, "pruning", "Winter structural pruning", "Shape while dormant", "normal"),
		mk(2, "pest_prevention", "Dormant oil spray", "Smother overwintering pests", "normal"),
		mk(3, "fertilizing", "Spring feeding", "Support the growth flush", "normal"),
		mk(3, "repotting", "Check root space", "Repot before active growth", "low"),
		mk(4, "seeding", "Sow companion herbs", "Attract pollinators", "low"),
		mk(5, "pest_prevention", "Inspect for aphids", "Colonies establish in late spring", "normal"),
		mk(6, "fertilizing", "Summer feeding", "Fruit set demands nutrients", "normal"),
		mk(7, "general", "Mulch the root zone", "Hold soil moisture through heat", "normal"),
		mk(8, "harvesting", "Harvest ripe fruit", "Peak ripeness window", "urgent"),
		mk(9, "general", "Collect fallen fruit", "Reduce disease carryover", "low"),
		mk(10, "fertilizing", "Autumn potash", "Harden growth before cold", "normal"),
		mk(11, "general", "Frost protection check", "First frosts arrive", "normal"),
		mk(12, "pruning", "Remove dead wood", "Visible once leaves drop", "low"),
	}, nil
}

func (m *mockClient) ProposeAdaptation(plants []entities.Plant, pending, completed []entities.CareTask, loc LocationContext, weatherDigest, kbCtx, language string) (*AdaptProposal, error) {
	out := &AdaptProposal{NewTasks: []TaskDraft{}, Modifications: []Modification{}}
	now := time.Now()

	for _, p := range plants {
		if strings.Contains(weatherDigest, "FROST RISK") {
			out.NewTasks = append(out.NewTasks, TaskDraft{
				PlantID: p.PlantID, PlantName: p.Name,
				Task: "Protect from frost", Reason: "Forecast shows sub-zero nights",
				Category: "general", TaskNature: "routine",
				ScheduledMonth: int(now.Month()),
				WindowStart:    now.Format("2006-01-02"),
				WindowEnd:      now.AddDate(0, 0, 2).Format("2006-01-02"),
				Priority:       "urgent",
			})
		}
		if !strings.Contains(weatherDigest, "rain") || strings.Contains(weatherDigest, "0.0mm rain") {
			out.NewTasks = append(out.NewTasks, TaskDraft{
				PlantID: p.PlantID, PlantName: p.Name,
				Task: fmt.Sprintf("Water the %s", p.Name), Reason: "Dry spell in the forecast",
				Category: "watering", TaskNature: "routine",
				ScheduledMonth: int(now.Month()),
				WindowStart:    now.Format("2006-01-02"),
				WindowEnd:      now.AddDate(0, 0, 3).Format("2006-01-02"),
				Priority:       "normal",
			})
		}
	}
	return out, nil
}

func (m *mockClient) SearchPlant(name, language string) (*PlantInfo, error) {
	return &PlantInfo{
		Name:        name,
		Description: fmt.Sprintf("A %s (mock description).", name),
		CareNeeds:   "Full sun, moderate watering, well-draining soil.",
	}, nil
}

func (m *mockClient) DetailedCarePlan(p *entities.Plant, language string) (string, error) {
	return fmt.Sprintf("## Care plan for %s (mock)\n\n- Water regularly\n- Prune in winter\n", p.Name), nil
}

func (m *mockClient) Chat(messages []ChatMessage, plants []entities.Plant, language string) (string, error) {
	return "I'm a mock garden assistant. Configure LLM_ENDPOINT for real answers.", nil
}
