// pkg/ai/client.go

package ai

import (
	"botanica/entities"
)

// TaskDraft is a task proposal as returned by the model, before validation.
// Window bounds arrive as YYYY-MM-DD strings and are parsed by the caller.
type TaskDraft struct {
	PlantID        string `json:"plantId,omitempty"`
	PlantName      string `json:"plantName,omitempty"`
	Task           string `json:"task"`
	Reason         string `json:"reason"`
	Category       string `json:"category"`
	TaskNature     string `json:"taskNature"`
	ScheduledMonth int    `json:"scheduledMonth"`
	WindowStart    string `json:"windowStart"`
	WindowEnd      string `json:"windowEnd"`
	Priority       string `json:"priority"`
}

// Modification adjusts an existing task's window or priority. It never
// touches status and never creates rows.
type Modification struct {
	TaskID         string `json:"taskId"`
	NewWindowStart string `json:"newWindowStart,omitempty"`
	NewWindowEnd   string `json:"newWindowEnd,omitempty"`
	NewPriority    string `json:"newPriority,omitempty"`
}

type AdaptProposal struct {
	NewTasks      []TaskDraft    `json:"newTasks"`
	Modifications []Modification `json:"modifications"`
}

// LocationContext carries coordinates when known, otherwise a climate
// fallback sentence assembled by the caller.
type LocationContext struct {
	Latitude  *float64
	Longitude *float64
	Fallback  string
}

type PlantInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CareNeeds   string `json:"careNeeds"`
}

type ChatMessage struct {
	Sender string `json:"sender"` // user|assistant
	Text   string `json:"text"`
}

type Client interface {
	// ProposeAnnualPlan asks for 15-30 structural tasks across the year for
	// one plant. Routine watering is excluded; the adaptation path owns it.
	ProposeAnnualPlan(p *entities.Plant, loc LocationContext, weatherDigest, kbCtx, language string) ([]TaskDraft, error)

	// ProposeAdaptation asks for routine tasks and window modifications given
	// the whole garden, the pending set and the recent completed history.
	ProposeAdaptation(plants []entities.Plant, pending, completed []entities.CareTask, loc LocationContext, weatherDigest, kbCtx, language string) (*AdaptProposal, error)

	SearchPlant(name, language string) (*PlantInfo, error)
	DetailedCarePlan(p *entities.Plant, language string) (string, error)
	Chat(messages []ChatMessage, plants []entities.Plant, language string) (string, error)
}
