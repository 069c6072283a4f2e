// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"botanica/entities"
)

type openAI struct {
	endpoint string
	key      string
	model    string
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model}
}

func (c *openAI) chat(system, user string) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.2,
	}
	b, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, _ := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (c *openAI) ProposeAnnualPlan(p *entities.Plant, loc LocationContext, weatherDigest, kbCtx, language string) ([]TaskDraft, error) {
	content, err := c.chat(
		"You are an expert horticulturist. Reply ONLY with valid JSON.",
		renderAnnualPrompt(p, loc, weatherDigest, kbCtx, language),
	)
	if err != nil {
		return nil, err
	}

	var drafts []TaskDraft
	if err := json.Unmarshal([]byte(stripFence(content)), &drafts); err != nil {
		// wrapper object fallback
		var payload struct {
			Tasks []TaskDraft `json:"tasks"`
		}
		if err2 := json.Unmarshal([]byte(stripFence(content)), &payload); err2 != nil {
			log.Printf("[ai] annual plan unparsable, skipping run: %v", err)
			return nil, nil
		}
		drafts = payload.Tasks
	}
	return drafts, nil
}

func (c *openAI) ProposeAdaptation(plants []entities.Plant, pending, completed []entities.CareTask, loc LocationContext, weatherDigest, kbCtx, language string) (*AdaptProposal, error) {
	content, err := c.chat(
		"You are an expert horticulturist performing a biweekly adaptation of care tasks. Reply ONLY with valid JSON.",
		renderAdaptationPrompt(plants, pending, completed, loc, weatherDigest, kbCtx, language),
	)
	if err != nil {
		return nil, err
	}

	var prop AdaptProposal
	if err := json.Unmarshal([]byte(stripFence(content)), &prop); err != nil {
		log.Printf("[ai] adaptation unparsable, treating as empty: %v", err)
		return &AdaptProposal{}, nil
	}
	return &prop, nil
}

func (c *openAI) SearchPlant(name, language string) (*PlantInfo, error) {
	content, err := c.chat(
		"You are an expert botanist. Reply ONLY with valid JSON.",
		fmt.Sprintf(`Provide a brief description and basic care needs (sunlight, water, soil) for a %s.
Respond in %s as a JSON object: {"name":"...","description":"...","careNeeds":"..."}`, name, language),
	)
	if err != nil {
		return nil, err
	}
	var info PlantInfo
	if err := json.Unmarshal([]byte(stripFence(content)), &info); err != nil {
		return nil, fmt.Errorf("parse plant info: %w", err)
	}
	return &info, nil
}

func (c *openAI) DetailedCarePlan(p *entities.Plant, language string) (string, error) {
	content, err := c.chat(
		"You are an expert horticulturist who writes concise, actionable care sheets in Markdown.",
		fmt.Sprintf(`Create a detailed care plan for a %s.
Description: %s
Care needs: %s

Cover: watering schedule and technique, sunlight, soil and fertilization,
temperature and humidity, common pests and diseases, pruning, repotting.
Format as Markdown with a heading per section. Respond in %s.`,
			p.Name, p.Description, p.CareNeeds, language),
	)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", fmt.Errorf("empty care plan")
	}
	return content, nil
}

func (c *openAI) Chat(messages []ChatMessage, plants []entities.Plant, language string) (string, error) {
	plantCtx := "The user doesn't have any plants in their garden yet."
	if len(plants) > 0 {
		names := make([]string, 0, len(plants))
		for _, p := range plants {
			names = append(names, p.Name)
		}
		plantCtx = "The user has the following plants in their garden: " + strings.Join(names, ", ") + "."
	}

	var history strings.Builder
	for i, m := range messages {
		if i == len(messages)-1 {
			break
		}
		who := "Assistant"
		if m.Sender == "user" {
			who = "User"
		}
		fmt.Fprintf(&history, "%s: %s\n", who, m.Text)
	}
	current := ""
	if len(messages) > 0 {
		current = messages[len(messages)-1].Text
	}

	return c.chat(
		"You are Anica, a friendly and expert AI garden assistant. Focus on plant care, identification, pests, pruning, and gardening tips.",
		fmt.Sprintf(`%s

Conversation history:
%s
Current user message: %s

Respond in the language used by the user; if uncertain, default to %s.`,
			plantCtx, history.String(), current, language),
	)
}

func renderAnnualPrompt(p *entities.Plant, loc LocationContext, weatherDigest, kbCtx, language string) string {
	year := time.Now().Year()

	locationCtx := loc.Fallback
	if loc.Latitude != nil && loc.Longitude != nil {
		locationCtx = fmt.Sprintf("Location: Latitude %.4f, Longitude %.4f. Determine the climate zone from these coordinates.", *loc.Latitude, *loc.Longitude)
	} else if p.Latitude != nil && p.Longitude != nil {
		locationCtx = fmt.Sprintf("Plant location: Latitude %.4f, Longitude %.4f. Determine the climate zone from these coordinates.", *p.Latitude, *p.Longitude)
	}

	notes := ""
	if p.Notes != "" {
		notes = "User notes: " + p.Notes + "\n"
	}
	kb := ""
	if kbCtx != "" {
		kb = "\nREFERENCE NOTES:\n" + kbCtx + "\n"
	}

	return fmt.Sprintf(`IMPORTANT: ALL text in the "task" and "reason" fields MUST be written in %s.

Generate a STRUCTURAL annual care plan for the year %d for the following plant.

Plant: %s
Description: %s
Care needs: %s
%s%s
%s

Generate 15-30 STRUCTURAL tasks distributed across all 12 months. These are
time-sensitive tasks with precise optimal windows.

Categories (keep these values in English, they are identifiers):
pruning, grafting, seeding, fertilizing, harvesting, pest_prevention, repotting, general.

DO NOT generate routine watering tasks. Those are generated separately from
real-time weather.

Each task object: "task", "reason", "category", "taskNature" (always "structural"),
"scheduledMonth" (integer 1-12), "windowStart" ("YYYY-MM-DD"), "windowEnd"
("YYYY-MM-DD"), "priority" ("urgent"|"normal"|"low").

Respond ONLY with a JSON array of task objects.`,
		language, year, p.Name, p.Description, p.CareNeeds, notes, locationCtx, weatherDigest+kb)
}

func renderAdaptationPrompt(plants []entities.Plant, pending, completed []entities.CareTask, loc LocationContext, weatherDigest, kbCtx, language string) string {
	var plantList strings.Builder
	for _, p := range plants {
		fmt.Fprintf(&plantList, "- %s (ID: %s): %s", p.Name, p.PlantID, p.CareNeeds)
		if p.Notes != "" {
			fmt.Fprintf(&plantList, " | Notes: %s", p.Notes)
		}
		plantList.WriteString("\n")
	}

	var pendingList strings.Builder
	for _, t := range pending {
		ws, we := "none", "none"
		if t.WindowStart != nil {
			ws = t.WindowStart.Format("2006-01-02")
		}
		if t.WindowEnd != nil {
			we = t.WindowEnd.Format("2006-01-02")
		}
		fmt.Fprintf(&pendingList, "- [%s] %s: %q (%s, %s) window: %s to %s, priority: %s\n",
			t.TaskID, t.PlantName, t.Task, t.Category, t.TaskNature, ws, we, t.Priority)
	}

	var completedList strings.Builder
	for i, t := range completed {
		if i >= 30 {
			break
		}
		when := "recently"
		if t.CompletedAt != nil {
			when = t.CompletedAt.Format("2006-01-02")
		}
		fmt.Fprintf(&completedList, "- %s: %q completed %s", t.PlantName, t.Task, when)
		if t.UserNotes != "" {
			fmt.Fprintf(&completedList, " (notes: %s)", t.UserNotes)
		}
		completedList.WriteString("\n")
	}

	locationCtx := loc.Fallback
	if loc.Latitude != nil && loc.Longitude != nil {
		locationCtx = fmt.Sprintf("Location: Lat %.4f, Lon %.4f.", *loc.Latitude, *loc.Longitude)
	}

	orNone := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "None"
		}
		return s
	}
	kb := ""
	if kbCtx != "" {
		kb = "\nREFERENCE NOTES:\n" + kbCtx + "\n"
	}

	return fmt.Sprintf(`IMPORTANT: ALL text in "task" and "reason" fields MUST be written in %s.

Current date: %s
%s
%s
%s
Plants:
%s
Pending structural tasks (next 30 days):
%s
Recently completed tasks:
%s
Your job:
1. ROUTINE TASKS: generate watering/checking tasks ONLY if weather conditions require it.
2. STRUCTURAL ADJUSTMENTS: if the forecast shows frost, extreme heat, or prolonged rain, suggest postponing or advancing windows.
3. FROST PROTECTION: if forecast shows temperatures below 0°C, generate urgent protection tasks.
4. NEVER re-propose tasks that are already completed.

Respond with a JSON object:
{"newTasks":[{"plantId","plantName","task","reason","category","taskNature","scheduledMonth","windowStart","windowEnd","priority"}, ...],
 "modifications":[{"taskId","newWindowStart","newWindowEnd","newPriority"}, ...]}`,
		language, time.Now().Format("2006-01-02"), locationCtx, weatherDigest, kb,
		orNone(plantList.String()), orNone(pendingList.String()), orNone(completedList.String()))
}
