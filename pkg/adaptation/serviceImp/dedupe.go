package serviceImp

import (
	"strings"

	"botanica/entities"
	"botanica/pkg/ai"
)

// FilterDuplicates drops proposed tasks whose description already exists for
// the same plant, either completed or still pending. The model is shown the
// completed history precisely to avoid this, but the engine is the last line
// of defense: duplicate suppression is an invariant, not a prompt hint.
func FilterDuplicates(drafts []ai.TaskDraft, pending, completed []entities.CareTask) []ai.TaskDraft {
	seen := map[string]struct{}{}
	for _, t := range pending {
		seen[dedupeKey(t.PlantID, t.Task)] = struct{}{}
	}
	for _, t := range completed {
		seen[dedupeKey(t.PlantID, t.Task)] = struct{}{}
	}

	out := make([]ai.TaskDraft, 0, len(drafts))
	for _, d := range drafts {
		key := dedupeKey(d.PlantID, d.Task)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{} // also dedupe within the proposal itself
		out = append(out, d)
	}
	return out
}

func dedupeKey(plantID, task string) string {
	return plantID + "\x00" + strings.ToLower(strings.Join(strings.Fields(task), " "))
}
