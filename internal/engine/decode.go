package engine

import (
	"bytes"
	"encoding/json"
)

// DecodeState parses a persisted state blob, repairing missing or corrupt
// fields with schema defaults field by field. It never rejects a blob
// wholesale: unparseable input yields a fresh default state.
func DecodeState(data []byte) *State {
	base := DefaultState()
	if len(bytes.TrimSpace(data)) == 0 {
		return base
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return base
	}

	s := base

	var user User
	if decodeField(raw["user"], &user) && user.Name != "" {
		s.User = user
	}

	var progress Progress
	if decodeField(raw["progress"], &progress) && progress.Level >= 1 && progress.XP >= 0 {
		s.Progress = progress
	}

	var life Life
	if decodeField(raw["life"], &life) {
		s.Life = life
	} else {
		s.Life = Life{Current: LifeForLevel(s.Progress.Level)}
	}

	var tokens float64
	if decodeField(raw["tokens"], &tokens) && tokens >= 0 {
		s.Tokens = int(tokens)
	}

	s.Daily = decodeDaily(raw["daily"])

	var history History
	if decodeField(raw["history"], &history) && history.Days != nil {
		s.History = history
	}

	s.Goals = decodeGoals(raw["goals"], s.Goals)

	var tasks []Task
	if decodeField(raw["tasks"], &tasks) {
		s.Tasks = tasks
	}

	s.Training = decodeTraining(raw["training"])

	var achievements []Achievement
	if decodeField(raw["achievements"], &achievements) {
		s.Achievements = achievements
	}

	s.Schema = SchemaVersion
	return s
}

// EncodeState serializes a state for persistence.
func EncodeState(s *State) ([]byte, error) {
	return json.Marshal(s)
}

func decodeField(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// decodeDaily tolerates the corruption the original clients produced: action
// values that are not strictly booleans clear both actions and the category
// bonuses they feed, and a missing skipUsed defaults to false.
func decodeDaily(raw json.RawMessage) Daily {
	out := Daily{
		Actions:         map[string]bool{},
		BonusCategories: map[string]bool{},
		GoalsDone:       map[string]bool{},
	}
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return out
	}

	var date DateKey
	decodeField(fields["date"], &date)
	out.Date = date

	actions, actionsValid := decodeStrictBoolMap(fields["actions"])
	var bonus map[string]bool
	if !decodeField(fields["bonusCategories"], &bonus) || bonus == nil {
		bonus = map[string]bool{}
	}
	if actionsValid {
		out.Actions = actions
		out.BonusCategories = bonus
	}

	var goalsDone map[string]bool
	if decodeField(fields["goalsDone"], &goalsDone) && goalsDone != nil {
		out.GoalsDone = goalsDone
	}

	var skipUsed bool
	if decodeField(fields["skipUsed"], &skipUsed) {
		out.SkipUsed = skipUsed
	}

	return out
}

// decodeStrictBoolMap decodes a map whose values must all be JSON booleans.
// valid is false when any value is of another type.
func decodeStrictBoolMap(raw json.RawMessage) (map[string]bool, bool) {
	out := map[string]bool{}
	if len(raw) == 0 {
		return out, true
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return map[string]bool{}, false
	}
	for k, v := range values {
		switch string(bytes.TrimSpace(v)) {
		case "true":
			out[k] = true
		case "false":
			out[k] = false
		default:
			return map[string]bool{}, false
		}
	}
	return out, true
}

func decodeGoals(raw json.RawMessage, base map[string]float64) map[string]float64 {
	var values map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &values) != nil {
		return base
	}
	out := cloneFloatMap(base)
	for k, v := range values {
		var target float64
		if json.Unmarshal(v, &target) == nil {
			out[k] = target
		} else {
			out[k] = 0
		}
	}
	return out
}

// decodeTraining accepts both the current per-weekday map and the legacy flat
// list, which becomes Monday's plan. Negative completion counts clamp to 0.
func decodeTraining(raw json.RawMessage) TrainingWeek {
	var legacy []Exercise
	if decodeField(raw, &legacy) {
		week := TrainingWeek{}
		for _, day := range weekdays {
			week[day] = []Exercise{}
		}
		week["monday"] = sanitizeExercises(legacy)
		return week
	}

	var week TrainingWeek
	if !decodeField(raw, &week) || week == nil {
		return defaultTrainingWeek()
	}
	for _, day := range weekdays {
		week[day] = sanitizeExercises(week[day])
	}
	return week
}

func sanitizeExercises(items []Exercise) []Exercise {
	out := make([]Exercise, 0, len(items))
	for _, item := range items {
		if item.Done < 0 {
			item.Done = 0
		}
		out = append(out, item)
	}
	return out
}
