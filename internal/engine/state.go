package engine

import "time"

// SchemaVersion tags the persisted state shape. Migration is forward-only:
// unknown or missing fields fall back to defaults, never to an error.
const SchemaVersion = 1

type User struct {
	Name string `json:"name"`
}

type Progress struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
}

type Life struct {
	Current         int     `json:"current"`
	LastPenaltyDate DateKey `json:"lastPenaltyDate"`
	LastDefeatDate  DateKey `json:"lastDefeatDate"`
}

// Daily is today's working set. Its Date always equals the current local date
// after normalization.
type Daily struct {
	Date            DateKey         `json:"date"`
	Actions         map[string]bool `json:"actions"`
	BonusCategories map[string]bool `json:"bonusCategories"`
	GoalsDone       map[string]bool `json:"goalsDone"`
	SkipUsed        bool            `json:"skipUsed"`
}

// DaySnapshot is the archival record of one date. Once a date has rolled
// over, its snapshot is never rewritten.
type DaySnapshot struct {
	Goals     map[string]float64 `json:"goals"`
	GoalsDone map[string]bool    `json:"goalsDone"`
	Actions   map[string]bool    `json:"actions"`
	SkipUsed  bool               `json:"skipUsed"`
}

type History struct {
	Days map[DateKey]DaySnapshot `json:"days"`
}

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	DoneAt    time.Time `json:"doneAt,omitzero"`
}

type Exercise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Reps string `json:"reps"`
	Done int    `json:"done"`
}

// TrainingWeek maps weekday names (monday..sunday) to ordered exercise lists.
// Training is independent of the gamification fields; rollover and rewards
// never touch it.
type TrainingWeek map[string][]Exercise

type Achievement struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	EarnedAt time.Time `json:"earnedAt"`
}

// State is the whole per-user state. It is treated as an immutable value:
// every dispatch clones it, mutates the clone and swaps it in.
type State struct {
	Schema       int                `json:"schema"`
	User         User               `json:"user"`
	Progress     Progress           `json:"progress"`
	Life         Life               `json:"life"`
	Tokens       int                `json:"tokens"`
	Daily        Daily              `json:"daily"`
	History      History            `json:"history"`
	Goals        map[string]float64 `json:"goals"`
	Tasks        []Task             `json:"tasks"`
	Training     TrainingWeek       `json:"training"`
	Achievements []Achievement      `json:"achievements"`
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func defaultTraining() []Exercise {
	return []Exercise{
		{ID: "pushups", Name: "Push-ups", Reps: "3x12"},
		{ID: "squats", Name: "Squats", Reps: "4x15"},
		{ID: "plank", Name: "Plank", Reps: "3x30s"},
		{ID: "situps", Name: "Sit-ups", Reps: "3x20"},
	}
}

func defaultTrainingWeek() TrainingWeek {
	week := TrainingWeek{}
	for _, day := range weekdays {
		week[day] = []Exercise{}
	}
	week["monday"] = defaultTraining()
	return week
}

// DefaultState returns a fresh state for a new user. The daily date is left
// empty; EnsureDaily stamps it on store creation.
func DefaultState() *State {
	return &State{
		Schema:   SchemaVersion,
		User:     User{Name: "Guest"},
		Progress: Progress{Level: 1, XP: 0},
		Life:     Life{Current: LifeForLevel(1)},
		Tokens:   0,
		Daily: Daily{
			Actions:         map[string]bool{},
			BonusCategories: map[string]bool{},
			GoalsDone:       map[string]bool{},
		},
		History: History{Days: map[DateKey]DaySnapshot{}},
		Goals: map[string]float64{
			"waterLiters":     0,
			"calories":        0,
			"exerciseMinutes": 0,
			"readMinutes":     0,
			"studyMinutes":    0,
			"steps":           0,
		},
		Tasks:        []Task{},
		Training:     defaultTrainingWeek(),
		Achievements: []Achievement{},
	}
}

// Clone returns a deep copy. Handlers mutate clones only; the state handed to
// subscribers is never written again.
func (s *State) Clone() *State {
	out := *s
	out.Daily = cloneDaily(s.Daily)
	out.History = History{Days: make(map[DateKey]DaySnapshot, len(s.History.Days))}
	for k, day := range s.History.Days {
		out.History.Days[k] = cloneSnapshot(day)
	}
	out.Goals = cloneFloatMap(s.Goals)
	out.Tasks = append([]Task(nil), s.Tasks...)
	out.Training = make(TrainingWeek, len(s.Training))
	for day, items := range s.Training {
		out.Training[day] = append([]Exercise(nil), items...)
	}
	out.Achievements = append([]Achievement(nil), s.Achievements...)
	return &out
}

func cloneDaily(d Daily) Daily {
	return Daily{
		Date:            d.Date,
		Actions:         cloneBoolMap(d.Actions),
		BonusCategories: cloneBoolMap(d.BonusCategories),
		GoalsDone:       cloneBoolMap(d.GoalsDone),
		SkipUsed:        d.SkipUsed,
	}
}

func cloneSnapshot(day DaySnapshot) DaySnapshot {
	return DaySnapshot{
		Goals:     cloneFloatMap(day.Goals),
		GoalsDone: cloneBoolMap(day.GoalsDone),
		Actions:   cloneBoolMap(day.Actions),
		SkipUsed:  day.SkipUsed,
	}
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clampLife enforces 0 <= current <= LifeForLevel(level). Current life 0 is
// the terminal defeated state and stays at 0.
func (s *State) clampLife() {
	level := s.Progress.Level
	if level < 1 {
		level = 1
	}
	max := LifeForLevel(level)
	if s.Life.Current <= 0 {
		s.Life.Current = 0
		return
	}
	if s.Life.Current > max {
		s.Life.Current = max
	}
}

// Defeated reports whether the state is in the terminal zero-life state that
// blocks goal, action and skip dispatches until a revive.
func (s *State) Defeated() bool {
	return s.Life.Current <= 0
}

// hasActiveGoals reports whether any goal has a positive target.
func hasActiveGoals(goals map[string]float64) bool {
	for _, v := range goals {
		if v > 0 {
			return true
		}
	}
	return false
}

// liveSnapshot captures the current goals and daily working set as a
// DaySnapshot value.
func (s *State) liveSnapshot() DaySnapshot {
	return DaySnapshot{
		Goals:     cloneFloatMap(s.Goals),
		GoalsDone: cloneBoolMap(s.Daily.GoalsDone),
		Actions:   cloneBoolMap(s.Daily.Actions),
		SkipUsed:  s.Daily.SkipUsed,
	}
}

// archiveDay records a snapshot for a date unless one already exists.
// Same-day updates go through rewriteToday instead.
func (s *State) archiveDay(key DateKey, day DaySnapshot) {
	if key == "" {
		return
	}
	if s.History.Days == nil {
		s.History.Days = map[DateKey]DaySnapshot{}
	}
	if _, ok := s.History.Days[key]; ok {
		return
	}
	s.History.Days[key] = day
}

// rewriteToday overwrites today's history snapshot with the live working set.
// Today is the only date whose snapshot may be rewritten.
func (s *State) rewriteToday(today DateKey) {
	if today == "" {
		return
	}
	if s.History.Days == nil {
		s.History.Days = map[DateKey]DaySnapshot{}
	}
	s.History.Days[today] = s.liveSnapshot()
}
