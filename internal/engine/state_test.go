package engine

import "testing"

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.Daily = EnsureDaily(Daily{}, DateKey("2026-03-10"))
	s.History.Days[DateKey("2026-03-09")] = DaySnapshot{Goals: map[string]float64{"steps": 8000}}

	c := s.Clone()
	c.Goals["steps"] = 9999
	c.Daily.GoalsDone["steps"] = true
	c.History.Days[DateKey("2026-03-09")].Goals["steps"] = 1
	c.Training["monday"] = append(c.Training["monday"], Exercise{ID: "extra"})
	c.Tasks = append(c.Tasks, Task{ID: "t1"})
	c.Achievements = append(c.Achievements, Achievement{ID: "level_2"})

	if s.Goals["steps"] != 0 {
		t.Fatalf("goals shared between clone and original")
	}
	if s.Daily.GoalsDone["steps"] {
		t.Fatalf("daily shared between clone and original")
	}
	if s.History.Days[DateKey("2026-03-09")].Goals["steps"] != 8000 {
		t.Fatalf("history shared between clone and original")
	}
	if len(s.Training["monday"]) == len(c.Training["monday"]) {
		t.Fatalf("training shared between clone and original")
	}
	if len(s.Tasks) != 0 || len(s.Achievements) != 0 {
		t.Fatalf("slices shared between clone and original")
	}
}

func TestClampLife(t *testing.T) {
	s := DefaultState()
	s.Life.Current = 500
	s.clampLife()
	if s.Life.Current != LifeForLevel(1) {
		t.Fatalf("life=%d, want cap %d", s.Life.Current, LifeForLevel(1))
	}

	s.Life.Current = -10
	s.clampLife()
	if s.Life.Current != 0 {
		t.Fatalf("life=%d, want floor 0", s.Life.Current)
	}
	if !s.Defeated() {
		t.Fatalf("zero life should read as defeated")
	}

	// Zero is terminal: clamping again never resurrects.
	s.clampLife()
	if s.Life.Current != 0 {
		t.Fatalf("life=%d, zero must stay zero", s.Life.Current)
	}
}

func TestDefaultStateShape(t *testing.T) {
	s := DefaultState()
	if s.Progress.Level != 1 || s.Life.Current != 100 || s.Tokens != 0 {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if len(s.Goals) != 6 {
		t.Fatalf("goals=%d, want 6 default keys", len(s.Goals))
	}
	for key, v := range s.Goals {
		if v != 0 {
			t.Fatalf("goal %s should start inactive, got %g", key, v)
		}
	}
	if len(s.Training["monday"]) == 0 {
		t.Fatalf("monday should carry the starter plan")
	}
	if s.Daily.Date != "" {
		t.Fatalf("daily date should start empty, got %s", s.Daily.Date)
	}
}
