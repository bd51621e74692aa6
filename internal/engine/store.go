package engine

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"levelup/internal/clock"
)

// categoryBonusXP is the one-time bonus for closing out a whole bonus-action
// category in one day.
const categoryBonusXP = 10

// unlockCategoryByGoal ties daily goals to the bonus category they unlock.
// Completing the goal re-locks the category for the day: its actions and any
// earned category bonus are cleared so the unlocked actions start fresh.
var unlockCategoryByGoal = map[string]string{
	"exerciseMinutes": CategoryTraining,
	"steps":           CategoryMovement,
	"studyMinutes":    CategoryStudy,
	"readMinutes":     CategoryReading,
}

// Persister is the store's save contract: fire-and-forget, no error surface.
// Callers may deduplicate or debounce behind it.
type Persister interface {
	Save(userID string, s *State)
}

// Listener receives the full new state snapshot, synchronously, after every
// successful mutation. Snapshots must not be mutated.
type Listener func(*State)

// Store owns the canonical state and is the only writer. Dispatches are
// synchronous and single-threaded by construction; there is no queue and no
// locking.
type Store struct {
	userID  string
	clock   clock.Clock
	persist Persister

	state *State

	nextListener int
	listeners    map[int]Listener
	order        []int
}

// NewStore wraps a loaded state (nil means a fresh default), applying the
// penalty rollover, daily normalization, a reward-free achievement sweep and
// the life clamp once, then persists the result.
func NewStore(userID string, initial *State, clk clock.Clock, persist Persister) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	if initial == nil {
		initial = DefaultState()
	}

	s := &Store{
		userID:    userID,
		clock:     clk,
		persist:   persist,
		listeners: map[int]Listener{},
	}

	now := clk.Now()
	st := initial.Clone()
	applyDailyRollover(st, now)
	applyPenaltyCatchUp(st, now)
	st.Daily = EnsureDaily(st.Daily, DateKeyFromTime(now))
	st.Achievements = GrantAchievements(st, now)
	st.clampLife()

	s.state = st
	if s.persist != nil {
		s.persist.Save(userID, st)
	}
	return s
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *Store) State() *State {
	return s.state
}

// Now returns the store's notion of the current time. Render paths that walk
// dates (streaks, achievement progress) must use this instead of the wall
// clock so an override is observed everywhere.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Subscribe registers a listener and returns its unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	return func() {
		delete(s.listeners, id)
	}
}

// setState is the single success path: clamp life, swap the snapshot,
// persist, notify.
func (s *Store) setState(next *State) {
	next.clampLife()
	s.state = next
	if s.persist != nil {
		s.persist.Save(s.userID, next)
	}
	for _, id := range s.order {
		if fn, ok := s.listeners[id]; ok {
			fn(next)
		}
	}
}

// normalized re-derives a dispatchable state: the clock may have advanced
// since the last mutation, so the rollover passes and daily normalization
// run again before every action.
func (s *Store) normalized(now time.Time) *State {
	next := s.state.Clone()
	applyDailyRollover(next, now)
	applyPenaltyCatchUp(next, now)
	next.Daily = EnsureDaily(next.Daily, DateKeyFromTime(now))
	return next
}

// applyRewards runs the shared reward pipeline tail: achievement sweep on the
// new state, achievement XP with its own level-ups and tokens, and a full
// heal when any level-up happened (direct or achievement-triggered).
func applyRewards(next *State, now time.Time, directUps []int) (levelUps []int, earned []EarnedReward, achievementXP int) {
	achievements, earned, xp := GrantAchievementRewards(next, now)
	next.Achievements = achievements

	var achUps []int
	if xp > 0 {
		progress, ups := AddXP(next.Progress, xp)
		next.Progress = progress
		next.Tokens += len(ups)
		achUps = ups
	}

	if len(directUps)+len(achUps) > 0 {
		next.Life.Current = LifeForLevel(next.Progress.Level)
	}

	levelUps = append(append([]int(nil), directUps...), achUps...)
	return levelUps, earned, xp
}

// Dispatch routes an action through the reducer. It returns nil for silent
// no-ops and void actions; declined actions return a Result with Err set and
// leave the committed state untouched.
func (s *Store) Dispatch(action Action) *Result {
	now := s.clock.Now()
	today := DateKeyFromTime(now)
	next := s.normalized(now)

	switch a := action.(type) {
	case Refresh:
		s.setState(next)
		return nil

	case Revive:
		next.Progress = Progress{Level: 1, XP: 0}
		next.Tokens = 0
		next.Achievements = []Achievement{}
		next.Daily = Daily{
			Date:            today,
			Actions:         map[string]bool{},
			BonusCategories: map[string]bool{},
			GoalsDone:       map[string]bool{},
		}
		next.Life.Current = LifeForLevel(1)
		s.setState(next)
		return nil

	case DevLevelUp:
		amount := XPNeeded(next.Progress.Level)
		progress, directUps := AddXP(next.Progress, amount)
		next.Progress = progress
		next.Tokens += len(directUps)
		levelUps, earned, achXP := applyRewards(next, now, directUps)
		s.setState(next)
		return &Result{LevelUps: levelUps, AchievementsEarned: earned, AchievementXP: achXP}

	case GoalsSet:
		if a.Key == "" {
			return nil
		}
		value := a.Value
		if math.IsNaN(value) || math.IsInf(value, 0) {
			value = 0
		}
		changed := next.Goals[a.Key] != value
		next.Goals[a.Key] = value
		if changed && next.Daily.GoalsDone[a.Key] {
			next.Daily.GoalsDone[a.Key] = false
		}
		next.rewriteToday(today)
		s.setState(next)
		return nil

	case GoalsSetAll:
		previous := cloneFloatMap(next.Goals)
		for key, value := range a.Goals {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				value = 0
			}
			next.Goals[key] = value
		}
		for key := range next.Goals {
			if next.Daily.GoalsDone[key] && previous[key] != next.Goals[key] {
				next.Daily.GoalsDone[key] = false
			}
		}
		next.rewriteToday(today)
		s.setState(next)
		return nil

	case GoalComplete:
		if next.Defeated() {
			return &Result{Err: ErrDead}
		}
		if a.Key == "" {
			return nil
		}
		if next.Daily.GoalsDone[a.Key] {
			return &Result{Err: ErrAlreadyDone}
		}
		if next.Goals[a.Key] <= 0 {
			return &Result{Err: ErrNotSet}
		}

		next.Daily.GoalsDone[a.Key] = true
		if category, ok := unlockCategoryByGoal[a.Key]; ok {
			for _, ca := range ActionsForCategory(category) {
				delete(next.Daily.Actions, ca.Key)
			}
			delete(next.Daily.BonusCategories, category)
		}

		gained := int(math.Round(BaseGoalXP * XPMultiplier(next.Progress.Level)))
		progress, directUps := AddXP(next.Progress, gained)
		next.Progress = progress
		next.Tokens += len(directUps)
		next.rewriteToday(today)

		levelUps, earned, achXP := applyRewards(next, now, directUps)
		s.setState(next)
		return &Result{XPGained: gained, LevelUps: levelUps, AchievementsEarned: earned, AchievementXP: achXP}

	case DoAction:
		if next.Defeated() {
			return &Result{Err: ErrDead}
		}
		meta := ActionByKey(a.Key)
		if meta == nil {
			return nil
		}
		if HasDoneAction(next.Daily, a.Key) {
			return &Result{Err: ErrAlreadyDone}
		}

		next.Daily = MarkActionDone(next.Daily, a.Key)
		bonus := 0
		if !next.Daily.BonusCategories[meta.Category] {
			all := true
			for _, ca := range ActionsForCategory(meta.Category) {
				if !next.Daily.Actions[ca.Key] {
					all = false
					break
				}
			}
			if all {
				bonus = categoryBonusXP
				next.Daily.BonusCategories[meta.Category] = true
			}
		}

		gained := int(math.Round(float64(meta.XP+bonus) * XPMultiplier(next.Progress.Level)))
		progress, directUps := AddXP(next.Progress, gained)
		next.Progress = progress
		next.Tokens += len(directUps)
		next.rewriteToday(today)

		levelUps, earned, achXP := applyRewards(next, now, directUps)
		s.setState(next)
		return &Result{XPGained: gained, LevelUps: levelUps, AchievementsEarned: earned, AchievementXP: achXP}

	case Skip:
		if next.Defeated() {
			return &Result{Err: ErrDead}
		}
		if next.Tokens <= 0 {
			return &Result{Err: ErrNoTokens}
		}
		if next.Daily.SkipUsed {
			return &Result{Err: ErrAlreadyUsed}
		}

		next.Tokens--
		next.Daily.SkipUsed = true
		next.rewriteToday(today)

		// The skip itself grants no XP, but it can complete a streak and
		// trigger achievements, whose XP may level up on its own.
		levelUps, earned, achXP := applyRewards(next, now, nil)
		s.setState(next)
		return &Result{Skipped: true, LevelUps: levelUps, AchievementsEarned: earned, AchievementXP: achXP}

	case SetName:
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil
		}
		next.User.Name = name
		s.setState(next)
		return nil

	case TaskAdd:
		text := strings.TrimSpace(a.Text)
		if text == "" {
			return nil
		}
		task := Task{ID: uuid.NewString(), Text: text, CreatedAt: now}
		next.Tasks = append([]Task{task}, next.Tasks...)
		s.setState(next)
		return nil

	case TaskDone:
		if a.ID == "" {
			return nil
		}
		for i := range next.Tasks {
			if next.Tasks[i].ID == a.ID {
				next.Tasks[i].Done = true
				next.Tasks[i].DoneAt = now
			}
		}
		s.setState(next)
		return nil

	case TrainingAdd:
		name := strings.TrimSpace(a.Name)
		reps := strings.TrimSpace(a.Reps)
		if name == "" || reps == "" {
			return nil
		}
		day := a.Day
		if day == "" {
			day = "monday"
		}
		done := a.Done
		if done < 0 {
			done = 0
		}
		item := Exercise{ID: uuid.NewString(), Name: name, Reps: reps, Done: done}
		next.Training[day] = append([]Exercise{item}, next.Training[day]...)
		s.setState(next)
		return nil

	case TrainingUpdate:
		name := strings.TrimSpace(a.Name)
		reps := strings.TrimSpace(a.Reps)
		if a.ID == "" || name == "" || reps == "" || a.Day == "" {
			return nil
		}
		done := a.Done
		if done < 0 {
			done = 0
		}
		for i, item := range next.Training[a.Day] {
			if item.ID == a.ID {
				next.Training[a.Day][i].Name = name
				next.Training[a.Day][i].Reps = reps
				next.Training[a.Day][i].Done = done
			}
		}
		s.setState(next)
		return nil

	case TrainingRemove:
		if a.ID == "" || a.Day == "" {
			return nil
		}
		items := next.Training[a.Day]
		kept := items[:0]
		for _, item := range items {
			if item.ID != a.ID {
				kept = append(kept, item)
			}
		}
		next.Training[a.Day] = kept
		s.setState(next)
		return nil

	case TrainingSetDone:
		if a.ID == "" || a.Day == "" {
			return nil
		}
		done := a.Done
		if done < 0 {
			done = 0
		}
		for i, item := range next.Training[a.Day] {
			if item.ID == a.ID {
				next.Training[a.Day][i].Done = done
			}
		}
		s.setState(next)
		return nil

	case TrainingReorder:
		if a.Day == "" || a.FromID == "" {
			return nil
		}
		items := next.Training[a.Day]
		if len(items) < 2 {
			return nil
		}
		from := indexOfExercise(items, a.FromID)
		if from == -1 {
			return nil
		}
		to := -1
		if a.ToID != "" {
			to = indexOfExercise(items, a.ToID)
		}

		reordered := append([]Exercise(nil), items...)
		moved := reordered[from]
		reordered = append(reordered[:from], reordered[from+1:]...)
		if to == -1 {
			reordered = append(reordered, moved)
		} else {
			insert := to
			if from < to {
				insert--
			}
			if a.After {
				insert++
			}
			if insert < 0 {
				insert = 0
			}
			if insert > len(reordered) {
				insert = len(reordered)
			}
			reordered = append(reordered[:insert], append([]Exercise{moved}, reordered[insert:]...)...)
		}

		same := true
		for i := range reordered {
			if reordered[i].ID != items[i].ID {
				same = false
				break
			}
		}
		if same {
			return nil
		}
		next.Training[a.Day] = reordered
		s.setState(next)
		return nil
	}

	return nil
}

func indexOfExercise(items []Exercise, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
