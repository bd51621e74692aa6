package engine

// ErrorKind is the closed set of caller-visible dispatch declines. They are
// returned, never panicked: every dispatch produces a valid next state or a
// decline.
type ErrorKind string

const (
	ErrDead        ErrorKind = "dead"
	ErrAlreadyDone ErrorKind = "already_done"
	ErrAlreadyUsed ErrorKind = "already_used"
	ErrNotSet      ErrorKind = "not_set"
	ErrNoTokens    ErrorKind = "no_tokens"
)

// Action is the closed set of dispatchable intents. Each variant carries its
// own typed payload and the store switches over them exhaustively.
type Action interface {
	isAction()
}

// Refresh re-normalizes and persists without any other mutation. The UI uses
// it as its scheduled day-boundary tick.
type Refresh struct{}

// Revive resets progress, tokens, achievements and today's working set, and
// restores life to the level-1 maximum. History, goals, tasks and training
// survive.
type Revive struct{}

// DevLevelUp force-feeds exactly the XP needed for the next level. Admin and
// test tooling only.
type DevLevelUp struct{}

// GoalsSet overwrites a single goal target. A numeric change reopens the goal
// for today.
type GoalsSet struct {
	Key   string
	Value float64
}

// GoalsSetAll overwrites several goal targets at once; targets whose value
// actually changes lose their done flag for today.
type GoalsSetAll struct {
	Goals map[string]float64
}

// GoalComplete marks one of today's goals done and pays goal XP.
type GoalComplete struct {
	Key string
}

// DoAction marks a catalog bonus action done and pays its XP, plus the
// one-time category bonus when it closes out its category for the day.
type DoAction struct {
	Key string
}

// Skip spends a token to complete today's mission without goals.
type Skip struct{}

// SetName renames the user. Blank input is ignored.
type SetName struct {
	Name string
}

// TaskAdd prepends a free-form task. Blank input is ignored.
type TaskAdd struct {
	Text string
}

// TaskDone marks a task done.
type TaskDone struct {
	ID string
}

// Training actions edit the per-weekday exercise list. They never touch the
// gamification fields, defeated or not.
type TrainingAdd struct {
	Day  string
	Name string
	Reps string
	Done int
}

type TrainingUpdate struct {
	Day  string
	ID   string
	Name string
	Reps string
	Done int
}

type TrainingRemove struct {
	Day string
	ID  string
}

type TrainingSetDone struct {
	Day  string
	ID   string
	Done int
}

type TrainingReorder struct {
	Day    string
	FromID string
	ToID   string
	After  bool
}

func (Refresh) isAction()         {}
func (Revive) isAction()          {}
func (DevLevelUp) isAction()      {}
func (GoalsSet) isAction()        {}
func (GoalsSetAll) isAction()     {}
func (GoalComplete) isAction()    {}
func (DoAction) isAction()        {}
func (Skip) isAction()            {}
func (SetName) isAction()         {}
func (TaskAdd) isAction()         {}
func (TaskDone) isAction()        {}
func (TrainingAdd) isAction()     {}
func (TrainingUpdate) isAction()  {}
func (TrainingRemove) isAction()  {}
func (TrainingSetDone) isAction() {}
func (TrainingReorder) isAction() {}

// Result is the dispatch outcome for actions that report one. Err is set on
// declines; the reward fields cover the unified pipeline.
type Result struct {
	Err                ErrorKind
	XPGained           int
	LevelUps           []int
	Skipped            bool
	AchievementsEarned []EarnedReward
	AchievementXP      int
}

// Failed reports whether the dispatch was declined.
func (r *Result) Failed() bool {
	return r != nil && r.Err != ""
}
