package engine

// EnsureDaily returns a daily record that is safe to dispatch against: a
// freshly reset record when the stored date is not today, and nil maps
// replaced with empty ones otherwise. Normalizing twice yields the same
// result as once.
func EnsureDaily(d Daily, today DateKey) Daily {
	if d.Date != today {
		return Daily{
			Date:            today,
			Actions:         map[string]bool{},
			BonusCategories: map[string]bool{},
			GoalsDone:       map[string]bool{},
		}
	}
	if d.Actions == nil {
		d.Actions = map[string]bool{}
	}
	if d.BonusCategories == nil {
		d.BonusCategories = map[string]bool{}
	}
	if d.GoalsDone == nil {
		d.GoalsDone = map[string]bool{}
	}
	return d
}

// HasDoneAction reports whether a bonus action is already marked for today.
func HasDoneAction(d Daily, key string) bool {
	return d.Actions[key]
}

// MarkActionDone returns a copy of the record with the action marked done.
func MarkActionDone(d Daily, key string) Daily {
	out := cloneDaily(d)
	out.Actions[key] = true
	return out
}
