package engine

// Bonus action categories. A category whose actions are all done in one day
// pays a one-time +10 XP bonus for that day.
const (
	CategoryTraining = "Training"
	CategoryMovement = "Movement"
	CategoryStudy    = "Study"
	CategoryReading  = "Reading"
)

// CatalogAction is one entry of the static bonus-action registry.
// This is configuration data, not state.
type CatalogAction struct {
	Key      string
	Label    string
	XP       int
	Category string
}

// Catalog lists every bonus action in display order.
var Catalog = []CatalogAction{
	{Key: "train_easy", Label: "Easy workout", XP: 10, Category: CategoryTraining},
	{Key: "train_medium", Label: "Medium workout", XP: 18, Category: CategoryTraining},
	{Key: "train_hard", Label: "Hard workout", XP: 28, Category: CategoryTraining},
	{Key: "walk_30m", Label: "Walk 30 min", XP: 6, Category: CategoryMovement},
	{Key: "walk_1h", Label: "Walk 1 hour", XP: 10, Category: CategoryMovement},
	{Key: "study_30m", Label: "Study 30 min", XP: 8, Category: CategoryStudy},
	{Key: "study_1h", Label: "Study 1 hour", XP: 15, Category: CategoryStudy},
	{Key: "study_2h", Label: "Study 2 hours", XP: 25, Category: CategoryStudy},
	{Key: "read_30m", Label: "Read 30 min", XP: 6, Category: CategoryReading},
	{Key: "read_1h", Label: "Read 1 hour", XP: 12, Category: CategoryReading},
	{Key: "read_2h", Label: "Read 2 hours", XP: 20, Category: CategoryReading},
}

// ActionByKey returns the catalog entry for key, or nil when unknown.
func ActionByKey(key string) *CatalogAction {
	for i := range Catalog {
		if Catalog[i].Key == key {
			return &Catalog[i]
		}
	}
	return nil
}

// CategoryForAction returns the category of a catalog action, or "" when the
// key is unknown.
func CategoryForAction(key string) string {
	if a := ActionByKey(key); a != nil {
		return a.Category
	}
	return ""
}

// ActionsForCategory returns the actions of one category in catalog order.
func ActionsForCategory(category string) []CatalogAction {
	var out []CatalogAction
	for _, a := range Catalog {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// CategoryGroup is one category with its actions, in catalog order.
type CategoryGroup struct {
	Category string
	Actions  []CatalogAction
}

// GroupedByCategory groups the catalog by category, preserving the order in
// which categories first appear.
func GroupedByCategory() []CategoryGroup {
	index := map[string]int{}
	var groups []CategoryGroup
	for _, a := range Catalog {
		i, ok := index[a.Category]
		if !ok {
			i = len(groups)
			index[a.Category] = i
			groups = append(groups, CategoryGroup{Category: a.Category})
		}
		groups[i].Actions = append(groups[i].Actions, a)
	}
	return groups
}
