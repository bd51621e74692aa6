package engine

import "time"

// DateKey is a calendar date in the user's local time zone, serialized as
// YYYY-MM-DD. Lexicographic order matches chronological order.
type DateKey string

const dateKeyLayout = "2006-01-02"

func DateKeyFromTime(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// Time returns local midnight of the key's date. ok is false for malformed keys.
func (k DateKey) Time() (time.Time, bool) {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (k DateKey) Next() DateKey {
	t, ok := k.Time()
	if !ok {
		return k
	}
	return DateKeyFromTime(t.AddDate(0, 0, 1))
}

func (k DateKey) Prev() DateKey {
	t, ok := k.Time()
	if !ok {
		return k
	}
	return DateKeyFromTime(t.AddDate(0, 0, -1))
}
