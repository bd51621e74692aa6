package clock

import (
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	at := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	c := Fixed{T: at}
	if !c.Now().Equal(at) {
		t.Fatalf("Fixed.Now()=%v, want %v", c.Now(), at)
	}
}

func TestOverridePrefersGetter(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pinned := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	active := true
	c := Override{
		Base: Fixed{T: base},
		Get: func() (time.Time, bool) {
			return pinned, active
		},
	}
	if !c.Now().Equal(pinned) {
		t.Fatalf("override not applied")
	}

	active = false
	if !c.Now().Equal(base) {
		t.Fatalf("base clock not restored")
	}
}

func TestOverrideNilFields(t *testing.T) {
	var c Override
	if c.Now().IsZero() {
		t.Fatalf("zero Override should fall back to the wall clock")
	}
}
