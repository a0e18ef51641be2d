package gate

import (
	"testing"
	"time"
)

func TestCheckAdmitsUnknownCaller(t *testing.T) {
	g := New(120 * time.Second)

	remaining, ok := g.Check("203.0.113.7")
	if !ok {
		t.Fatal("expected an unknown caller to be admitted")
	}

	if remaining != 0 {
		t.Errorf("expected zero remaining time, got %v", remaining)
	}
}

func TestCooldownRejectsWithinWindow(t *testing.T) {
	g := New(120 * time.Second)

	base := time.Now()
	g.now = func() time.Time { return base }

	g.Record("203.0.113.7")

	// remaining time decreases monotonically as the clock advances
	g.now = func() time.Time { return base.Add(30 * time.Second) }

	first, ok := g.Check("203.0.113.7")
	if ok {
		t.Fatal("expected rejection within the cooldown window")
	}

	if first != 90*time.Second {
		t.Errorf("expected 90s remaining, got %v", first)
	}

	g.now = func() time.Time { return base.Add(60 * time.Second) }

	second, _ := g.Check("203.0.113.7")
	if second >= first {
		t.Errorf("expected remaining time to decrease, got %v then %v", first, second)
	}
}

func TestCooldownAdmitsAfterWindow(t *testing.T) {
	g := New(120 * time.Second)

	base := time.Now()
	g.now = func() time.Time { return base }

	g.Record("203.0.113.7")

	g.now = func() time.Time { return base.Add(121 * time.Second) }

	if _, ok := g.Check("203.0.113.7"); !ok {
		t.Error("expected admission after the window elapsed")
	}
}

func TestCooldownIsPerCaller(t *testing.T) {
	g := New(120 * time.Second)

	g.Record("203.0.113.7")

	if _, ok := g.Check("198.51.100.1"); !ok {
		t.Error("expected a different caller to be unaffected")
	}
}

func TestRemainingDoesNotConsume(t *testing.T) {
	g := New(120 * time.Second)

	if r := g.Remaining("203.0.113.7"); r != 0 {
		t.Errorf("expected zero remaining for unknown caller, got %v", r)
	}

	if g.ActiveCallers() != 0 {
		t.Error("Remaining must not create ledger entries")
	}
}

func TestCounters(t *testing.T) {
	g := New(time.Second)

	g.Begin()
	g.Begin()

	if total, active := g.Counters(); total != 2 || active != 2 {
		t.Errorf("expected total=2 active=2, got total=%d active=%d", total, active)
	}

	g.End()

	if total, active := g.Counters(); total != 2 || active != 1 {
		t.Errorf("expected total=2 active=1, got total=%d active=%d", total, active)
	}
}

func TestActiveCallers(t *testing.T) {
	g := New(time.Second)

	g.Record("a")
	g.Record("b")
	g.Record("a")

	if got := g.ActiveCallers(); got != 2 {
		t.Errorf("expected 2 distinct callers, got %d", got)
	}
}

func TestValidPrompt(t *testing.T) {
	cases := []struct {
		prompt string
		valid  bool
	}{
		{"", false},
		{"   ", false},
		{"short", false},
		{"         x", false}, // whitespace does not count toward the minimum
		{"animate a circle", true},
	}

	for _, tc := range cases {
		if got := ValidPrompt(tc.prompt); got != tc.valid {
			t.Errorf("ValidPrompt(%q) = %v, want %v", tc.prompt, got, tc.valid)
		}
	}
}
