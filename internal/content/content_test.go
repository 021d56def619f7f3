package content

import "testing"

func TestCatalogsAreUsable(t *testing.T) {
	if len(Tips()) < 2 {
		t.Errorf("tip catalog has %d entries, the no-repeat rule needs at least 2", len(Tips()))
	}
	if len(Facts()) < 3 {
		t.Errorf("fact catalog has %d entries, want at least one full batch", len(Facts()))
	}

	seen := map[string]bool{}
	for i, tip := range Tips() {
		if tip.Title == "" || tip.Body == "" {
			t.Errorf("tip %d is incomplete: %+v", i, tip)
		}
		if seen[tip.Title] {
			t.Errorf("duplicate tip title %q", tip.Title)
		}
		seen[tip.Title] = true
	}
	for i, fact := range Facts() {
		if fact.Text == "" {
			t.Errorf("fact %d has no text", i)
		}
	}
}

func TestIndexWraps(t *testing.T) {
	n := len(Tips())
	if Tip(n) != Tip(0) {
		t.Error("Tip(len) should wrap to Tip(0)")
	}
	if Tip(-1) != Tip(n-1) {
		t.Error("Tip(-1) should wrap to the last tip")
	}
	if Fact(len(Facts())+1) != Fact(1) {
		t.Error("Fact(len+1) should wrap to Fact(1)")
	}
}
