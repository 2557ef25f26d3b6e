package classifier

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		wantTopic string
	}{
		{"civil", "civil engineering updates", "civil"},
		{"civil uppercase", "CIVIL projects", "civil"},
		{"mechanical", "mechanical engineering discoveries", "mechanical"},
		{"aerospace", "Aerospace news please", "aerospace"},
		{"materials", "new materials", "materials"},
		{"materials science", "materials science breakthroughs", "materials"},
		{"software", "software releases", "software"},
		{"ai word", "what is new in AI", "software"},
		{"ai hyphenated", "AI-driven design", "software"},
		{"ai inside word", "maintenance detail", "software"},
		{"ai in train", "train news", "software"},
		{"ai in email", "email about detail", "software"},
		{"civil before ai substring", "civil maintenance works", "civil"},
		{"default", "engineering news", "general"},
		{"empty", "", "general"},
		{"civil beats software", "software for civil engineers", "civil"},
		{"mechanical beats aerospace", "aerospace mechanical systems", "mechanical"},
		{"aerospace beats materials", "materials for aerospace", "aerospace"},
		{"materials beats ai", "ai for materials", "materials"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(c.text)
			if got.Name != c.wantTopic {
				t.Fatalf("Classify(%q) = %q; want %q", c.text, got.Name, c.wantTopic)
			}
		})
	}
}

func TestClassifyQueries(t *testing.T) {
	want := map[string]string{
		"civil":      "civil engineering OR structural engineering OR bridge OR concrete",
		"mechanical": "mechanical engineering OR robotics OR manufacturing OR thermodynamics",
		"aerospace":  "aerospace OR flight OR satellite OR space technology",
		"materials":  "materials science OR nanomaterials OR composites OR metallurgy",
		"software":   "software engineering OR AI OR machine learning OR programming",
	}
	for _, r := range Rules() {
		if r.Topic.Query != want[r.Topic.Name] {
			t.Errorf("query for %s = %q", r.Topic.Name, r.Topic.Query)
		}
		// Every keyword should classify to its own rule.
		if got := Classify(r.Keywords[0]); got != r.Topic {
			t.Errorf("Classify(%q) = %+v; want %+v", r.Keywords[0], got, r.Topic)
		}
	}
	if Classify("anything else").Query != "engineering OR technology OR innovation OR discovery OR breakthrough" {
		t.Errorf("unexpected default query")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		if Classify("AI in software engineering").Name != "software" {
			t.Fatalf("classification changed on iteration %d", i)
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	r[0].Keywords[0] = "mutated"
	r[0].Topic.Name = "mutated"
	if Classify("civil").Name != "civil" {
		t.Fatalf("Rules() must not expose internal state")
	}
	if len(r) != 5 {
		t.Fatalf("expected 5 rules, got %d", len(r))
	}
}
