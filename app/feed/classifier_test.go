package feed

import (
	"testing"
)

func TestClassifier_Matches(t *testing.T) {
	tests := []struct {
		name     string
		topic    Topic
		item     Item
		expected bool
	}{
		{
			name:     "NZ incident matches",
			topic:    TopicIncidents,
			item:     Item{Title: "Crash closes State Highway 1 near Kaikoura"},
			expected: true,
		},
		{
			name:     "incident without NZ reference rejected",
			topic:    TopicIncidents,
			item:     Item{Title: "Crash closes motorway near Sydney"},
			expected: false,
		},
		{
			name:     "NZ article without topic keyword rejected",
			topic:    TopicIncidents,
			item:     Item{Title: "Auckland housing market update"},
			expected: false,
		},
		{
			name:     "sports exclusion beats topic match",
			topic:    TopicIncidents,
			item:     Item{Title: "Crash of the titans as Auckland rugby match goes to overtime"},
			expected: false,
		},
		{
			name:     "crime keyword matches",
			topic:    TopicCrime,
			item:     Item{Title: "Police investigate burglary in Hamilton"},
			expected: true,
		},
		{
			name:     "fire keyword matches",
			topic:    TopicFire,
			item:     Item{Title: "House fire in Christchurch suburb"},
			expected: true,
		},
		{
			name:     "case insensitive matching",
			topic:    TopicFire,
			item:     Item{Title: "HOUSE FIRE IN CHRISTCHURCH"},
			expected: true,
		},
		{
			name:     "keyword in description counts",
			topic:    TopicCrime,
			item:     Item{Title: "Wellington news", Description: "A robbery occurred overnight"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewClassifier(tt.topic)
			got := classifier.Matches(tt.item)
			if got != tt.expected {
				t.Errorf("Matches(%q) = %v, expected %v", tt.item.Title, got, tt.expected)
			}
		})
	}
}

func TestClassifier_Run(t *testing.T) {
	classifier := NewClassifier(TopicIncidents)

	items := []Item{
		{Title: "Crash on SH1 near Timaru"},
		{Title: "Lifestyle feature on gardens"},
		{Title: "Flooding hits Greymouth"},
	}

	matched := classifier.Run(items)

	if len(matched) != 2 {
		t.Fatalf("Expected 2 matched items, got %d", len(matched))
	}
	if matched[0].Title != items[0].Title || matched[1].Title != items[2].Title {
		t.Errorf("Wrong items matched: %q, %q", matched[0].Title, matched[1].Title)
	}
}

func TestIsNZRelated(t *testing.T) {
	if !IsNZRelated(Item{Title: "News from Aotearoa"}) {
		t.Error("Aotearoa should read as NZ related")
	}
	if !IsNZRelated(Item{Title: "Event in Whakatane today"}) {
		t.Error("Whakatane should read as NZ related")
	}
	if IsNZRelated(Item{Title: "London underground delays"}) {
		t.Error("London item should not read as NZ related")
	}
}

func TestShouldExclude(t *testing.T) {
	if !ShouldExclude("all blacks name squad for test in auckland") {
		t.Error("Rugby content should be excluded")
	}
	if !ShouldExclude("warriors sign new player") {
		t.Error("Sports content should be excluded")
	}
	if ShouldExclude("person rescued from flooded river in canterbury") {
		t.Error("Genuine incident should not be excluded")
	}
}
