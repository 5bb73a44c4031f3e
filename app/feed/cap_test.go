package feed

import (
	"strings"
	"testing"
)

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Format
	}{
		{
			name:     "bare CAP alert",
			input:    `<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2"><identifier>x</identifier></alert>`,
			expected: FormatCAPAlert,
		},
		{
			name:     "CAP alert behind XML declaration",
			input:    "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<alert><identifier>x</identifier></alert>",
			expected: FormatCAPAlert,
		},
		{
			name:     "RSS document",
			input:    "<?xml version=\"1.0\"?><rss><channel><item><title>x</title></item></channel></rss>",
			expected: FormatFeed,
		},
		{
			name:     "Atom document",
			input:    "<feed xmlns=\"http://www.w3.org/2005/Atom\"><entry><title>x</title></entry></feed>",
			expected: FormatFeed,
		},
		{
			name:     "HTML error page",
			input:    "<html><body>503 Service Unavailable</body></html>",
			expected: FormatUnknown,
		},
		{
			name:     "empty",
			input:    "",
			expected: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SniffFormat(tt.input)
			if got != tt.expected {
				t.Errorf("SniffFormat(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

const sampleCAPAlert = `<?xml version="1.0" encoding="UTF-8"?>
<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">
  <identifier>metservice.2026.0042</identifier>
  <sender>alerts@metservice.com</sender>
  <senderName>MetService</senderName>
  <sent>2026-02-01T06:00:00+13:00</sent>
  <info>
    <event>Heavy Rain Warning</event>
    <urgency>Expected</urgency>
    <severity>Severe</severity>
    <certainty>Likely</certainty>
    <onset>2026-02-01T12:00:00+13:00</onset>
    <expires>2026-02-02T00:00:00+13:00</expires>
    <headline>Heavy rain for Tasman and Nelson</headline>
    <description>Periods of heavy rain. Streams and rivers may rise rapidly.</description>
  </info>
</alert>`

func TestParseCAPAlert_SingleItem(t *testing.T) {
	items, err := ParseCAPAlert(sampleCAPAlert)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected exactly 1 item, got %d", len(items))
	}

	item := items[0]

	if item.Title != "Heavy rain for Tasman and Nelson (Severe)" {
		t.Errorf("Unexpected title: %q", item.Title)
	}
	if item.Severity != SeverityHigh {
		t.Errorf("Severe should map to high, got %q", item.Severity)
	}
	if item.Link != WarningsPageURL {
		t.Errorf("CAP item should link to the warnings page, got %q", item.Link)
	}
	if item.EventType != "Heavy Rain Warning" {
		t.Errorf("Unexpected event type: %q", item.EventType)
	}
	if item.Source != "MetService" {
		t.Errorf("Unexpected source: %q", item.Source)
	}
	if item.PubDate != "2026-02-01T06:00:00+13:00" {
		t.Errorf("Unexpected pubDate: %q", item.PubDate)
	}

	for _, fragment := range []string{
		"Periods of heavy rain",
		"Urgency: Expected",
		"Certainty: Likely",
		"Expires: 2026-02-02T00:00:00+13:00",
		"Issued by: MetService",
		"ID: metservice.2026.0042",
	} {
		if !strings.Contains(item.Description, fragment) {
			t.Errorf("Description missing %q: %q", fragment, item.Description)
		}
	}
}

func TestParseCAPAlert_MissingFields(t *testing.T) {
	items, err := ParseCAPAlert(`<alert><sent>2026-02-01T06:00:00Z</sent></alert>`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Title != "Weather Alert (Unknown)" {
		t.Errorf("Unexpected fallback title: %q", item.Title)
	}
	if item.Severity != SeverityLow {
		t.Errorf("Unknown severity should map to low, got %q", item.Severity)
	}
}

func TestParseCAPAlert_Malformed(t *testing.T) {
	items, err := ParseCAPAlert("<alert><unclosed")
	if err == nil {
		t.Error("Expected an error for malformed XML")
	}
	if len(items) != 1 || !items[0].IsFallback {
		t.Errorf("Malformed CAP should degrade to the warnings placeholder, got %+v", items)
	}
}

const sampleCAPFeed = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>MetService Warnings</title>
    <item>
      <title>Red Warning: Heavy Rain for Westland</title>
      <description>Dangerous river conditions expected.</description>
      <pubDate>Mon, 02 Feb 2026 06:00:00 +1300</pubDate>
    </item>
    <item>
      <title>Orange Watch: Strong Wind for Wellington</title>
      <description>Gusts up to 120 km/h in exposed places.</description>
      <pubDate>Mon, 02 Feb 2026 05:00:00 +1300</pubDate>
    </item>
    <item>
      <title>Road Snowfall Advisory</title>
      <description>Light snow near the Desert Road summit.</description>
      <pubDate>Mon, 02 Feb 2026 04:00:00 +1300</pubDate>
    </item>
  </channel>
</rss>`

func TestParseCAPFeed(t *testing.T) {
	items, err := ParseCAPFeed(NewParser(), []byte(sampleCAPFeed))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	if items[0].Severity != SeverityHigh {
		t.Errorf("Red warning should be high severity, got %q", items[0].Severity)
	}
	if items[0].EventType != "Heavy Rain" {
		t.Errorf("Unexpected event type: %q", items[0].EventType)
	}

	if items[1].Severity != SeverityMedium {
		t.Errorf("Orange watch should be medium severity, got %q", items[1].Severity)
	}
	if items[1].EventType != "Strong Wind" {
		t.Errorf("Unexpected event type: %q", items[1].EventType)
	}

	if items[2].Severity != SeverityLow {
		t.Errorf("Advisory should be low severity, got %q", items[2].Severity)
	}
	if items[2].EventType != "Snow" {
		t.Errorf("Unexpected event type: %q", items[2].EventType)
	}

	for i, item := range items {
		if item.Link != WarningsPageURL {
			t.Errorf("Item %d should link to the warnings page, got %q", i, item.Link)
		}
		if item.Source != "MetService" {
			t.Errorf("Item %d should carry the MetService source, got %q", i, item.Source)
		}
	}
}
