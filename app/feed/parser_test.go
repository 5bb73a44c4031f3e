package feed

import (
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Crash closes &lt;b&gt;SH1&lt;/b&gt; near Kaikoura</title>
      <link>https://example.com/articles/1</link>
      <description><![CDATA[<p>Emergency services are at the scene.</p>]]></description>
      <pubDate>Mon, 02 Feb 2026 06:00:00 +1300</pubDate>
      <category>National</category>
    </item>
    <item>
      <title>Flooding in Greymouth</title>
      <link>https://example.com/articles/2</link>
      <pubDate>Mon, 02 Feb 2026 05:00:00 +1300</pubDate>
    </item>
  </channel>
</rss>`

func TestParser_Run_RSS(t *testing.T) {
	parser := NewParser()

	items, err := parser.Run([]byte(sampleRSS))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Crash closes SH1 near Kaikoura" {
		t.Errorf("Title should be sanitized, got %q", first.Title)
	}
	if first.Description != "Emergency services are at the scene." {
		t.Errorf("Description should be sanitized, got %q", first.Description)
	}
	if first.Link != "https://example.com/articles/1" {
		t.Errorf("Unexpected link: %q", first.Link)
	}
	if first.PubDate == "" {
		t.Error("PubDate should be carried through")
	}
	if first.Category != "National" {
		t.Errorf("Unexpected category: %q", first.Category)
	}

	if items[1].Description != "" {
		t.Errorf("Missing description should stay empty, got %q", items[1].Description)
	}
}

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <entry>
    <title>Storm warning for Canterbury</title>
    <link href="https://example.com/atom/1"/>
    <content type="html">&lt;p&gt;Severe gales forecast.&lt;/p&gt;</content>
    <updated>2026-02-02T06:00:00+13:00</updated>
  </entry>
</feed>`

func TestParser_Run_Atom(t *testing.T) {
	parser := NewParser()

	items, err := parser.Run([]byte(sampleAtom))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Title != "Storm warning for Canterbury" {
		t.Errorf("Unexpected title: %q", item.Title)
	}
	if item.Link != "https://example.com/atom/1" {
		t.Errorf("Atom href link should be used, got %q", item.Link)
	}
	if item.Description != "Severe gales forecast." {
		t.Errorf("Content should back-fill the description, got %q", item.Description)
	}
	if item.PubDate == "" {
		t.Error("Updated timestamp should back-fill pubDate")
	}
}

func TestParser_Run_Invalid(t *testing.T) {
	parser := NewParser()

	if _, err := parser.Run([]byte("not a feed at all")); err == nil {
		t.Error("Expected an error for a non-feed document")
	}
}
