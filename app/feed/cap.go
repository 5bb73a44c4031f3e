package feed

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"strings"
)

// WarningsPageURL is the canonical human-readable warnings page. CAP items
// always link here, never to the raw feed URL.
const WarningsPageURL = "https://www.metservice.com/warnings/home"

// Format tags the result of sniffing a raw fetched document.
type Format int

const (
	FormatUnknown Format = iota
	FormatCAPAlert
	FormatFeed
)

// SniffFormat decides how a raw document should be parsed: a bare CAP
// <alert> root gets the single-alert parser, anything with item/entry
// elements goes through the feed parsers.
func SniffFormat(raw string) Format {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "<?xml") {
		if end := strings.Index(trimmed, "?>"); end >= 0 {
			trimmed = strings.TrimSpace(trimmed[end+2:])
		}
	}
	switch {
	case strings.HasPrefix(trimmed, "<alert"):
		return FormatCAPAlert
	case strings.Contains(trimmed, "<item>") || strings.Contains(trimmed, "<entry"):
		return FormatFeed
	default:
		return FormatUnknown
	}
}

// capAlert mirrors the subset of a CAP <alert> document we surface.
type capAlert struct {
	XMLName    xml.Name `xml:"alert"`
	Identifier string   `xml:"identifier"`
	Sender     string   `xml:"sender"`
	SenderName string   `xml:"senderName"`
	Sent       string   `xml:"sent"`
	Info       struct {
		Event       string `xml:"event"`
		Urgency     string `xml:"urgency"`
		Severity    string `xml:"severity"`
		Certainty   string `xml:"certainty"`
		Onset       string `xml:"onset"`
		Expires     string `xml:"expires"`
		Headline    string `xml:"headline"`
		Description string `xml:"description"`
	} `xml:"info"`
}

// ParseCAPAlert consumes a CAP single-alert document and produces exactly
// one warning item. A document without an <alert> root degrades to the
// static warnings placeholder.
func ParseCAPAlert(raw string) ([]Item, error) {
	var alert capAlert
	if err := xml.Unmarshal([]byte(raw), &alert); err != nil {
		return WarningsFallback(), fmt.Errorf("failed to parse CAP alert: %w", err)
	}

	info := alert.Info
	event := info.Event
	if event == "" {
		event = "Weather Alert"
	}
	severity := strings.ToLower(info.Severity)
	if severity == "" {
		severity = "unknown"
	}

	title := event
	if info.Headline != "" {
		title = info.Headline
	}

	parts := []string{
		Sanitize(info.Description),
		labeled("Urgency", info.Urgency),
		labeled("Certainty", info.Certainty),
		labeled("Onset", info.Onset),
		labeled("Expires", info.Expires),
		labeled("Issued by", cmp.Or(alert.SenderName, alert.Sender)),
		labeled("ID", alert.Identifier),
	}
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	item := Item{
		Title:       fmt.Sprintf("%s (%s)", Sanitize(title), capitalize(severity)),
		Description: strings.Join(nonEmpty, " | "),
		Link:        WarningsPageURL,
		PubDate:     alert.Sent,
		Severity:    capSeverity(severity),
		EventType:   event,
		Source:      "MetService",
	}

	return []Item{item}, nil
}

// ParseCAPFeed consumes a feed wrapping multiple CAP-like entries.
// Severity and event type are inferred by keyword scan since the wrapped
// entries do not carry structured CAP fields.
func ParseCAPFeed(parser *Parser, data []byte) ([]Item, error) {
	parsed, err := parser.Run(data)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(parsed))
	for _, entry := range parsed {
		if entry.Title == "" {
			continue
		}

		text := strings.ToLower(entry.Title + entry.Description)

		severity := SeverityLow
		if strings.Contains(text, "red") || strings.Contains(text, "warning") || strings.Contains(text, "severe") {
			severity = SeverityHigh
		} else if strings.Contains(text, "orange") || strings.Contains(text, "watch") {
			severity = SeverityMedium
		}

		entry.Link = WarningsPageURL
		entry.Severity = severity
		entry.EventType = capEventType(text)
		entry.Source = "MetService"
		items = append(items, entry)
	}

	return items, nil
}

func capEventType(text string) string {
	switch {
	case strings.Contains(text, "rain"):
		return "Heavy Rain"
	case strings.Contains(text, "wind"):
		return "Strong Wind"
	case strings.Contains(text, "snow"):
		return "Snow"
	case strings.Contains(text, "thunder"):
		return "Thunderstorm"
	case strings.Contains(text, "flood"):
		return "Flood"
	case strings.Contains(text, "fire"):
		return "Fire Weather"
	case strings.Contains(text, "cyclone"):
		return "Cyclone"
	default:
		return "Weather Alert"
	}
}

// capSeverity maps a CAP severity value onto the display tiers.
func capSeverity(severity string) string {
	switch {
	case strings.Contains(severity, "high"), strings.Contains(severity, "severe"), strings.Contains(severity, "extreme"):
		return SeverityHigh
	case strings.Contains(severity, "moderate"):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
