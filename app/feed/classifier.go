package feed

import (
	"strings"
)

// Classifier decides whether an item belongs to a topic bucket. An item
// matches when it carries at least one topic keyword, reads as New
// Zealand related and trips none of the exclusion keywords.
type Classifier struct {
	topic    Topic
	keywords []string
}

func NewClassifier(topic Topic) *Classifier {
	return &Classifier{topic: topic, keywords: topicKeywords(topic)}
}

func topicKeywords(topic Topic) []string {
	switch topic {
	case TopicIncidents:
		return incidentKeywords
	case TopicCrime:
		return crimeKeywords
	case TopicFire:
		return fireKeywords
	default:
		return nil
	}
}

func (c *Classifier) Topic() Topic {
	return c.topic
}

func (c *Classifier) Matches(item Item) bool {
	text := item.SearchText()
	return containsAny(text, c.keywords) && IsNZRelated(item) && !ShouldExclude(text)
}

// Run filters items down to those matching the topic.
func (c *Classifier) Run(items []Item) []Item {
	matched := make([]Item, 0, len(items))
	for _, item := range items {
		if c.Matches(item) {
			matched = append(matched, item)
		}
	}
	return matched
}

// IsNZRelated reports whether the item's text mentions any New Zealand
// place, region or identity keyword.
func IsNZRelated(item Item) bool {
	return containsAny(item.SearchText(), nzKeywords)
}

// ShouldExclude reports whether lowercased text trips an exclusion
// keyword. A rugby "match" report mentioning a "crash" must not
// masquerade as an incident.
func ShouldExclude(text string) bool {
	return containsAny(strings.ToLower(text), exclusionKeywords)
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func searchText(title, description string) string {
	return strings.ToLower(title + " " + description)
}
