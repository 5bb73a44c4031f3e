package feed

import (
	"sort"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a source-native date string. Feeds in the wild mix
// RFC1123, RFC3339 and a handful of looser formats, so this leans on
// dateparse rather than a fixed layout list.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// SortByRecency orders items newest first. Items whose pubDate cannot be
// parsed sort last, preserving their relative order.
func SortByRecency(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, iok := items[i].PublishedAt()
		tj, jok := items[j].PublishedAt()
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.After(tj)
	})
}
