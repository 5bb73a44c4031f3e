package api

import (
	"fmt"
	"time"
)

// relativeTime renders the age of a timestamp the way the dashboard
// shows it ("just now", "5m ago", "3h ago", "2d ago").
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
