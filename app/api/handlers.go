package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nzhazard/hazardwatch/app/feed"
	"github.com/nzhazard/hazardwatch/app/tasks"
)

var validTopics = map[feed.Topic]bool{
	feed.TopicIncidents: true,
	feed.TopicCrime:     true,
	feed.TopicFire:      true,
	feed.TopicWarnings:  true,
}

func (h *Handler) GetTopic(c *gin.Context) {
	topic := feed.Topic(c.Param("topic"))
	if !validTopics[topic] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown topic"})
		return
	}

	state, ok := h.snapshot.Topic(topic)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"topic": topic,
			"items": []feed.Item{},
		})
		return
	}

	response := gin.H{
		"topic":      topic,
		"items":      state.Items,
		"updatedAt":  state.UpdatedAt.Format(time.RFC3339),
		"updatedAgo": relativeTime(state.UpdatedAt, h.clock.Now()),
	}
	if state.Err != "" {
		response["error"] = state.Err
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetQuakes(c *gin.Context) {
	quakes, errText, updatedAt := h.snapshot.Quakes()

	response := gin.H{
		"quakes":     quakes,
		"updatedAt":  updatedAt.Format(time.RFC3339),
		"updatedAgo": relativeTime(updatedAt, h.clock.Now()),
	}
	if errText != "" {
		response["error"] = errText
		response["link"] = "https://www.geonet.org.nz/earthquake/weak"
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetVolcanoes(c *gin.Context) {
	volcanoes, errText, updatedAt := h.snapshot.Volcanoes()

	response := gin.H{
		"volcanoes":  volcanoes,
		"updatedAt":  updatedAt.Format(time.RFC3339),
		"updatedAgo": relativeTime(updatedAt, h.clock.Now()),
	}
	if errText != "" {
		response["error"] = errText
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetWeather(c *gin.Context) {
	cities, errText, updatedAt := h.snapshot.Weather()

	response := gin.H{
		"cities":     cities,
		"updatedAt":  updatedAt.Format(time.RFC3339),
		"updatedAgo": relativeTime(updatedAt, h.clock.Now()),
	}
	if errText != "" {
		response["error"] = errText
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetRecent(c *gin.Context) {
	event := h.tracker.Current()
	if event == nil {
		c.JSON(http.StatusOK, gin.H{"event": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event": event,
		"ago":   relativeTime(event.Time, h.clock.Now()),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	now := h.clock.Now()

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"version":     h.version,
		"timestamp":   now.Format(time.RFC3339),
		"uptime":      now.Sub(h.startedAt).Truncate(time.Second).String(),
		"lastUpdated": h.snapshot.LastUpdated().Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"counts":      h.snapshot.Stats(),
		"lastUpdated": h.snapshot.LastUpdated().Format(time.RFC3339),
	})
}

// RefreshAll triggers a full refresh cycle. The work runs on the
// scheduler's workers; the response only acknowledges the start.
func (h *Handler) RefreshAll(c *gin.Context) {
	if err := h.scheduler.RefreshAll(); err != nil {
		if errors.Is(err, tasks.ErrRefreshInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "refresh started"})
}
