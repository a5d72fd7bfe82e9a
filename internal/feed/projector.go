package feed

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_reporting_system/internal/models"
)

// PriorityAll is the filter value that matches every priority.
const PriorityAll = "All"

// Display defaults for records missing a field. A malformed record is always
// rendered, never dropped.
const (
	defaultDescription = "No description provided."
	defaultAuthor      = "Anonymous"
	defaultLocation    = "Unknown Location"
)

// Filter is the client-side view filter. Text matches case-insensitively as
// a substring of the description or the author display name. Priority is a
// label or PriorityAll.
type Filter struct {
	Text     string
	Priority string
}

// Item is one rendered feed entry with all display defaults applied.
type Item struct {
	ID          uuid.UUID       `json:"id"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	Location    string          `json:"location"`
	Lat         float64         `json:"lat"`
	Lng         float64         `json:"lng"`
	MediaURL    string          `json:"media_url,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Status      string          `json:"status"`
}

// Project renders a snapshot through the filter. It is pure: the snapshot is
// never mutated, the output order is inherited unchanged from the input, and
// filtering only removes entries. Records with missing fields render with
// the documented defaults.
func Project(snapshot []*models.Incident, filter Filter) []Item {
	text := strings.ToLower(strings.TrimSpace(filter.Text))

	items := make([]Item, 0, len(snapshot))
	for _, incident := range snapshot {
		item := render(incident)
		if !matchesText(incident, text) {
			continue
		}
		if !matchesPriority(item.Priority, filter.Priority) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func render(incident *models.Incident) Item {
	item := Item{
		ID:          incident.ID,
		Author:      incident.AuthorName,
		Description: incident.Description,
		Priority:    incident.Priority,
		Location:    incident.Location.Name,
		Lat:         incident.Location.Lat,
		Lng:         incident.Location.Lng,
		MediaURL:    incident.MediaURL,
		Timestamp:   incident.Timestamp,
		Status:      incident.Status,
	}

	if item.Description == "" {
		item.Description = defaultDescription
	}
	if item.Author == "" {
		item.Author = defaultAuthor
	}
	if item.Location == "" {
		item.Location = defaultLocation
	}
	if item.Priority == "" {
		// Legacy records carry no priority; they read as Normal.
		item.Priority = models.PriorityNormal
	}
	return item
}

func matchesText(incident *models.Incident, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(incident.Description), text) ||
		strings.Contains(strings.ToLower(incident.AuthorName), text)
}

// matchesPriority compares against the rendered priority, so a "Normal"
// filter finds the legacy records that read as Normal.
func matchesPriority(rendered models.Priority, filter string) bool {
	if filter == "" || filter == PriorityAll {
		return true
	}
	return string(rendered) == filter
}
