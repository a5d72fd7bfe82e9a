package v1

import (
	"time"

	"github.com/google/uuid"
)

// SubmitIncidentRequest is the multipart form of a new report. Coordinates
// are pointers so an absent position is distinguishable from 0,0; the media
// file part is read separately from the form.
// @Description Multipart form for submitting a new emergency report
type SubmitIncidentRequest struct {
	Description string   `form:"description"`
	Priority    string   `form:"priority" validate:"omitempty,oneof=High Medium Low"`
	Latitude    *float64 `form:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `form:"longitude" validate:"omitempty,longitude"`
}

// IncidentResponse is the created incident returned to the submitter.
// @Description Created incident record
type IncidentResponse struct {
	ID          uuid.UUID `json:"id"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	MediaURL    string    `json:"media_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}

// FeedItemResponse is one rendered feed entry with display defaults applied.
// @Description Rendered live feed entry
type FeedItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	MediaURL    string    `json:"media_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
}
