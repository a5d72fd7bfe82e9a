package v1

import (
	"github.com/shenikar/emergency_reporting_system/internal/feed"
	"github.com/shenikar/emergency_reporting_system/internal/models"
)

// ModelToIncidentResponse converts a created incident into the response DTO.
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:          model.ID,
		Author:      model.AuthorName,
		Description: model.Description,
		Priority:    string(model.Priority),
		Location:    model.Location.Name,
		Latitude:    model.Location.Lat,
		Longitude:   model.Location.Lng,
		MediaURL:    model.MediaURL,
		Timestamp:   model.Timestamp,
		Status:      model.Status,
	}
}

// ItemsToFeedResponses converts rendered feed items into response DTOs.
func ItemsToFeedResponses(items []feed.Item) []FeedItemResponse {
	responses := make([]FeedItemResponse, len(items))
	for i, item := range items {
		responses[i] = FeedItemResponse{
			ID:          item.ID,
			Author:      item.Author,
			Description: item.Description,
			Priority:    string(item.Priority),
			Location:    item.Location,
			Latitude:    item.Lat,
			Longitude:   item.Lng,
			MediaURL:    item.MediaURL,
			Timestamp:   item.Timestamp,
			Status:      item.Status,
		}
	}
	return responses
}
