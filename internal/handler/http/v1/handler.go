package v1

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/emergency_reporting_system/internal/auth"
	"github.com/shenikar/emergency_reporting_system/internal/config"
	"github.com/shenikar/emergency_reporting_system/internal/feed"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/shenikar/emergency_reporting_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	submissionService service.SubmissionService
	hub               *feed.Hub
	provider          auth.Provider
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

func NewHandler(submissionService service.SubmissionService, hub *feed.Hub, provider auth.Provider, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		submissionService: submissionService,
		hub:               hub,
		provider:          provider,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// requestGeolocator supplies the device position the client reported with the
// submission. The position either arrived with the request or it never will,
// so CurrentLocation ignores the deadline the pipeline imposes on it.
type requestGeolocator struct {
	lat, lng *float64
}

func (g requestGeolocator) CurrentLocation(_ context.Context) (models.Coordinates, error) {
	if g.lat == nil || g.lng == nil {
		return models.Coordinates{}, errors.New("position not provided by client")
	}
	return models.Coordinates{Lat: *g.lat, Lng: *g.lng}, nil
}

// @Summary Submit a new emergency report
// @Description Submit an emergency report with description, position, priority and optional media evidence. Requires a bearer token.
// @Tags Incidents
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param description formData string true "What is happening"
// @Param priority formData string false "High, Medium or Low" default(High)
// @Param latitude formData number false "Device latitude"
// @Param longitude formData number false "Device longitude"
// @Param media formData file false "Photo or video evidence"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Validation error or position unavailable"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Media upload failed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) submitIncident(c *gin.Context) {
	var input SubmitIncidentRequest
	log := h.logger.WithField("method", "submitIncident")

	if err := c.ShouldBind(&input); err != nil {
		log.WithError(err).Warn("Failed to bind form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var media *service.MediaAttachment
	if fileHeader, err := c.FormFile("media"); err == nil {
		if fileHeader.Size > h.cfg.MediaMaxBytes {
			log.WithField("size", fileHeader.Size).Warn("Media file exceeds size limit")
			c.JSON(http.StatusBadRequest, gin.H{"error": "media file too large"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			log.WithError(err).Warn("Failed to open media file part")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media file"})
			return
		}
		defer file.Close()
		media = &service.MediaAttachment{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        file,
		}
	}

	incident, err := h.submissionService.Submit(
		c.Request.Context(),
		principalFromContext(c),
		service.SubmissionInput{
			Description: input.Description,
			Priority:    models.Priority(input.Priority),
			Media:       media,
		},
		requestGeolocator{lat: input.Latitude, lng: input.Longitude},
	)
	if err != nil {
		h.writeSubmitError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, ModelToIncidentResponse(incident))
}

// writeSubmitError maps a pipeline error onto an HTTP status. Client mistakes
// read as 400, a failed upstream upload as 502, everything else as 500.
func (h *Handler) writeSubmitError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Submission rejected by validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		log.WithError(err).Warn("Submission without a verified principal")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrLocation):
		log.WithError(err).Warn("Submission without a usable position")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to determine location"})
	case errors.Is(err, service.ErrMediaUpload):
		log.WithError(err).Error("Media upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to store media"})
	default:
		log.WithError(err).Error("Failed to submit incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get the incident feed
// @Description Get the newest incidents, optionally filtered by search text and priority. Requires a bearer token.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive substring of description or author"
// @Param priority query string false "High, Medium, Low, Normal or All" default(All)
// @Param limit query int false "Maximum number of entries"
// @Success 200 {array} FeedItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	incidents, err := h.submissionService.ListIncidents(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	items := feed.Project(incidents, filterFromQuery(c))
	c.JSON(http.StatusOK, ItemsToFeedResponses(items))
}

// @Summary Stream the live incident feed
// @Description Server-sent events stream. Each event carries the full ordered feed snapshot after a new incident lands; filters apply per subscription. Requires a bearer token.
// @Tags Incidents
// @Produce text/event-stream
// @Security BearerAuth
// @Param q query string false "Case-insensitive substring of description or author"
// @Param priority query string false "High, Medium, Low, Normal or All" default(All)
// @Success 200 {string} string "snapshot events"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /feed/stream [get]
func (h *Handler) streamFeed(c *gin.Context) {
	filter := filterFromQuery(c)
	id, ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", ItemsToFeedResponses(feed.Project(snapshot, filter)))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func filterFromQuery(c *gin.Context) feed.Filter {
	return feed.Filter{
		Text:     c.Query("q"),
		Priority: c.DefaultQuery("priority", feed.PriorityAll),
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
