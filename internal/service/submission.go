package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shenikar/emergency_reporting_system/internal/auth"
	"github.com/shenikar/emergency_reporting_system/internal/config"
	"github.com/shenikar/emergency_reporting_system/internal/metrics"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/shenikar/emergency_reporting_system/internal/storage"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=submission.go -destination=mocks/mock_service.go -package=mocks

// FallbackLocationName is persisted when reverse geocoding fails. Geocoding
// is best-effort and never fails a submission.
const FallbackLocationName = "Unknown Location"

// IncidentRepository is the store contract for incident records. Create
// assigns id, seq and timestamp; List returns records newest first.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	List(ctx context.Context, limit int) ([]*models.Incident, error)
}

// Geolocator acquires the submitting device's current position. It is
// supplied per submission, since the position belongs to the caller, not to
// the service.
type Geolocator interface {
	CurrentLocation(ctx context.Context) (models.Coordinates, error)
}

// GeoResolver turns coordinates into a human-readable place name.
type GeoResolver interface {
	Resolve(ctx context.Context, lat, lng float64) (string, error)
}

// MediaUploader stores an attachment blob and returns a fetchable URL.
type MediaUploader interface {
	Upload(ctx context.Context, key, contentType string, data io.Reader) (string, error)
}

// FeedPublisher announces a durably created incident to the live feed bus.
type FeedPublisher interface {
	Publish(ctx context.Context, incident *models.Incident) error
}

// MediaAttachment is an optional evidence blob attached to a submission.
type MediaAttachment struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// SubmissionInput is one user submission before the pipeline has run.
type SubmissionInput struct {
	Description string
	Priority    models.Priority
	Media       *MediaAttachment
}

// SubmissionService is the pipeline that turns one submission into one
// durable, observable incident record.
type SubmissionService interface {
	Submit(ctx context.Context, principal auth.Principal, input SubmissionInput, locator Geolocator) (*models.Incident, error)
	ListIncidents(ctx context.Context, limit int) ([]*models.Incident, error)
}

type submissionService struct {
	repo      IncidentRepository
	resolver  GeoResolver
	uploader  MediaUploader
	publisher FeedPublisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewSubmissionService(
	repo IncidentRepository,
	resolver GeoResolver,
	uploader MediaUploader,
	publisher FeedPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		repo:      repo,
		resolver:  resolver,
		uploader:  uploader,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// Submit runs the four pipeline steps strictly in order: geolocation,
// reverse geocoding, optional media upload, store create. Every failure is
// terminal for this invocation; nothing is retried internally and no partial
// record is ever persisted. The caller retries by invoking Submit again.
func (s *submissionService) Submit(ctx context.Context, principal auth.Principal, input SubmissionInput, locator Geolocator) (*models.Incident, error) {
	start := time.Now()
	log := s.logger.WithFields(logrus.Fields{
		"service":   "submission",
		"method":    "Submit",
		"author_id": principal.ID,
	})

	if principal.IsZero() {
		metrics.SubmissionFailures.WithLabelValues("unauthenticated").Inc()
		return nil, ErrUnauthenticated
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		metrics.SubmissionFailures.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: description must not be empty", ErrValidation)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityHigh
	}
	if !priority.Selectable() {
		metrics.SubmissionFailures.WithLabelValues("validation").Inc()
		return nil, fmt.Errorf("%w: priority %q is not selectable", ErrValidation, input.Priority)
	}

	log.WithField("phase", "acquiring").Info("Acquiring device location")
	locCtx, cancel := context.WithTimeout(ctx, s.cfg.LocationTimeout)
	defer cancel()

	coords, err := locator.CurrentLocation(locCtx)
	if err != nil {
		log.WithError(err).Warn("Failed to acquire device location")
		metrics.SubmissionFailures.WithLabelValues("location").Inc()
		return nil, fmt.Errorf("%w: %v", ErrLocation, err)
	}

	log.WithField("phase", "resolving").Info("Resolving place name")
	placeName, err := s.resolver.Resolve(ctx, coords.Lat, coords.Lng)
	if err != nil {
		log.WithError(err).Warn("Reverse geocoding failed, using fallback place name")
		placeName = FallbackLocationName
		metrics.GeocodeFallbacks.Inc()
	}

	mediaURL := ""
	if input.Media != nil {
		log.WithFields(logrus.Fields{"phase": "uploading", "filename": input.Media.Filename}).Info("Uploading media")
		key := storage.ObjectKey(principal.ID, input.Media.Filename, time.Now())
		mediaURL, err = s.uploader.Upload(ctx, key, input.Media.ContentType, input.Media.Data)
		if err != nil {
			// The user explicitly attached evidence; a record without it would
			// misrepresent the submission, so the whole invocation fails here.
			log.WithError(err).Error("Media upload failed")
			metrics.SubmissionFailures.WithLabelValues("media_upload").Inc()
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
	}

	incident := &models.Incident{
		AuthorID:    principal.ID,
		AuthorName:  principal.DisplayName,
		Description: description,
		Priority:    priority,
		Location: models.Location{
			Name: placeName,
			Lat:  coords.Lat,
			Lng:  coords.Lng,
		},
		MediaURL: mediaURL,
		Status:   models.StatusPending,
	}

	log.WithField("phase", "finalizing").Info("Creating incident record")
	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		metrics.SubmissionFailures.WithLabelValues("persistence").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The record is durable from here on. Publish feeds the live
	// subscriptions; a publish failure is logged but never fails the
	// submission, the hub catches up from the store on its next seed.
	if err := s.publisher.Publish(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to publish incident to the feed bus")
	}

	metrics.IncidentsSubmitted.Inc()
	metrics.SubmissionDuration.Observe(time.Since(start).Seconds())
	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return incident, nil
}

// ListIncidents returns the newest incidents, newest first.
func (s *submissionService) ListIncidents(ctx context.Context, limit int) ([]*models.Incident, error) {
	if limit < 1 || limit > s.cfg.FeedSnapshotLimit {
		limit = s.cfg.FeedSnapshotLimit
	}

	incidents, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}
