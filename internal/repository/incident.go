package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_reporting_system/internal/models"
	"github.com/shenikar/emergency_reporting_system/internal/service"
)

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create appends a new incident record. id, seq and created_at are assigned
// by the database, never by the caller, so clock skew between submitters
// cannot reorder the feed. The record is visible to readers as soon as this
// returns.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (author_id, author_name, description, priority, location_name, latitude, longitude, media_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, seq, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.AuthorID,
		incident.AuthorName,
		incident.Description,
		string(incident.Priority),
		incident.Location.Name,
		incident.Location.Lat,
		incident.Location.Lng,
		incident.MediaURL,
		incident.Status,
	).Scan(&incident.ID, &incident.Seq, &incident.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	// A fresh create makes every cached snapshot stale. If the delete fails
	// the cache self-heals after cacheTTL; live subscribers are fed through
	// the event bus and never read this cache.
	r.redisClient.Del(ctx, listCacheKey)

	return nil
}

const listCacheKey = "incidents:snapshot"

// List returns the newest incidents ordered by created_at descending, with
// the insertion counter breaking timestamp ties so every reader sees the
// same order.
func (r *IncidentRepository) List(ctx context.Context, limit int) ([]*models.Incident, error) {
	if cached, err := r.getListFromCache(ctx); err == nil && cached != nil && len(cached) >= limit {
		return cached[:limit], nil
	}

	query := `
		SELECT id, seq, author_id, author_name, description, priority,
		       location_name, latitude, longitude, media_url, created_at, status
		FROM incidents
		ORDER BY created_at DESC, seq DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		var priority string
		err := rows.Scan(
			&incident.ID,
			&incident.Seq,
			&incident.AuthorID,
			&incident.AuthorName,
			&incident.Description,
			&priority,
			&incident.Location.Name,
			&incident.Location.Lat,
			&incident.Location.Lng,
			&incident.MediaURL,
			&incident.Timestamp,
			&incident.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incident.Priority = models.Priority(priority)
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}

	r.setListCache(ctx, incidents)
	return incidents, nil
}

// getListFromCache tries Redis first; a miss returns (nil, nil).
func (r *IncidentRepository) getListFromCache(ctx context.Context) ([]*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incidents from cache: %w", err)
	}

	incidents := make([]*models.Incident, 0)
	if err := json.Unmarshal(val, &incidents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incidents from cache: %w", err)
	}
	return incidents, nil
}

// setListCache is best-effort; a failed write only costs a DB round trip on
// the next List.
func (r *IncidentRepository) setListCache(ctx context.Context, incidents []*models.Incident) {
	val, err := json.Marshal(incidents)
	if err != nil {
		return
	}
	r.redisClient.Set(ctx, listCacheKey, val, r.cacheTTL)
}
