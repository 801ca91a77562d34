package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coachdesk/coachdesk-api/internal/models"
)

// TimetableCache stores rendered coach timetables in Redis.
type TimetableCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTimetableCache constructs a TimetableCache.
func NewTimetableCache(client *redis.Client, ttl time.Duration) *TimetableCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TimetableCache{client: client, ttl: ttl}
}

// Get returns the cached timetable for a coach, reporting a cache hit.
func (c *TimetableCache) Get(ctx context.Context, coachID string) ([]models.TimetableEntry, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	raw, err := c.client.Get(ctx, timetableKey(coachID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get timetable cache: %w", err)
	}
	var entries []models.TimetableEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decode timetable cache: %w", err)
	}
	return entries, true, nil
}

// Set stores the timetable with the configured TTL.
func (c *TimetableCache) Set(ctx context.Context, coachID string, entries []models.TimetableEntry) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode timetable cache: %w", err)
	}
	if err := c.client.Set(ctx, timetableKey(coachID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set timetable cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached timetable, e.g. after a new assignment.
func (c *TimetableCache) Invalidate(ctx context.Context, coachID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, timetableKey(coachID)).Err(); err != nil {
		return fmt.Errorf("invalidate timetable cache: %w", err)
	}
	return nil
}

func timetableKey(coachID string) string {
	return "timetable:" + coachID
}
