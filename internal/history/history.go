// Package history records screening run summaries in Redis so past runs can
// be listed without re-reading report files.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const runKeyPrefix = "run:"

// Record is one screening run summary.
type Record struct {
	ID           string    `json:"id"`
	Position     string    `json:"position"`
	Candidates   int       `json:"candidates"`
	AverageScore float64   `json:"average_score"`
	TopCandidate string    `json:"top_candidate"`
	TopScore     float64   `json:"top_score"`
	ReportPath   string    `json:"report_path"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is a Redis-backed run history.
type Store struct {
	client *redis.Client
}

// Open connects to Redis and verifies the connection with a ping.
func Open(ctx context.Context, addr, password string, db int, dialTimeout time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("history: redis ping: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: marshal record: %w", err)
	}
	if err := s.client.Set(ctx, runKeyPrefix+rec.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("history: save record: %w", err)
	}
	return nil
}

// List returns all recorded runs, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	keys, err := s.client.Keys(ctx, runKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("history: list keys: %w", err)
	}
	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		val, err := s.client.Get(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("history: read %s: %w", key, err)
		}
		var rec Record
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, fmt.Errorf("history: decode %s: %w", key, err)
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *Store) Close() error { return s.client.Close() }
