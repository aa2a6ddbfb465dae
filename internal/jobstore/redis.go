package jobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/redis/go-redis/v9"
)

// recordTTL matches how long finished videos are worth looking up
const recordTTL = 24 * time.Hour

type redisStore struct {
	client *redis.Client
}

// NewRedis creates a Store backed by Redis, one JSON value per job
func NewRedis(client *redis.Client) Store {
	return &redisStore{client: client}
}

func key(id string) string {
	return fmt.Sprintf("job:%s", id)
}

func (s *redisStore) Save(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	return s.client.Set(ctx, key(rec.ID), data, recordTTL).Err()
}

func (s *redisStore) Get(ctx context.Context, id string) (*Record, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &rec, nil
}

// SetStatus updates the status under an optimistic transaction so a
// concurrent Save of the final result is never overwritten
func (s *redisStore) SetStatus(ctx context.Context, id string, status model.Status) error {
	k := key(id)
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, k).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("unmarshal job: %w", err)
		}
		rec.Status = status
		rec.UpdatedAt = time.Now()

		updated, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, updated, recordTTL)
			return nil
		})
		return err
	}, k)
}
