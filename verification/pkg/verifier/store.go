package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	inErrors "github.com/Alturino/nebula/internal/errors"
)

const (
	KEY_CODE   = "verification:code:%s"
	KEY_ISSUED = "verification:issued:%s"
)

type Entry struct {
	IssuedAt time.Time `json:"issuedAt"`
	Code     string    `json:"code"`
	Attempts int       `json:"attempts"`
}

type Store interface {
	Put(c context.Context, email string, entry Entry, ttl time.Duration) error
	Get(c context.Context, email string) (Entry, error)
	// RecordFailure increments the attempts of the pending entry, deleting it
	// once max is reached, and returns the new attempt count.
	RecordFailure(c context.Context, email string, max int) (int, error)
	// Consume deletes the pending entry and reports whether this call removed it.
	Consume(c context.Context, email string) (bool, error)
	Delete(c context.Context, email string) error
	// CountIssue counts an issuance for email inside window.
	CountIssue(c context.Context, email string, window time.Duration) (int64, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(c context.Context, email string, entry Entry, ttl time.Duration) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed marshaling verification entry with error=%w", err)
	}
	if err = s.client.Set(c, fmt.Sprintf(KEY_CODE, email), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed storing verification entry with error=%w", err)
	}
	return nil
}

func (s *RedisStore) Get(c context.Context, email string) (Entry, error) {
	value, err := s.client.Get(c, fmt.Sprintf(KEY_CODE, email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, inErrors.ErrNotSent
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed getting verification entry with error=%w", err)
	}
	entry := Entry{}
	if err = json.Unmarshal(value, &entry); err != nil {
		return Entry{}, fmt.Errorf("failed unmarshaling verification entry with error=%w", err)
	}
	return entry, nil
}

func (s *RedisStore) RecordFailure(c context.Context, email string, max int) (int, error) {
	key := fmt.Sprintf(KEY_CODE, email)
	attempts := 0
	err := s.client.Watch(c, func(tx *redis.Tx) error {
		value, err := tx.Get(c, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return inErrors.ErrNotSent
		}
		if err != nil {
			return err
		}
		entry := Entry{}
		if err = json.Unmarshal(value, &entry); err != nil {
			return err
		}
		entry.Attempts++
		attempts = entry.Attempts
		updated, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(c, func(pipe redis.Pipeliner) error {
			if entry.Attempts >= max {
				pipe.Del(c, key)
				return nil
			}
			pipe.SetArgs(c, key, updated, redis.SetArgs{KeepTTL: true})
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, inErrors.ErrNotSent) {
			return 0, err
		}
		return 0, fmt.Errorf("failed recording verification failure with error=%w", err)
	}
	return attempts, nil
}

func (s *RedisStore) Consume(c context.Context, email string) (bool, error) {
	deleted, err := s.client.Del(c, fmt.Sprintf(KEY_CODE, email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed consuming verification entry with error=%w", err)
	}
	return deleted == 1, nil
}

func (s *RedisStore) Delete(c context.Context, email string) error {
	if err := s.client.Del(c, fmt.Sprintf(KEY_CODE, email)).Err(); err != nil {
		return fmt.Errorf("failed deleting verification entry with error=%w", err)
	}
	return nil
}

func (s *RedisStore) CountIssue(c context.Context, email string, window time.Duration) (int64, error) {
	key := fmt.Sprintf(KEY_ISSUED, email)
	count, err := s.client.Incr(c, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed counting verification issue with error=%w", err)
	}
	if count == 1 {
		if err = s.client.Expire(c, key, window).Err(); err != nil {
			return 0, fmt.Errorf("failed expiring verification issue counter with error=%w", err)
		}
	}
	return count, nil
}
