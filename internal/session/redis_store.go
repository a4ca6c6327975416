package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"parkportal/internal/constants"
)

// RedisStore keeps transcripts in Redis so an open chat panel survives a
// portal restart. Expiry is delegated to key TTLs.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	cancel func()
}

func NewRedisStore(host, port, username, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Username: username,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithCancel(context.Background())

	store := &RedisStore{client: client, ctx: ctx, cancel: cancel}

	if err := store.client.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, err
	}
	return store, nil
}

func (st *RedisStore) Save(t *Transcript) {
	jsonData, err := json.Marshal(t)
	if err != nil {
		log.Printf("Failed to marshal transcript: %v", err)
		return
	}

	ttl := time.Until(t.ExpiresAt())
	if ttl <= 0 {
		return
	}

	key := constants.RedisKeyPrefix + t.ID
	if err := st.client.Set(st.ctx, key, jsonData, ttl).Err(); err != nil {
		log.Printf("Failed to save transcript to Redis: %v", err)
	}
}

func (st *RedisStore) Get(id string) (*Transcript, bool) {
	key := constants.RedisKeyPrefix + id

	data, err := st.client.Get(st.ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Failed to get transcript from Redis: %v", err)
		return nil, false
	}

	var t Transcript
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		log.Printf("Failed to unmarshal transcript: %v", err)
		return nil, false
	}
	if t.IsExpired() {
		st.Delete(id)
		return nil, false
	}
	return &t, true
}

func (st *RedisStore) Delete(id string) {
	key := constants.RedisKeyPrefix + id
	if err := st.client.Del(st.ctx, key).Err(); err != nil {
		log.Printf("Failed to delete transcript from Redis: %v", err)
	}
}

func (st *RedisStore) Close() error {
	st.cancel()
	return st.client.Close()
}
