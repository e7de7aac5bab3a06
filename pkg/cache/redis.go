package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/katzAmit/Flashcards-backend/internal/models"
)

// Generated quizzes are not persisted until they are submitted, so the cache
// is their only home in between. Stats are cached per user and dropped
// whenever a submission changes the history they are derived from.
const (
	quizTTL  = 24 * time.Hour
	statsTTL = time.Hour
)

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func (c *RedisCache) SetQuiz(username string, quiz *models.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return err
	}

	key := "quiz:" + username + ":" + quiz.ID
	return c.client.Set(c.ctx, key, data, quizTTL).Err()
}

func (c *RedisCache) GetQuiz(username, quizID string) (*models.Quiz, error) {
	key := "quiz:" + username + ":" + quizID
	data, err := c.client.Get(c.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var quiz models.Quiz
	err = json.Unmarshal(data, &quiz)
	return &quiz, err
}

func (c *RedisCache) DeleteQuiz(username, quizID string) error {
	key := "quiz:" + username + ":" + quizID
	return c.client.Del(c.ctx, key).Err()
}

func (c *RedisCache) SetStats(username string, stats []interface{}) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	key := "stats:" + username
	return c.client.Set(c.ctx, key, data, statsTTL).Err()
}

func (c *RedisCache) GetStats(username string) ([]interface{}, error) {
	key := "stats:" + username
	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var stats []interface{}
	err = json.Unmarshal(data, &stats)
	return stats, err
}

func (c *RedisCache) InvalidateStats(username string) error {
	return c.client.Del(c.ctx, "stats:"+username).Err()
}
