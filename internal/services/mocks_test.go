package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/driver-quiz-service/internal/cache"
	"github.com/SAP-F-2025/driver-quiz-service/internal/events"
	"github.com/SAP-F-2025/driver-quiz-service/internal/models"
	"github.com/SAP-F-2025/driver-quiz-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
	drivers   *mockDriverRepository
	sessions  *mockQuizSessionRepository
	responses *mockQuizResponseRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		drivers:   new(mockDriverRepository),
		sessions:  new(mockQuizSessionRepository),
		responses: new(mockQuizResponseRepository),
	}
}

func (m *mockRepository) Driver() repositories.DriverRepository             { return m.drivers }
func (m *mockRepository) QuizSession() repositories.QuizSessionRepository   { return m.sessions }
func (m *mockRepository) QuizResponse() repositories.QuizResponseRepository { return m.responses }

type mockDriverRepository struct {
	mock.Mock
}

func (m *mockDriverRepository) GetByID(ctx context.Context, id uint) (*models.Driver, error) {
	args := m.Called(ctx, id)
	driver, _ := args.Get(0).(*models.Driver)
	return driver, args.Error(1)
}

type mockQuizSessionRepository struct {
	mock.Mock
}

func (m *mockQuizSessionRepository) LoadSessions(ctx context.Context, filter repositories.AnalyticsFilter) ([]*models.QuizSession, error) {
	args := m.Called(ctx, filter)
	sessions, _ := args.Get(0).([]*models.QuizSession)
	return sessions, args.Error(1)
}

type mockQuizResponseRepository struct {
	mock.Mock
}

func (m *mockQuizResponseRepository) LoadResponses(ctx context.Context, sessionIDs []uint) ([]*models.QuizResponse, error) {
	args := m.Called(ctx, sessionIDs)
	responses, _ := args.Get(0).([]*models.QuizResponse)
	return responses, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishAnalyticsEvent(ctx context.Context, event *events.AnalyticsEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}

// memoryCache is a JSON round-tripping in-memory cache.CacheService
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = data
	return nil
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.items[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// DeletePattern supports only trailing-star prefix patterns
func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	return nil
}

type failingCache struct {
	err error
}

func (f failingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return f.err
}

func (f failingCache) Get(ctx context.Context, key string, dest interface{}) error {
	return f.err
}

func (f failingCache) Delete(ctx context.Context, key string) error {
	return f.err
}

func (f failingCache) DeletePattern(ctx context.Context, pattern string) error {
	return f.err
}

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
