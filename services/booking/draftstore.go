package booking

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"rently/models"
	"rently/utils"
)

// DraftStore stages booking-wizard state between page transitions. Absent
// drafts are reported as (nil, nil) — "no draft yet" is never an error.
// Storage failures are logged and swallowed so a broken medium degrades to an
// empty wizard instead of a crash.
type DraftStore interface {
	Get(ctx context.Context, sessionID string) (*models.BookingDraft, error)
	Set(ctx context.Context, sessionID string, draft models.BookingDraft) error
	GetStep(ctx context.Context, sessionID, stepKey string) (map[string]any, error)
	UpdateStep(ctx context.Context, sessionID, stepKey string, partial map[string]any) (*models.BookingDraft, error)
	Clear(ctx context.Context, sessionID string) error
}

// RedisDraftStore keeps one draft per session under a single key. Drafts have
// no TTL: they are cleared explicitly after submission or abandoned.
type RedisDraftStore struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisDraftStore(client *redis.Client, logger *zap.Logger) *RedisDraftStore {
	return &RedisDraftStore{Client: client, Logger: logger}
}

func (s *RedisDraftStore) key(sessionID string) string {
	return utils.DraftKeyPrefix + sessionID
}

func (s *RedisDraftStore) Get(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.Logger.Warn("draft store unavailable, treating as empty",
			zap.String("session", sessionID), zap.Error(err))
		return nil, nil
	}
	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		s.Logger.Warn("corrupt draft discarded",
			zap.String("session", sessionID), zap.Error(err))
		return nil, nil
	}
	return &draft, nil
}

func (s *RedisDraftStore) Set(ctx context.Context, sessionID string, draft models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		s.Logger.Error("failed to encode draft", zap.String("session", sessionID), zap.Error(err))
		return nil
	}
	if err := s.Client.Set(ctx, s.key(sessionID), data, 0).Err(); err != nil {
		s.Logger.Error("failed to persist draft", zap.String("session", sessionID), zap.Error(err))
	}
	return nil
}

func (s *RedisDraftStore) GetStep(ctx context.Context, sessionID, stepKey string) (map[string]any, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil || draft == nil {
		return nil, err
	}
	rec, err := stepRecord(draft, stepKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStep is a single read-modify-write: read the current draft, merge the
// partial into the step sub-record, stamp lastUpdated, write back.
func (s *RedisDraftStore) UpdateStep(ctx context.Context, sessionID, stepKey string, partial map[string]any) (*models.BookingDraft, error) {
	cur, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	base := models.BookingDraft{}
	if cur != nil {
		base = *cur
	}
	merged, err := MergeStep(base, stepKey, partial)
	if err != nil {
		return nil, err
	}
	merged.LastUpdated = time.Now()
	if err := s.Set(ctx, sessionID, merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		s.Logger.Warn("failed to clear draft", zap.String("session", sessionID), zap.Error(err))
	}
	return nil
}

// MemoryDraftStore is the in-process implementation used by tests and by
// single-node development setups without Redis.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *MemoryDraftStore) Get(ctx context.Context, sessionID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := clone(draft)
	return &copied, nil
}

func (s *MemoryDraftStore) Set(ctx context.Context, sessionID string, draft models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = clone(draft)
	return nil
}

func (s *MemoryDraftStore) GetStep(ctx context.Context, sessionID, stepKey string) (map[string]any, error) {
	draft, err := s.Get(ctx, sessionID)
	if err != nil || draft == nil {
		return nil, err
	}
	rec, err := stepRecord(draft, stepKey)
	if err != nil || rec == nil {
		return nil, err
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MemoryDraftStore) UpdateStep(ctx context.Context, sessionID, stepKey string, partial map[string]any) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, err := MergeStep(s.drafts[sessionID], stepKey, partial)
	if err != nil {
		return nil, err
	}
	merged.LastUpdated = time.Now()
	s.drafts[sessionID] = merged
	copied := clone(merged)
	return &copied, nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

// clone deep-copies a draft through JSON so callers never alias stored state.
func clone(draft models.BookingDraft) models.BookingDraft {
	raw, err := json.Marshal(draft)
	if err != nil {
		return draft
	}
	var out models.BookingDraft
	if err := json.Unmarshal(raw, &out); err != nil {
		return draft
	}
	out.LastUpdated = draft.LastUpdated
	return out
}
