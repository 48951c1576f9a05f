package continuity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/go-shot-prompt-kit/pkg/domain"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	recordCacheKey       = "continuity"
	cacheCleanupInterval = 10 * time.Minute
)

// Store は継続性レコードの読み書きを担うアクセサです。
// 読み込みは遅延かつ TTL 付きでキャッシュし、更新は Set と Reset からのみ行います。
type Store struct {
	backend   Backend
	cache     *cache.Cache
	loadGroup singleflight.Group
	mu        sync.Mutex // Set / Reset の読み込み→書き込みを直列化します
}

// NewStore は Backend と読み込みキャッシュの TTL から Store を生成します。
// ttl が 0 以下の場合はキャッシュを失効させません。
func NewStore(backend Backend, ttl time.Duration) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend は必須です")
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Store{
		backend: backend,
		cache:   cache.New(ttl, cacheCleanupInterval),
	}, nil
}

// Get は組み込みの既定値とマージ済みの継続性レコードを返します。
// 返り値は複製で、呼び出し側が変更しても Store には影響しません。
func (s *Store) Get(ctx context.Context) (domain.ContinuityRecord, error) {
	if v, ok := s.cache.Get(recordCacheKey); ok {
		if rec, ok := v.(domain.ContinuityRecord); ok {
			return rec.Clone(), nil
		}
	}

	val, err, _ := s.loadGroup.Do(recordCacheKey, func() (interface{}, error) {
		// 待機中に他のゴルーチンが読み込みを終えている可能性があるため、再度キャッシュを確認します
		if v, ok := s.cache.Get(recordCacheKey); ok {
			return v, nil
		}
		rec, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetDefault(recordCacheKey, rec)
		return rec, nil
	})
	if err != nil {
		return domain.ContinuityRecord{}, err
	}

	rec, ok := val.(domain.ContinuityRecord)
	if !ok {
		return domain.ContinuityRecord{}, fmt.Errorf("unexpected return type from singleflight: %T", val)
	}
	return rec.Clone(), nil
}

// Set はパッチを現在のレコードに浅くマージして永続化し、更新後のレコードを返します。
func (s *Store) Set(ctx context.Context, patch domain.ContinuityPatch) (domain.ContinuityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Get(ctx)
	if err != nil {
		return domain.ContinuityRecord{}, err
	}
	merged := current.Merge(patch)

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return domain.ContinuityRecord{}, fmt.Errorf("継続性レコードのエンコードに失敗しました: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return domain.ContinuityRecord{}, err
	}
	s.cache.SetDefault(recordCacheKey, merged.Clone())

	slog.Debug("継続性レコードを更新しました", "background", merged.Background, "wardrobe", merged.Wardrobe)
	return merged, nil
}

// Reset は永続化された状態を消去し、組み込みの既定値を返します。
func (s *Store) Reset(ctx context.Context) (domain.ContinuityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx); err != nil {
		return domain.ContinuityRecord{}, err
	}
	rec := domain.DefaultContinuity()
	s.cache.SetDefault(recordCacheKey, rec.Clone())
	return rec, nil
}

// load は Backend から読み込み、欠けている項目を既定値で補います。
func (s *Store) load(ctx context.Context) (domain.ContinuityRecord, error) {
	rec := domain.DefaultContinuity()

	data, err := s.backend.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return rec, nil
	}
	if err != nil {
		return domain.ContinuityRecord{}, err
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		// デコードできない保存内容は既定値として扱います
		slog.Warn("継続性レコードのデコードに失敗したため既定値を使います", "error", err)
		return domain.DefaultContinuity(), nil
	}
	return rec, nil
}
