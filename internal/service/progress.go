package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/models"
	"github.com/RyoWakabayashi/pm-study/internal/storage"
	"go.uber.org/zap"
)

type StorageI interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ProgressS keeps every exam's progress as one JSON object under a single
// storage key.
type ProgressS struct {
	mu      sync.Mutex
	storage StorageI
	key     string
	log     *zap.Logger
	now     func() time.Time
}

func NewProgressService(storage StorageI, key string, log *zap.Logger) *ProgressS {
	return &ProgressS{
		storage: storage,
		key:     key,
		log:     log,
		now:     time.Now,
	}
}

// SaveProgress replaces the stored entry for examID. When storage is full the
// older half of all entries is dropped and the save is retried once.
func (p *ProgressS) SaveProgress(ctx context.Context, examID string, progress models.Progress) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.save(ctx, examID, progress)
	if err == nil {
		return nil
	}

	if !errors.Is(err, storage.ErrQuotaExceeded) {
		p.log.Warn("failed to save progress", zap.String("exam_id", examID), zap.Error(err))
		return fmt.Errorf("failed to save progress: %w", err)
	}

	p.log.Warn("storage quota exceeded, dropping old progress", zap.String("exam_id", examID))
	p.cleanupOldData(ctx)

	if err := p.save(ctx, examID, progress); err != nil {
		p.log.Error("failed to save progress after cleanup", zap.String("exam_id", examID), zap.Error(err))
		return fmt.Errorf("failed to save progress after cleanup: %w", err)
	}
	return nil
}

func (p *ProgressS) save(ctx context.Context, examID string, progress models.Progress) error {
	all := p.allProgress(ctx)

	progress.LastUpdated = p.now()
	all[examID] = progress

	return p.write(ctx, all)
}

func (p *ProgressS) write(ctx context.Context, all map[string]models.Progress) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}
	return p.storage.Set(ctx, p.key, data)
}

// LoadProgress reports false when the entry is missing or unreadable.
func (p *ProgressS) LoadProgress(ctx context.Context, examID string) (models.Progress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	progress, ok := p.allProgress(ctx)[examID]
	return progress, ok
}

func (p *ProgressS) ClearProgress(ctx context.Context, examID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	all := p.allProgress(ctx)
	if _, ok := all[examID]; !ok {
		return nil
	}

	delete(all, examID)
	if err := p.write(ctx, all); err != nil {
		p.log.Warn("failed to clear progress", zap.String("exam_id", examID), zap.Error(err))
		return fmt.Errorf("failed to clear progress: %w", err)
	}
	return nil
}

func (p *ProgressS) AllProgress(ctx context.Context) map[string]models.Progress {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.allProgress(ctx)
}

// LatestProgress returns the most recently updated entry.
func (p *ProgressS) LatestProgress(ctx context.Context) (string, models.Progress, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		examID string
		latest models.Progress
		found  bool
	)
	for id, progress := range p.allProgress(ctx) {
		if !found || progress.LastUpdated.After(latest.LastUpdated) {
			examID, latest, found = id, progress, true
		}
	}
	return examID, latest, found
}

// allProgress never fails: unreadable storage yields an empty map and
// entries that do not decode are skipped.
func (p *ProgressS) allProgress(ctx context.Context) map[string]models.Progress {
	all := make(map[string]models.Progress)

	data, err := p.storage.Get(ctx, p.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.Warn("failed to read progress", zap.Error(err))
		}
		return all
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		p.log.Warn("stored progress is corrupt", zap.Error(err))
		return all
	}

	for examID, entry := range raw {
		var progress models.Progress
		if err := json.Unmarshal(entry, &progress); err != nil {
			p.log.Warn("skipping corrupt progress entry", zap.String("exam_id", examID), zap.Error(err))
			continue
		}
		all[examID] = progress
	}
	return all
}

// cleanupOldData keeps the newer half of the entries by lastUpdated. If even
// that cannot be written the whole key is removed.
func (p *ProgressS) cleanupOldData(ctx context.Context) {
	all := p.allProgress(ctx)

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := all[ids[i]].LastUpdated, all[ids[j]].LastUpdated
		if a.Equal(b) {
			return ids[i] < ids[j]
		}
		return a.Before(b)
	})

	keep := ids[len(ids)/2:]
	kept := make(map[string]models.Progress, len(keep))
	for _, id := range keep {
		kept[id] = all[id]
	}

	err := p.write(ctx, kept)
	if err == nil {
		p.log.Info("dropped old progress", zap.Int("dropped", len(ids)-len(kept)), zap.Int("kept", len(kept)))
		return
	}

	p.log.Error("failed to write compacted progress, removing all", zap.Error(err))
	if err := p.storage.Delete(ctx, p.key); err != nil {
		p.log.Error("failed to remove progress", zap.Error(err))
	}
}
