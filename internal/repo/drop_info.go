package repo

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/uptrace/bun"

	"github.com/dropstats/backend/internal/model"
)

type DropInfo struct {
	DB *bun.DB

	// stageCache holds all drop infos per (server, stage); the opening
	// window is re-evaluated per lookup since it depends on the report's
	// timestamp, not on wall time.
	stageCache *cache.Cache
}

func NewDropInfo(db *bun.DB) *DropInfo {
	return &DropInfo{
		DB:         db,
		stageCache: cache.New(5*time.Minute, time.Hour),
	}
}

func (s *DropInfo) GetDropInfosByServerAndStageID(ctx context.Context, server string, stageId string) ([]*model.DropInfo, error) {
	key := server + "|" + stageId
	if cached, ok := s.stageCache.Get(key); ok {
		return cached.([]*model.DropInfo), nil
	}

	dropInfos := make([]*model.DropInfo, 0)
	err := s.DB.NewSelect().
		Model(&dropInfos).
		Where("di.server = ?", server).
		Where("di.stage_id = ?", stageId).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	s.stageCache.SetDefault(key, dropInfos)
	return dropInfos, nil
}

// GetOpenDropInfos returns the drop infos whose opening window contains
// timestamp for the given server and stage, grouped by drop type. An empty
// map means the stage was not open at that time.
func (s *DropInfo) GetOpenDropInfos(ctx context.Context, server string, stageId string, timestamp int64) (map[string][]*model.DropInfo, error) {
	dropInfos, err := s.GetDropInfosByServerAndStageID(ctx, server, stageId)
	if err != nil {
		return nil, err
	}

	open := lo.Filter(dropInfos, func(info *model.DropInfo, _ int) bool {
		return info.Open(timestamp)
	})

	return lo.GroupBy(open, func(info *model.DropInfo) string {
		return info.DropType
	}), nil
}
