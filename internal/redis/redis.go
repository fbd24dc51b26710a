package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/igini-labs/chulseok/internal/model"
)

var Rdb *redis.Client

// sheet header reads are slow and headers rarely change
const columnCacheTTL = 10 * time.Minute

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func columnCacheKey(workspace, sheetKind string) string {
	return fmt.Sprintf("sheet_columns:%s:%s", workspace, sheetKind)
}

// caches the column choices read from a sheet header.
func SetColumnChoices(ctx context.Context, workspace, sheetKind string, choices []model.ColumnChoice) {
	if Rdb == nil {
		return
	}
	payload, err := json.Marshal(choices)
	if err != nil {
		return
	}
	if err := Rdb.Set(ctx, columnCacheKey(workspace, sheetKind), payload, columnCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("workspace", workspace).Msg("failed to cache column choices")
	}
}

// fetches cached column choices. Returns false on miss or any error so
// callers fall through to the live sheet read.
func GetColumnChoices(ctx context.Context, workspace, sheetKind string) ([]model.ColumnChoice, bool) {
	if Rdb == nil {
		return nil, false
	}
	payload, err := Rdb.Get(ctx, columnCacheKey(workspace, sheetKind)).Bytes()
	if err != nil {
		return nil, false
	}
	var choices []model.ColumnChoice
	if err := json.Unmarshal(payload, &choices); err != nil {
		return nil, false
	}
	return choices, true
}

// drops cached columns for a workspace, both sheet kinds.
func InvalidateColumnChoices(ctx context.Context, workspace string) {
	if Rdb == nil {
		return
	}
	for _, kind := range []string{"attendance", "assignment"} {
		if err := Rdb.Del(ctx, columnCacheKey(workspace, kind)).Err(); err != nil {
			log.Warn().Err(err).Str("workspace", workspace).Msg("failed to invalidate column cache")
		}
	}
}
