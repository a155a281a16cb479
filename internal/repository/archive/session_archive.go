package archive

import (
	"context"
	"encoding/json"
	"time"

	"insightsmith-be/internal/entity"
	"insightsmith-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionArchive mirrors session snapshots into an externally-owned
// key-value store. The mirror is best-effort: the in-memory store is the
// source of truth and every archive failure is logged and swallowed.
type SessionArchive struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewSessionArchive(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *SessionArchive {
	return &SessionArchive{rdb: rdb, ttl: ttl, logger: log}
}

func (a *SessionArchive) key(sessionId uuid.UUID) string {
	return "session:" + sessionId.String()
}

// Save writes the latest snapshot. No-op when redis is unavailable.
func (a *SessionArchive) Save(ctx context.Context, session *entity.Session) {
	if a == nil || a.rdb == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		a.logger.Warn("SessionArchive", "Failed to marshal session snapshot", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return
	}
	if err := a.rdb.Set(ctx, a.key(session.Id), data, a.ttl).Err(); err != nil {
		a.logger.Warn("SessionArchive", "Failed to archive session snapshot", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

// Delete drops the archived snapshot. No-op when redis is unavailable.
func (a *SessionArchive) Delete(ctx context.Context, sessionId uuid.UUID) {
	if a == nil || a.rdb == nil {
		return
	}
	if err := a.rdb.Del(ctx, a.key(sessionId)).Err(); err != nil {
		a.logger.Warn("SessionArchive", "Failed to delete archived session", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}
