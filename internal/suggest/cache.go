package suggest

import (
  "context"
  "crypto/sha256"
  "encoding/hex"
  "encoding/json"
  "fmt"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

const cacheTTL = 15 * time.Minute

// cachedService memoizes analyses in redis. The same message against the
// same profile classifies identically, and agents frequently re-open a
// conversation right after closing the tab. Replies are not cached; they
// are tone- and history-dependent and cheap to regenerate locally.
type cachedService struct {
  log   *logger.Logger
  rdb   *goredis.Client
  inner Service
}

func NewCached(log *logger.Logger, rdb *goredis.Client, inner Service) Service {
  return &cachedService{
    log:   log.With("service", "CachedSuggest"),
    rdb:   rdb,
    inner: inner,
  }
}

func (cs *cachedService) AnalyzeMessage(ctx context.Context, message string, history []types.Turn, clientSoul soul.Vector) (*Analysis, error) {
  key := analysisKey(message, clientSoul)

  raw, err := cs.rdb.Get(ctx, key).Result()
  if err == nil {
    var cached Analysis
    if uErr := json.Unmarshal([]byte(raw), &cached); uErr == nil {
      cs.log.Debug("Analysis cache hit", "key", key)
      return &cached, nil
    }
  } else if err != goredis.Nil {
    cs.log.Warn("Analysis cache read failed", "error", err)
  }

  analysis, err := cs.inner.AnalyzeMessage(ctx, message, history, clientSoul)
  if err != nil {
    return nil, err
  }

  if encoded, mErr := json.Marshal(analysis); mErr == nil {
    if sErr := cs.rdb.Set(ctx, key, encoded, cacheTTL).Err(); sErr != nil {
      cs.log.Warn("Analysis cache write failed", "error", sErr)
    }
  }
  return analysis, nil
}

func (cs *cachedService) GenerateReply(ctx context.Context, history []types.Turn, clientSoul soul.Vector, lastMessage string, lastEvent soul.Event) (*Reply, error) {
  return cs.inner.GenerateReply(ctx, history, clientSoul, lastMessage, lastEvent)
}

func analysisKey(message string, v soul.Vector) string {
  sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%d|%d|%d",
    message, v.Relationship, v.History, v.Attitude, v.Sensitivity, v.Probability)))
  return "suggest:analysis:" + hex.EncodeToString(sum[:16])
}
