package suggest

import (
  "context"
  "strings"
  "time"

  goredis "github.com/redis/go-redis/v9"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/utils"
)

// New selects the suggestion backend from AI_SERVICE ("local" or "openai")
// and wraps it in a redis cache when REDIS_ADDR is set. Misconfiguration
// degrades to the local analyzer; suggestions are advisory and must never
// keep the service from starting.
func New(log *logger.Logger, deltaTable soul.Table) Service {
  backend := strings.ToLower(utils.GetEnv("AI_SERVICE", "local", log))

  var svc Service
  switch backend {
  case "openai":
    openaiSvc, err := NewOpenAI(log, deltaTable)
    if err != nil {
      log.Warn("OpenAI suggest backend unavailable, falling back to local", "error", err)
      svc = NewLocal(log, deltaTable)
    } else {
      svc = openaiSvc
    }
  default:
    svc = NewLocal(log, deltaTable)
  }

  addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
  if addr == "" {
    return svc
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })
  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    log.Warn("Redis unavailable, suggestion cache disabled", "addr", addr, "error", err)
    _ = rdb.Close()
    return svc
  }

  log.Info("Suggestion cache enabled", "addr", addr)
  return NewCached(log, rdb, svc)
}
