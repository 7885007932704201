package suggest

import (
  "context"
  "testing"

  "github.com/alicebob/miniredis/v2"
  goredis "github.com/redis/go-redis/v9"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type countingService struct {
  inner    Service
  analyzed int
  replied  int
}

func (c *countingService) AnalyzeMessage(ctx context.Context, message string, history []types.Turn, clientSoul soul.Vector) (*Analysis, error) {
  c.analyzed++
  return c.inner.AnalyzeMessage(ctx, message, history, clientSoul)
}

func (c *countingService) GenerateReply(ctx context.Context, history []types.Turn, clientSoul soul.Vector, lastMessage string, lastEvent soul.Event) (*Reply, error) {
  c.replied++
  return c.inner.GenerateReply(ctx, history, clientSoul, lastMessage, lastEvent)
}

func newCacheFixture(t *testing.T) (Service, *countingService) {
  t.Helper()
  mr := miniredis.RunT(t)
  rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
  t.Cleanup(func() { _ = rdb.Close() })

  counting := &countingService{inner: NewLocal(logger.NewNop(), nil)}
  return NewCached(logger.NewNop(), rdb, counting), counting
}

func TestCachedAnalyzeHitsOnce(t *testing.T) {
  svc, counting := newCacheFixture(t)
  ctx := context.Background()
  v := soul.Default()

  first, err := svc.AnalyzeMessage(ctx, "voy a pagar todo", nil, v)
  if err != nil {
    t.Fatalf("first AnalyzeMessage: %v", err)
  }
  second, err := svc.AnalyzeMessage(ctx, "voy a pagar todo", nil, v)
  if err != nil {
    t.Fatalf("second AnalyzeMessage: %v", err)
  }

  if counting.analyzed != 1 {
    t.Errorf("inner analyzed %d times, want 1", counting.analyzed)
  }
  if first.Event != second.Event || first.Deltas != second.Deltas {
    t.Errorf("cached analysis differs: %+v vs %+v", first, second)
  }
}

func TestCachedAnalyzeKeyedBySoul(t *testing.T) {
  svc, counting := newCacheFixture(t)
  ctx := context.Background()

  if _, err := svc.AnalyzeMessage(ctx, "no puedo", nil, soul.Default()); err != nil {
    t.Fatalf("AnalyzeMessage: %v", err)
  }
  other := soul.Vector{Relationship: 90, History: 10, Attitude: 10, Sensitivity: 10, Probability: 10}
  if _, err := svc.AnalyzeMessage(ctx, "no puedo", nil, other); err != nil {
    t.Fatalf("AnalyzeMessage: %v", err)
  }

  if counting.analyzed != 2 {
    t.Errorf("inner analyzed %d times, want 2 (different profiles must not share entries)", counting.analyzed)
  }
}

func TestCachedReplyNotCached(t *testing.T) {
  svc, counting := newCacheFixture(t)
  ctx := context.Background()

  for i := 0; i < 2; i++ {
    if _, err := svc.GenerateReply(ctx, nil, soul.Default(), "hola", soul.EventNeutral); err != nil {
      t.Fatalf("GenerateReply: %v", err)
    }
  }
  if counting.replied != 2 {
    t.Errorf("inner replied %d times, want 2", counting.replied)
  }
}
