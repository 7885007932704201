package services

import (
  "context"
  "fmt"
  "testing"

  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/repos"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type fixture struct {
  db                  *gorm.DB
  clientService       ClientService
  conversationService ConversationService
  providerService     ProviderService
  reportService       ReportService
}

func newFixture(t *testing.T) *fixture {
  t.Helper()

  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  if err := db.AutoMigrate(&types.Provider{}, &types.Client{}, &types.Conversation{}); err != nil {
    t.Fatalf("migrate: %v", err)
  }

  log := logger.NewNop()
  clientRepo := repos.NewClientRepo(db, log)
  conversationRepo := repos.NewConversationRepo(db, log)
  providerRepo := repos.NewProviderRepo(db, log)

  return &fixture{
    db:                  db,
    clientService:       NewClientService(db, log, clientRepo),
    conversationService: NewConversationService(db, log, conversationRepo, clientRepo, nil),
    providerService:     NewProviderService(db, log, providerRepo),
    reportService:       NewReportService(db, log, clientRepo, conversationRepo),
  }
}

func (f *fixture) createClient(t *testing.T, name string, debt float64, values soul.Values) *types.Client {
  t.Helper()
  client, err := f.clientService.Create(context.Background(), CreateClientInput{
    Name: name,
    Debt: debt,
    Soul: values,
  })
  if err != nil {
    t.Fatalf("create client %q: %v", name, err)
  }
  return client
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }
