package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/acriventas/cobranza-backend/internal/db"
  "github.com/acriventas/cobranza-backend/internal/handlers"
  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/repos"
  "github.com/acriventas/cobranza-backend/internal/server"
  "github.com/acriventas/cobranza-backend/internal/services"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/suggest"
  "github.com/acriventas/cobranza-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Delta table, defaults plus optional YAML override
  deltaTable := soul.DefaultTable()
  if path := utils.GetEnv("DELTA_TABLE_PATH", "", log); path != "" {
    f, err := os.Open(path)
    if err != nil {
      log.Error("Could not open delta table override", "path", path, "error", err)
      os.Exit(1)
    }
    deltaTable, err = soul.LoadTable(f)
    _ = f.Close()
    if err != nil {
      log.Error("Could not parse delta table override", "path", path, "error", err)
      os.Exit(1)
    }
    log.Info("Delta table override loaded", "path", path)
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  clientRepo := repos.NewClientRepo(thePG, log)
  conversationRepo := repos.NewConversationRepo(thePG, log)
  providerRepo := repos.NewProviderRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  clientService := services.NewClientService(thePG, log, clientRepo)
  conversationService := services.NewConversationService(thePG, log, conversationRepo, clientRepo, deltaTable)
  providerService := services.NewProviderService(thePG, log, providerRepo)
  reportService := services.NewReportService(thePG, log, clientRepo, conversationRepo)
  suggestService := suggest.New(log, deltaTable)

  // Handlers
  log.Info("Setting up handlers from main...")
  clientHandler := handlers.NewClientHandler(clientService)
  conversationHandler := handlers.NewConversationHandler(conversationService)
  providerHandler := handlers.NewProviderHandler(providerService)
  suggestHandler := handlers.NewSuggestHandler(suggestService)
  reportHandler := handlers.NewReportHandler(reportService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    ClientHandler:       clientHandler,
    ConversationHandler: conversationHandler,
    ProviderHandler:     providerHandler,
    SuggestHandler:      suggestHandler,
    ReportHandler:       reportHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
