package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/acriventas/cobranza-backend/internal/handlers"
)

type RouterConfig struct {
  ClientHandler       *handlers.ClientHandler
  ConversationHandler *handlers.ConversationHandler
  ProviderHandler     *handlers.ProviderHandler
  SuggestHandler      *handlers.SuggestHandler
  ReportHandler       *handlers.ReportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Clients
    api.POST("/clients", cfg.ClientHandler.Create)
    api.GET("/clients", cfg.ClientHandler.List)
    api.GET("/clients/debtors", cfg.ClientHandler.ListDebtors)
    api.GET("/clients/:id", cfg.ClientHandler.Get)
    api.PATCH("/clients/:id", cfg.ClientHandler.Update)
    api.POST("/clients/:id/soul/delta", cfg.ClientHandler.ApplySoulDelta)
    api.PUT("/clients/:id/soul", cfg.ClientHandler.SetSoul)
    api.POST("/clients/:id/payments", cfg.ClientHandler.RegisterPayment)
    api.GET("/clients/:id/payments", cfg.ClientHandler.PaymentHistory)
    api.GET("/clients/:id/payments/stats", cfg.ClientHandler.PaymentStats)

    // Conversations
    api.POST("/conversations", cfg.ConversationHandler.Create)
    api.GET("/conversations", cfg.ConversationHandler.List)
    api.GET("/conversations/:id", cfg.ConversationHandler.Get)
    api.DELETE("/conversations/:id", cfg.ConversationHandler.Delete)
    api.POST("/conversations/:id/turns", cfg.ConversationHandler.AppendTurn)
    api.POST("/conversations/:id/turns/manual", cfg.ConversationHandler.AppendManualTurn)
    api.PATCH("/conversations/:id/turns/:turnId", cfg.ConversationHandler.EditTurn)
    api.DELETE("/conversations/:id/turns/:turnId", cfg.ConversationHandler.DeleteTurn)
    api.POST("/conversations/:id/close", cfg.ConversationHandler.Close)
    api.PUT("/conversations/:id/status", cfg.ConversationHandler.UpdateStatus)
    api.POST("/conversations/:id/toggle-active", cfg.ConversationHandler.ToggleActive)
    api.PUT("/conversations/:id/soul", cfg.ConversationHandler.SetSoul)

    // Providers
    api.POST("/providers", cfg.ProviderHandler.Create)
    api.GET("/providers", cfg.ProviderHandler.List)
    api.GET("/providers/:id", cfg.ProviderHandler.Get)
    api.PATCH("/providers/:id", cfg.ProviderHandler.Update)

    // Suggestions
    api.POST("/suggest/analyze", cfg.SuggestHandler.Analyze)
    api.POST("/suggest/reply", cfg.SuggestHandler.Reply)

    // Reports
    api.GET("/reports/overview", cfg.ReportHandler.Overview)
  }

  return router
}
