package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/acriventas/cobranza-backend/internal/services"
  "github.com/acriventas/cobranza-backend/internal/soul"
)

type ClientHandler struct {
  clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
  return &ClientHandler{clientService: clientService}
}

func (ch *ClientHandler) Create(c *gin.Context) {
  var in services.CreateClientInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  client, err := ch.clientService.Create(c.Request.Context(), in)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"client": client})
}

func (ch *ClientHandler) Get(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  client, err := ch.clientService.Get(c.Request.Context(), clientID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"client": client})
}

func (ch *ClientHandler) List(c *gin.Context) {
  if search := c.Query("search"); search != "" {
    clients, err := ch.clientService.Search(c.Request.Context(), search)
    if err != nil {
      RespondServiceError(c, err)
      return
    }
    RespondOK(c, gin.H{"clients": clients})
    return
  }
  clients, err := ch.clientService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"clients": clients})
}

func (ch *ClientHandler) Update(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var in services.UpdateClientInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  client, err := ch.clientService.Update(c.Request.Context(), clientID, in)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"client": client})
}

func (ch *ClientHandler) ApplySoulDelta(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var delta soul.Delta
  if err := c.ShouldBindJSON(&delta); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  updated, err := ch.clientService.ApplySoulDelta(c.Request.Context(), clientID, delta)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"soul": updated})
}

func (ch *ClientHandler) SetSoul(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var values soul.Values
  if err := c.ShouldBindJSON(&values); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  updated, err := ch.clientService.SetSoul(c.Request.Context(), clientID, values)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"soul": updated})
}

func (ch *ClientHandler) ListDebtors(c *gin.Context) {
  minDebt := 0.0
  clients, err := ch.clientService.ListDebtors(c.Request.Context(), minDebt)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"clients": clients})
}

type registerPaymentBody struct {
  NewDebt float64                `json:"new_debt"`
  Payment *services.PaymentInput `json:"payment"`
}

func (ch *ClientHandler) RegisterPayment(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var body registerPaymentBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  result, err := ch.clientService.RegisterPayment(c.Request.Context(), clientID, body.NewDebt, body.Payment)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"result": result})
}

func (ch *ClientHandler) PaymentHistory(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  history, err := ch.clientService.PaymentHistory(c.Request.Context(), clientID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"payments": history})
}

func (ch *ClientHandler) PaymentStats(c *gin.Context) {
  clientID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  stats, err := ch.clientService.PaymentStats(c.Request.Context(), clientID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"stats": stats})
}
