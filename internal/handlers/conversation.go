package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/acriventas/cobranza-backend/internal/services"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type ConversationHandler struct {
  conversationService services.ConversationService
}

func NewConversationHandler(conversationService services.ConversationService) *ConversationHandler {
  return &ConversationHandler{conversationService: conversationService}
}

type createConversationBody struct {
  ClientID    uuid.UUID    `json:"client_id"`
  AgentID     uuid.UUID    `json:"agent_id"`
  InitialSoul *soul.Vector `json:"initial_soul"`
}

func (ch *ConversationHandler) Create(c *gin.Context) {
  var body createConversationBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  conversation, err := ch.conversationService.Create(c.Request.Context(), body.ClientID, body.AgentID, body.InitialSoul)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"conversation": conversation})
}

func (ch *ConversationHandler) Get(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  conversation, err := ch.conversationService.GetDetails(c.Request.Context(), conversationID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"conversation": conversation})
}

func (ch *ConversationHandler) AppendTurn(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var in services.TurnInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  result, err := ch.conversationService.AppendLiveTurn(c.Request.Context(), conversationID, in)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"result": result})
}

func (ch *ConversationHandler) AppendManualTurn(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var in services.ManualTurnInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  result, err := ch.conversationService.AppendManualTurn(c.Request.Context(), conversationID, in)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"result": result})
}

func (ch *ConversationHandler) EditTurn(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  turnID, err := uuid.Parse(c.Param("turnId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_turn_id", err)
    return
  }
  var patch services.TurnPatch
  if err := c.ShouldBindJSON(&patch); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  turns, err := ch.conversationService.EditTurn(c.Request.Context(), conversationID, turnID, patch)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"turns": turns})
}

func (ch *ConversationHandler) DeleteTurn(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  turnID, err := uuid.Parse(c.Param("turnId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_turn_id", err)
    return
  }
  turns, err := ch.conversationService.DeleteTurn(c.Request.Context(), conversationID, turnID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"turns": turns})
}

func (ch *ConversationHandler) Close(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var summary types.Summary
  if err := c.ShouldBindJSON(&summary); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ch.conversationService.Close(c.Request.Context(), conversationID, summary); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"closed": true})
}

type updateStatusBody struct {
  Status   string `json:"status"`
  IsActive bool   `json:"is_active"`
}

func (ch *ConversationHandler) UpdateStatus(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var body updateStatusBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  if err := ch.conversationService.UpdateStatus(c.Request.Context(), conversationID, body.Status, body.IsActive); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"updated": true})
}

func (ch *ConversationHandler) ToggleActive(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  conversation, err := ch.conversationService.ToggleActive(c.Request.Context(), conversationID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"conversation": conversation})
}

func (ch *ConversationHandler) SetSoul(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var values soul.Values
  if err := c.ShouldBindJSON(&values); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  updated, err := ch.conversationService.SetSoul(c.Request.Context(), conversationID, values)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"soul": updated})
}

func (ch *ConversationHandler) Delete(c *gin.Context) {
  conversationID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := ch.conversationService.Delete(c.Request.Context(), conversationID); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}

// List serves the inbox views. Filters combine: status picks the bucket,
// client_id and agent_id narrow it.
func (ch *ConversationHandler) List(c *gin.Context) {
  ctx := c.Request.Context()
  limit := 0
  var agentID *uuid.UUID
  if raw := c.Query("agent_id"); raw != "" {
    parsed, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_agent_id", err)
      return
    }
    agentID = &parsed
  }

  if raw := c.Query("client_id"); raw != "" {
    clientID, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_client_id", err)
      return
    }
    var (
      conversations []*types.Conversation
      listErr       error
    )
    if c.Query("status") == "active" {
      conversations, listErr = ch.conversationService.ListActiveByClient(ctx, clientID)
    } else {
      conversations, listErr = ch.conversationService.ListByClient(ctx, clientID, limit)
    }
    if listErr != nil {
      RespondServiceError(c, listErr)
      return
    }
    RespondOK(c, gin.H{"conversations": conversations})
    return
  }

  var (
    conversations []*types.Conversation
    err           error
  )
  switch c.Query("status") {
  case "new":
    conversations, err = ch.conversationService.ListNew(ctx, agentID, limit)
  case "active":
    conversations, err = ch.conversationService.ListActive(ctx, agentID, limit)
  case "closed":
    conversations, err = ch.conversationService.ListClosed(ctx, agentID, limit)
  case "upcoming":
    conversations, err = ch.conversationService.ListUpcoming(ctx, limit)
  default:
    conversations, err = ch.conversationService.ListActive(ctx, agentID, limit)
  }
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"conversations": conversations})
}
