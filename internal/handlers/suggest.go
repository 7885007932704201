package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/suggest"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type SuggestHandler struct {
  suggestService suggest.Service
}

func NewSuggestHandler(suggestService suggest.Service) *SuggestHandler {
  return &SuggestHandler{suggestService: suggestService}
}

type analyzeBody struct {
  Message    string       `json:"message"`
  History    []types.Turn `json:"history"`
  ClientSoul soul.Vector  `json:"client_soul"`
}

func (sh *SuggestHandler) Analyze(c *gin.Context) {
  var body analyzeBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  analysis, err := sh.suggestService.AnalyzeMessage(c.Request.Context(), body.Message, body.History, body.ClientSoul)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "suggest_failed", err)
    return
  }
  RespondOK(c, gin.H{"analysis": analysis})
}

type replyBody struct {
  History     []types.Turn `json:"history"`
  ClientSoul  soul.Vector  `json:"client_soul"`
  LastMessage string       `json:"last_message"`
  LastEvent   soul.Event   `json:"last_event"`
}

func (sh *SuggestHandler) Reply(c *gin.Context) {
  var body replyBody
  if err := c.ShouldBindJSON(&body); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  reply, err := sh.suggestService.GenerateReply(c.Request.Context(), body.History, body.ClientSoul, body.LastMessage, body.LastEvent)
  if err != nil {
    RespondError(c, http.StatusBadGateway, "suggest_failed", err)
    return
  }
  RespondOK(c, gin.H{"reply": reply})
}
