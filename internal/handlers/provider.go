package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/acriventas/cobranza-backend/internal/services"
)

type ProviderHandler struct {
  providerService services.ProviderService
}

func NewProviderHandler(providerService services.ProviderService) *ProviderHandler {
  return &ProviderHandler{providerService: providerService}
}

func (ph *ProviderHandler) Create(c *gin.Context) {
  var in services.ProviderInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  provider, err := ph.providerService.Create(c.Request.Context(), in)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"provider": provider})
}

func (ph *ProviderHandler) Get(c *gin.Context) {
  providerID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  provider, err := ph.providerService.Get(c.Request.Context(), providerID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"provider": provider})
}

func (ph *ProviderHandler) List(c *gin.Context) {
  providers, err := ph.providerService.List(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"providers": providers})
}

func (ph *ProviderHandler) Update(c *gin.Context) {
  providerID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var in services.UpdateProviderInput
  if err := c.ShouldBindJSON(&in); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  provider, err := ph.providerService.Update(c.Request.Context(), providerID, in)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"provider": provider})
}
