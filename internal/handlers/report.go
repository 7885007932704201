package handlers

import (
  "github.com/gin-gonic/gin"

  "github.com/acriventas/cobranza-backend/internal/services"
)

type ReportHandler struct {
  reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
  return &ReportHandler{reportService: reportService}
}

func (rh *ReportHandler) Overview(c *gin.Context) {
  overview, err := rh.reportService.Overview(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"overview": overview})
}
