package handlers

import (
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "strings"
  "testing"

  "github.com/gin-gonic/gin"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/services"
  "github.com/acriventas/cobranza-backend/internal/suggest"
)

func init() {
  gin.SetMode(gin.TestMode)
}

func TestRespondServiceErrorMapping(t *testing.T) {
  tests := []struct {
    name       string
    err        error
    wantStatus int
    wantCode   string
  }{
    {"not found", services.ErrNotFound, http.StatusNotFound, "not_found"},
    {"validation", services.ErrValidation, http.StatusBadRequest, "validation_failed"},
    {"anything else", assert.AnError, http.StatusInternalServerError, "internal_error"},
  }

  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      w := httptest.NewRecorder()
      c, _ := gin.CreateTestContext(w)

      RespondServiceError(c, tt.err)

      assert.Equal(t, tt.wantStatus, w.Code)
      var envelope ErrorEnvelope
      require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
      assert.Equal(t, tt.wantCode, envelope.Error.Code)
    })
  }
}

func newSuggestRouter(t *testing.T) *gin.Engine {
  t.Helper()
  handler := NewSuggestHandler(suggest.NewLocal(logger.NewNop(), nil))
  router := gin.New()
  router.POST("/api/suggest/analyze", handler.Analyze)
  router.POST("/api/suggest/reply", handler.Reply)
  return router
}

func TestSuggestAnalyzeEndpoint(t *testing.T) {
  router := newSuggestRouter(t)

  body := `{
    "message": "voy a pagar todo mañana",
    "client_soul": {"relationship":50,"history":50,"attitude":50,"sensitivity":50,"probability":50}
  }`
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodPost, "/api/suggest/analyze", strings.NewReader(body))
  req.Header.Set("Content-Type", "application/json")
  router.ServeHTTP(w, req)

  require.Equal(t, http.StatusOK, w.Code)
  var resp struct {
    Analysis suggest.Analysis `json:"analysis"`
  }
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
  assert.Equal(t, "accepts_payment", string(resp.Analysis.Event))
  assert.Equal(t, 20, resp.Analysis.Deltas.Probability)
}

func TestSuggestAnalyzeRejectsBadBody(t *testing.T) {
  router := newSuggestRouter(t)

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodPost, "/api/suggest/analyze", strings.NewReader("{not json"))
  req.Header.Set("Content-Type", "application/json")
  router.ServeHTTP(w, req)

  assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestReplyEndpoint(t *testing.T) {
  router := newSuggestRouter(t)

  body := `{
    "client_soul": {"relationship":85,"history":50,"attitude":50,"sensitivity":30,"probability":50},
    "last_message": "voy a pagar todo",
    "last_event": "accepts_payment"
  }`
  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodPost, "/api/suggest/reply", strings.NewReader(body))
  req.Header.Set("Content-Type", "application/json")
  router.ServeHTTP(w, req)

  require.Equal(t, http.StatusOK, w.Code)
  var resp struct {
    Reply suggest.Reply `json:"reply"`
  }
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
  assert.Equal(t, suggest.ToneFriendly, resp.Reply.Tone)
  assert.NotEmpty(t, resp.Reply.Text)
}

func TestClientHandlerRejectsBadID(t *testing.T) {
  handler := NewClientHandler(nil)
  router := gin.New()
  router.GET("/api/clients/:id", handler.Get)

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodGet, "/api/clients/not-a-uuid", nil)
  router.ServeHTTP(w, req)

  assert.Equal(t, http.StatusBadRequest, w.Code)
  var envelope ErrorEnvelope
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
  assert.Equal(t, "invalid_id", envelope.Error.Code)
}

func TestConversationHandlerRejectsBadTurnID(t *testing.T) {
  handler := NewConversationHandler(nil)
  router := gin.New()
  router.PATCH("/api/conversations/:id/turns/:turnId", handler.EditTurn)

  w := httptest.NewRecorder()
  req := httptest.NewRequest(http.MethodPatch,
    "/api/conversations/6ba7b810-9dad-11d1-80b4-00c04fd430c8/turns/nope", strings.NewReader("{}"))
  req.Header.Set("Content-Type", "application/json")
  router.ServeHTTP(w, req)

  assert.Equal(t, http.StatusBadRequest, w.Code)
  var envelope ErrorEnvelope
  require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
  assert.Equal(t, "invalid_turn_id", envelope.Error.Code)
}

func TestHealthCheck(t *testing.T) {
  router := gin.New()
  router.GET("/healthcheck", HealthCheck)

  w := httptest.NewRecorder()
  router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

  assert.Equal(t, http.StatusOK, w.Code)
  assert.Equal(t, "ok", w.Body.String())
}
