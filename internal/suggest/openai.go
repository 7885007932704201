package suggest

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strconv"
  "strings"
  "time"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

type openaiService struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
  deltaTable soul.Table
  fallback   Service
}

// NewOpenAI builds a backend against any OpenAI-compatible chat endpoint.
// Model failures degrade to the local analyzer rather than surfacing an
// error: a missed classification costs one suggestion, not the request.
func NewOpenAI(log *logger.Logger, deltaTable soul.Table) (Service, error) {
  apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
  if apiKey == "" {
    return nil, fmt.Errorf("missing OPENAI_API_KEY")
  }

  baseURL := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
  if baseURL == "" {
    baseURL = "https://api.openai.com"
  }
  baseURL = strings.TrimRight(baseURL, "/")

  model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
  if model == "" {
    model = "gpt-4o-mini"
  }

  timeoutSec := 30
  if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
    if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
      timeoutSec = parsed
    }
  }

  if deltaTable == nil {
    deltaTable = soul.DefaultTable()
  }

  return &openaiService{
    log:        log.With("service", "OpenAISuggest"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    model:      model,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
    deltaTable: deltaTable,
    fallback:   NewLocal(log, deltaTable),
  }, nil
}

type chatMessage struct {
  Role    string `json:"role"`
  Content string `json:"content"`
}

type chatRequest struct {
  Model       string        `json:"model"`
  Messages    []chatMessage `json:"messages"`
  Temperature float64       `json:"temperature"`
  MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
  Choices []struct {
    Message chatMessage `json:"message"`
  } `json:"choices"`
}

func (s *openaiService) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
  req := chatRequest{
    Model: s.model,
    Messages: []chatMessage{
      {Role: "system", Content: system},
      {Role: "user", Content: user},
    },
    Temperature: temperature,
    MaxTokens:   maxTokens,
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(req); err != nil {
    return "", err
  }

  httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", &buf)
  if err != nil {
    return "", err
  }
  httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
  httpReq.Header.Set("Content-Type", "application/json")

  resp, err := s.httpClient.Do(httpReq)
  if err != nil {
    return "", err
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", readErr
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(raw))
  }

  var out chatResponse
  if err := json.Unmarshal(raw, &out); err != nil {
    return "", fmt.Errorf("openai decode error: %w", err)
  }
  if len(out.Choices) == 0 {
    return "", fmt.Errorf("openai returned no choices")
  }
  return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

func (s *openaiService) AnalyzeMessage(ctx context.Context, message string, history []types.Turn, clientSoul soul.Vector) (*Analysis, error) {
  system := fmt.Sprintf(`Eres un asistente especializado en analizar mensajes en un contexto de cobranza. Tu tarea es categorizar la respuesta del cliente.

El cliente tiene las siguientes características:
- Relación/Cercanía: %d/100
- Historial de Pago: %d/100
- Actitud: %d/100
- Sensibilidad a Presión: %d/100
- Probabilidad de Pago: %d/100

Historial reciente:
%s`,
    clientSoul.Relationship, clientSoul.History, clientSoul.Attitude,
    clientSoul.Sensitivity, clientSoul.Probability,
    formatHistory(history))

  user := fmt.Sprintf(`Clasifica este mensaje del cliente: %q

Elige UNA de estas categorías EXACTAS sin explicación:
%s`, message, strings.Join(eventNames(), "\n"))

  text, err := s.complete(ctx, system, user, 0.1, 20)
  if err != nil {
    s.log.Warn("Analysis request failed, using local fallback", "error", err)
    return s.fallback.AnalyzeMessage(ctx, message, history, clientSoul)
  }

  event := soul.EventNeutral
  lower := strings.ToLower(text)
  for _, e := range soul.Events {
    if strings.Contains(lower, string(e)) {
      event = e
      break
    }
  }

  return &Analysis{
    Event:       event,
    Deltas:      s.deltaTable.DeltaFor(event),
    Explanation: fmt.Sprintf("model classification: %q", event),
    Confidence:  0.8,
  }, nil
}

func (s *openaiService) GenerateReply(ctx context.Context, history []types.Turn, clientSoul soul.Vector, lastMessage string, lastEvent soul.Event) (*Reply, error) {
  tone := ToneFor(clientSoul)
  system := fmt.Sprintf(`Eres un agente de cobranza de la empresa Acriventas. Tu objetivo es obtener el pago de una deuda pendiente mientras mantienes una buena relación con el cliente.

Debes usar un tono %q basado en el perfil del cliente:
- Relación/Cercanía: %d/100
- Historial de Pago: %d/100
- Actitud: %d/100
- Sensibilidad a Presión: %d/100
- Probabilidad de Pago: %d/100

Historial reciente de la conversación:
%s

El último mensaje del cliente fue: %q
El tipo de evento detectado es: %q`,
    tone,
    clientSoul.Relationship, clientSoul.History, clientSoul.Attitude,
    clientSoul.Sensitivity, clientSoul.Probability,
    formatHistory(history), lastMessage, lastEvent)

  user := "Genera una respuesta empática y efectiva como agente de cobranza. La respuesta debe ser concisa (máximo 2 frases), adaptada al perfil del cliente, y enfocada en lograr el pago de la deuda."

  text, err := s.complete(ctx, system, user, 0.7, 150)
  if err != nil || text == "" {
    if err != nil {
      s.log.Warn("Reply request failed, using local fallback", "error", err)
    }
    return s.fallback.GenerateReply(ctx, history, clientSoul, lastMessage, lastEvent)
  }

  return &Reply{
    Text:        text,
    Tone:        tone,
    Explanation: fmt.Sprintf("model reply, tone %q", tone),
    Confidence:  0.8,
  }, nil
}

// formatHistory keeps the last three turns so the prompt stays compact.
func formatHistory(history []types.Turn) string {
  start := 0
  if len(history) > 3 {
    start = len(history) - 3
  }
  var sb strings.Builder
  for _, turn := range history[start:] {
    who := "Cliente"
    if turn.Sender == types.SenderAgent {
      who = "Agente"
    }
    fmt.Fprintf(&sb, "%s: %s\n", who, turn.Message)
  }
  return sb.String()
}

func eventNames() []string {
  names := make([]string, len(soul.Events))
  for i, e := range soul.Events {
    names[i] = "- " + string(e)
  }
  return names
}
