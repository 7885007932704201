package suggest

import (
  "context"
  "testing"

  "github.com/acriventas/cobranza-backend/internal/logger"
  "github.com/acriventas/cobranza-backend/internal/soul"
)

func TestClassifyKeywords(t *testing.T) {
  tests := []struct {
    message string
    want    soul.Event
  }{
    {"Voy a pagar todo mañana", soul.EventAcceptsPayment},
    {"Puedo transferir una parte este mes", soul.EventOffersPartial},
    {"Podría pagar la próxima semana", soul.EventReschedule},
    {"Ya pagué ayer por transferencia", soul.EventConfirmsPayment},
    {"Muchas gracias por la información", soul.EventThanks},
    {"No voy a pagar nada, olvídate", soul.EventRefuses},
    {"Estoy harto de estas llamadas", soul.EventAnnoyed},
    {"No puedo en este momento", soul.EventEvades},
    {"Hola, ¿quién habla?", soul.EventNeutral},
    {"", soul.EventNeutral},
  }

  for _, tt := range tests {
    if got := classifyKeywords(tt.message); got != tt.want {
      t.Errorf("classifyKeywords(%q) = %q, want %q", tt.message, got, tt.want)
    }
  }
}

func TestToneFor(t *testing.T) {
  tests := []struct {
    name string
    v    soul.Vector
    want string
  }{
    {"high relationship, high sensitivity", soul.Vector{Relationship: 80, Sensitivity: 80}, ToneFriendlyNoPressure},
    {"high relationship, low sensitivity", soul.Vector{Relationship: 80, Sensitivity: 30}, ToneFriendly},
    {"low relationship, low sensitivity", soul.Vector{Relationship: 20, Sensitivity: 20}, ToneFormalDirect},
    {"low relationship, high sensitivity", soul.Vector{Relationship: 20, Sensitivity: 80}, ToneFormalSoft},
    {"mid relationship", soul.Vector{Relationship: 50, Sensitivity: 50}, ToneNeutral},
    {"boundary 70 stays neutral", soul.Vector{Relationship: 70, Sensitivity: 90}, ToneNeutral},
    {"boundary 40 stays neutral", soul.Vector{Relationship: 40, Sensitivity: 10}, ToneNeutral},
  }

  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      if got := ToneFor(tt.v); got != tt.want {
        t.Errorf("ToneFor(%+v) = %q, want %q", tt.v, got, tt.want)
      }
    })
  }
}

func TestLocalAnalyzeUsesDeltaTable(t *testing.T) {
  svc := NewLocal(logger.NewNop(), nil)

  analysis, err := svc.AnalyzeMessage(context.Background(), "voy a pagar todo", nil, soul.Default())
  if err != nil {
    t.Fatalf("AnalyzeMessage: %v", err)
  }
  if analysis.Event != soul.EventAcceptsPayment {
    t.Fatalf("event = %q, want %q", analysis.Event, soul.EventAcceptsPayment)
  }
  want := soul.DefaultTable().DeltaFor(soul.EventAcceptsPayment)
  if analysis.Deltas != want {
    t.Errorf("deltas = %+v, want %+v", analysis.Deltas, want)
  }
  if analysis.Confidence <= 0 {
    t.Errorf("confidence = %v, want > 0", analysis.Confidence)
  }
}

func TestLocalReplyMatchesEventAndTone(t *testing.T) {
  svc := NewLocal(logger.NewNop(), nil)

  friendly := soul.Vector{Relationship: 85, History: 50, Attitude: 50, Sensitivity: 30, Probability: 50}
  reply, err := svc.GenerateReply(context.Background(), nil, friendly, "voy a pagar todo", soul.EventAcceptsPayment)
  if err != nil {
    t.Fatalf("GenerateReply: %v", err)
  }
  if reply.Tone != ToneFriendly {
    t.Errorf("tone = %q, want %q", reply.Tone, ToneFriendly)
  }
  if reply.Text != replyTemplates[soul.EventAcceptsPayment][ToneFriendly] {
    t.Errorf("unexpected reply text: %q", reply.Text)
  }
}

func TestLocalReplyFallsBackToDefaultTemplate(t *testing.T) {
  svc := NewLocal(logger.NewNop(), nil)

  reply, err := svc.GenerateReply(context.Background(), nil, soul.Default(), "hola", soul.EventNeutral)
  if err != nil {
    t.Fatalf("GenerateReply: %v", err)
  }
  if reply.Tone != ToneNeutral {
    t.Errorf("tone = %q, want %q", reply.Tone, ToneNeutral)
  }
  if reply.Text != replyTemplates["default"][ToneNeutral] {
    t.Errorf("unexpected reply text: %q", reply.Text)
  }
}
