package suggest

import (
  "context"

  "github.com/acriventas/cobranza-backend/internal/soul"
  "github.com/acriventas/cobranza-backend/internal/types"
)

// Analysis classifies a client message into one of the known events, with
// the delta that event carries.
type Analysis struct {
  Event       soul.Event `json:"event"`
  Deltas      soul.Delta `json:"deltas"`
  Explanation string     `json:"explanation"`
  Confidence  float64    `json:"confidence"`
}

// Reply is a suggested agent response. Advisory only: nothing is appended
// to the conversation until the agent sends it.
type Reply struct {
  Text        string  `json:"text"`
  Tone        string  `json:"tone"`
  Explanation string  `json:"explanation"`
  Confidence  float64 `json:"confidence"`
}

type Service interface {
  AnalyzeMessage(ctx context.Context, message string, history []types.Turn, clientSoul soul.Vector) (*Analysis, error)
  GenerateReply(ctx context.Context, history []types.Turn, clientSoul soul.Vector, lastMessage string, lastEvent soul.Event) (*Reply, error)
}
