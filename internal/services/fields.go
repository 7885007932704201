package services

import (
  "github.com/acriventas/cobranza-backend/internal/soul"
)

// soulFields expands a vector into the embedded column set for a partial
// update, e.g. prefix "current_soul_" for conversations or "soul_" for
// clients.
func soulFields(prefix string, v soul.Vector) map[string]any {
  return map[string]any{
    prefix + "relationship": v.Relationship,
    prefix + "history":      v.History,
    prefix + "attitude":     v.Attitude,
    prefix + "sensitivity":  v.Sensitivity,
    prefix + "probability":  v.Probability,
  }
}

func mergeFields(dst map[string]any, src map[string]any) map[string]any {
  for k, v := range src {
    dst[k] = v
  }
  return dst
}
