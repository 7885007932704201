package soul

// Package soul holds the five-dimensional negotiation profile tracked per
// client and the arithmetic that moves it. Values always live in [0,100];
// out-of-range input is clamped, never rejected.

const (
  MinScore = 0
  MaxScore = 100
  Midpoint = 50
)

// Vector is the bounded score vector ("alma") of a client.
type Vector struct {
  Relationship int `json:"relationship" yaml:"relationship"`
  History      int `json:"history" yaml:"history"`
  Attitude     int `json:"attitude" yaml:"attitude"`
  Sensitivity  int `json:"sensitivity" yaml:"sensitivity"`
  Probability  int `json:"probability" yaml:"probability"`
}

// Delta is a signed adjustment applied to a Vector.
type Delta struct {
  Relationship int `json:"relationship" yaml:"relationship"`
  History      int `json:"history" yaml:"history"`
  Attitude     int `json:"attitude" yaml:"attitude"`
  Sensitivity  int `json:"sensitivity" yaml:"sensitivity"`
  Probability  int `json:"probability" yaml:"probability"`
}

// Values carries an explicit per-dimension assignment. Nil fields are
// treated as unspecified.
type Values struct {
  Relationship *int `json:"relationship,omitempty"`
  History      *int `json:"history,omitempty"`
  Attitude     *int `json:"attitude,omitempty"`
  Sensitivity  *int `json:"sensitivity,omitempty"`
  Probability  *int `json:"probability,omitempty"`
}

// Default returns a fresh vector with every dimension at the midpoint.
func Default() Vector {
  return Vector{
    Relationship: Midpoint,
    History:      Midpoint,
    Attitude:     Midpoint,
    Sensitivity:  Midpoint,
    Probability:  Midpoint,
  }
}

// ZeroDelta is the delta of a neutral event.
func ZeroDelta() Delta {
  return Delta{}
}

// IsZero reports whether the delta leaves every dimension untouched.
func (d Delta) IsZero() bool {
  return d == Delta{}
}

// Apply adds d to v and clamps each dimension independently to [0,100].
// It is total: arbitrarily large deltas are normalized, not rejected.
// Dimensions with a zero delta keep their prior value.
func Apply(v Vector, d Delta) Vector {
  return Vector{
    Relationship: clamp(v.Relationship + d.Relationship),
    History:      clamp(v.History + d.History),
    Attitude:     clamp(v.Attitude + d.Attitude),
    Sensitivity:  clamp(v.Sensitivity + d.Sensitivity),
    Probability:  clamp(v.Probability + d.Probability),
  }
}

// SetDirect builds a vector from explicit values. Supplied fields are
// clamped; unspecified fields reset to the midpoint, NOT to any prior
// value. This is deliberately asymmetric with Apply, which preserves
// untouched dimensions — callers editing a profile by hand get midpoint
// defaults, callers reacting to events get incremental updates.
func SetDirect(in Values) Vector {
  return Vector{
    Relationship: clampOrMid(in.Relationship),
    History:      clampOrMid(in.History),
    Attitude:     clampOrMid(in.Attitude),
    Sensitivity:  clampOrMid(in.Sensitivity),
    Probability:  clampOrMid(in.Probability),
  }
}

func clamp(n int) int {
  if n < MinScore {
    return MinScore
  }
  if n > MaxScore {
    return MaxScore
  }
  return n
}

func clampOrMid(n *int) int {
  if n == nil {
    return Midpoint
  }
  return clamp(*n)
}
